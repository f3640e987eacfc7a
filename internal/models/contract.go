package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContractType enumerates maintenance contract flavors: annual (AMC) or
// comprehensive (CMC).
type ContractType string

const (
	ContractAMC ContractType = "AMC"
	ContractCMC ContractType = "CMC"
)

// ContractStatus is the stored Active/Expired marker. It is derived from the
// end date at write time and is not kept live; readers needing the truth
// should use ActiveAt.
type ContractStatus string

const (
	ContractActive  ContractStatus = "Active"
	ContractExpired ContractStatus = "Expired"
)

// MaintenanceContract is a third-party service agreement for an asset.
type MaintenanceContract struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EquipmentID   string             `bson:"equipment_id" json:"equipment_id"`
	EquipmentName string             `bson:"equipment_name" json:"equipment_name"`
	CompanyID     string             `bson:"company_id" json:"company_id"`
	CompanyName   string             `bson:"company_name" json:"company_name"`
	EngineerIDs   []string           `bson:"engineer_ids" json:"engineer_ids"`
	StartDate     time.Time          `bson:"start_date" json:"start_date"`
	EndDate       time.Time          `bson:"end_date" json:"end_date"`
	Amount        float64            `bson:"amount" json:"amount"`
	Description   string             `bson:"description" json:"description"`
	Status        ContractStatus     `bson:"status" json:"status"`
	Type          ContractType       `bson:"type" json:"type"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// ActiveAt reports whether the contract covers the given instant
// (end date on or after now).
func (c *MaintenanceContract) ActiveAt(now time.Time) bool {
	return !c.EndDate.Before(now)
}

// RefreshStatus recomputes the stored status marker from the end date.
func (c *MaintenanceContract) RefreshStatus(now time.Time) {
	if c.ActiveAt(now) {
		c.Status = ContractActive
	} else {
		c.Status = ContractExpired
	}
}

// Validate checks the fields an operator must supply.
func (c *MaintenanceContract) Validate() error {
	if c.EquipmentID == "" {
		return errors.New("contract requires an equipment reference")
	}
	if c.Type != ContractAMC && c.Type != ContractCMC {
		return errors.New("contract type must be AMC or CMC")
	}
	if c.EndDate.Before(c.StartDate) {
		return errors.New("contract end date precedes start date")
	}
	return nil
}
