package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceType enumerates the kind of work a service log records.
type ServiceType string

const (
	ServicePreventive  ServiceType = "Preventive"
	ServiceCorrective  ServiceType = "Corrective"
	ServiceCalibration ServiceType = "Calibration"
)

// IsValidServiceType checks if a service type is one of the known values.
func IsValidServiceType(t ServiceType) bool {
	switch t {
	case ServicePreventive, ServiceCorrective, ServiceCalibration:
		return true
	default:
		return false
	}
}

// ServiceLog is a maintenance or calibration visit against an asset.
// EquipmentName is a denormalized display copy; EquipmentID is the reference.
// PartsReplaced entries are free-text part names, not foreign keys.
type ServiceLog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EquipmentID     string             `bson:"equipment_id" json:"equipment_id"`
	EquipmentName   string             `bson:"equipment_name" json:"equipment_name"`
	Date            time.Time          `bson:"date" json:"date"`
	Type            ServiceType        `bson:"type" json:"type"`
	Description     string             `bson:"description" json:"description"`
	PartsReplaced   []string           `bson:"parts_replaced" json:"parts_replaced"`
	Cost            float64            `bson:"cost" json:"cost"`
	PaidAmount      float64            `bson:"paid_amount" json:"paid_amount"`
	RemainingAmount float64            `bson:"remaining_amount" json:"remaining_amount"`
	CompanyName     string             `bson:"company_name" json:"company_name"`
	TechnicianName  string             `bson:"technician_name" json:"technician_name"`
	Remarks         string             `bson:"remarks" json:"remarks"`
	DocumentURL     string             `bson:"document_url,omitempty" json:"document_url,omitempty"`
	PaymentHistory  []PaymentRecord    `bson:"payment_history" json:"payment_history"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// Recalculate refreshes the settlement triple: remaining = cost - paid.
func (s *ServiceLog) Recalculate() {
	s.RemainingAmount = s.Cost - s.PaidAmount
}

// Validate checks the fields an operator must supply.
func (s *ServiceLog) Validate() error {
	if s.EquipmentID == "" {
		return errors.New("service log requires an equipment reference")
	}
	if !IsValidServiceType(s.Type) {
		return errors.New("invalid service type")
	}
	if s.Cost < 0 {
		return errors.New("service cost cannot be negative")
	}
	return nil
}
