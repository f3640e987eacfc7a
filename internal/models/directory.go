package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VendorMachine describes one capability a vendor can supply or service.
type VendorMachine struct {
	Name        string `bson:"name" json:"name"`
	Brand       string `bson:"brand,omitempty" json:"brand,omitempty"`
	Origin      string `bson:"origin,omitempty" json:"origin,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Vendor is a supplier or service company in the directory.
type Vendor struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompanyName string             `bson:"company_name" json:"company_name"`
	Email       string             `bson:"email" json:"email"`
	Address     string             `bson:"address" json:"address"`
	Machines    []VendorMachine    `bson:"machines" json:"machines"`
	Rating      int                `bson:"rating" json:"rating"`
	Quotations  []string           `bson:"quotations" json:"quotations"`
}

// Validate checks the fields an operator must supply.
func (v *Vendor) Validate() error {
	if v.CompanyName == "" {
		return errors.New("vendor company name is required")
	}
	if v.Rating < 0 || v.Rating > 5 {
		return errors.New("vendor rating must be between 0 and 5")
	}
	return nil
}

// Engineer is a service engineer in the directory, optionally tied to a
// vendor company.
type Engineer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	CompanyID   string             `bson:"company_id" json:"company_id"`
	CompanyName string             `bson:"company_name" json:"company_name"`
	Specialties string             `bson:"specialties" json:"specialties"`
}

// Validate checks the fields an operator must supply.
func (e *Engineer) Validate() error {
	if e.Name == "" {
		return errors.New("engineer name is required")
	}
	return nil
}
