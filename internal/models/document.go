package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentCategory enumerates attachment categories.
type DocumentCategory string

const (
	DocManual      DocumentCategory = "Manual"
	DocCertificate DocumentCategory = "Certificate"
	DocBill        DocumentCategory = "Bill"
	DocQuotation   DocumentCategory = "Quotation"
	DocOther       DocumentCategory = "Other"
)

// Document is attachment metadata; the binary itself lives in the external
// object store behind URL.
type Document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Category    DocumentCategory   `bson:"category" json:"category"`
	EquipmentID string             `bson:"equipment_id,omitempty" json:"equipment_id,omitempty"`
	URL         string             `bson:"url" json:"url"`
	UploadDate  time.Time          `bson:"upload_date" json:"upload_date"`
}

// Validate checks the fields an operator must supply.
func (d *Document) Validate() error {
	if d.Name == "" {
		return errors.New("document name is required")
	}
	if d.URL == "" {
		return errors.New("document URL is required")
	}
	return nil
}
