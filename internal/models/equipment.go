package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EquipmentStatus enumerates the operational state of a clinical asset.
type EquipmentStatus string

const (
	StatusOperational      EquipmentStatus = "Operational"
	StatusUnderMaintenance EquipmentStatus = "Under Maintenance"
	StatusDown             EquipmentStatus = "Down"
	StatusScrapped         EquipmentStatus = "Scrapped"
)

// IsValidEquipmentStatus checks if a status is one of the known values.
func IsValidEquipmentStatus(s EquipmentStatus) bool {
	switch s {
	case StatusOperational, StatusUnderMaintenance, StatusDown, StatusScrapped:
		return true
	default:
		return false
	}
}

// DefaultRenewalLeadDays is applied when a license omits its renewal lead.
const DefaultRenewalLeadDays = 30

// LicenseInfo holds the regulatory license embedded in an Equipment record.
type LicenseInfo struct {
	Name            string     `bson:"name" json:"name"`
	Number          string     `bson:"number" json:"number"`
	IssueDate       *time.Time `bson:"issue_date,omitempty" json:"issue_date,omitempty"`
	ExpiryDate      *time.Time `bson:"expiry_date,omitempty" json:"expiry_date,omitempty"`
	RenewalLeadDays int        `bson:"renewal_lead_days" json:"renewal_lead_days"`
	RenewalSource   string     `bson:"renewal_source" json:"renewal_source"`
	Notes           string     `bson:"notes" json:"notes"`
}

// LeadDays returns the renewal lead, falling back to the default.
func (l *LicenseInfo) LeadDays() int {
	if l.RenewalLeadDays <= 0 {
		return DefaultRenewalLeadDays
	}
	return l.RenewalLeadDays
}

// Expired reports whether the license expiry has passed.
func (l *LicenseInfo) Expired(now time.Time) bool {
	return l.ExpiryDate != nil && l.ExpiryDate.Before(now)
}

// InRenewalWindow reports whether now is within the renewal lead before expiry.
// An already-expired license is not "in window"; it is expired.
func (l *LicenseInfo) InRenewalWindow(now time.Time) bool {
	if l.ExpiryDate == nil || l.Expired(now) {
		return false
	}
	windowStart := l.ExpiryDate.AddDate(0, 0, -l.LeadDays())
	return !now.Before(windowStart)
}

// Equipment is a clinical asset in the fleet register.
type Equipment struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                 string             `bson:"name" json:"name"`
	GroupName            string             `bson:"group_name,omitempty" json:"group_name,omitempty"`
	Brand                string             `bson:"brand" json:"brand"`
	Type                 string             `bson:"type" json:"type"`
	Model                string             `bson:"model" json:"model"`
	SerialNumber         string             `bson:"serial_number" json:"serial_number"`
	Quantity             int                `bson:"quantity" json:"quantity"`
	PurchasePrice        float64            `bson:"purchase_price" json:"purchase_price"`
	PaidAmount           float64            `bson:"paid_amount" json:"paid_amount"`
	RemainingAmount      float64            `bson:"remaining_amount" json:"remaining_amount"`
	PurchaseDate         *time.Time         `bson:"purchase_date,omitempty" json:"purchase_date,omitempty"`
	HasWarranty          bool               `bson:"has_warranty" json:"has_warranty"`
	WarrantyDurationDays int                `bson:"warranty_duration_days,omitempty" json:"warranty_duration_days,omitempty"`
	WarrantyExpiryDate   *time.Time         `bson:"warranty_expiry_date,omitempty" json:"warranty_expiry_date,omitempty"`
	Manufacturer         string             `bson:"manufacturer" json:"manufacturer"`
	SupplierID           string             `bson:"supplier_id" json:"supplier_id"`
	SupplierName         string             `bson:"supplier_name" json:"supplier_name"`
	ContractorIDs        []string           `bson:"contractor_ids" json:"contractor_ids"`
	Location             string             `bson:"location" json:"location"`
	InstallationDate     *time.Time         `bson:"installation_date,omitempty" json:"installation_date,omitempty"`
	ExpectedLifecycle    int                `bson:"expected_lifecycle" json:"expected_lifecycle"` // years
	Notes                string             `bson:"notes" json:"notes"`
	Status               EquipmentStatus    `bson:"status" json:"status"`
	Documents            []string           `bson:"documents" json:"documents"`
	LicenseRequired      bool               `bson:"license_required" json:"license_required"`
	LicenseInfo          *LicenseInfo       `bson:"license_info,omitempty" json:"license_info,omitempty"`
	PaymentHistory       []PaymentRecord    `bson:"payment_history" json:"payment_history"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updated_at"`
}

// Units returns the unit count, treating anything below 1 as a single unit.
func (e *Equipment) Units() int {
	if e.Quantity < 1 {
		return 1
	}
	return e.Quantity
}

// Recalculate refreshes the derived fields after price, paid amount, purchase
// date or warranty duration change: remaining = price - paid, and warranty
// expiry = purchase date + duration days. Turning the warranty flag off clears
// the stored expiry so it cannot linger. Call before every write.
func (e *Equipment) Recalculate() {
	e.RemainingAmount = e.PurchasePrice - e.PaidAmount
	if !e.HasWarranty {
		e.WarrantyExpiryDate = nil
		return
	}
	if e.PurchaseDate != nil && e.WarrantyDurationDays > 0 {
		expiry := e.PurchaseDate.AddDate(0, 0, e.WarrantyDurationDays)
		e.WarrantyExpiryDate = &expiry
	}
}

// Validate checks the fields an operator must supply.
func (e *Equipment) Validate() error {
	if e.Name == "" {
		return errors.New("equipment name is required")
	}
	if e.Status != "" && !IsValidEquipmentStatus(e.Status) {
		return errors.New("invalid equipment status")
	}
	if e.PurchasePrice < 0 {
		return errors.New("purchase price cannot be negative")
	}
	return nil
}
