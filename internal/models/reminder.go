package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReminderStatus enumerates the lifecycle of a payment reminder.
type ReminderStatus string

const (
	ReminderPending   ReminderStatus = "Pending"
	ReminderPaid      ReminderStatus = "Paid"
	ReminderCancelled ReminderStatus = "Cancelled"
)

// SourceType identifies which collection a reminder's source lives in.
type SourceType string

const (
	SourceEquipment SourceType = "equipment"
	SourceService   SourceType = "service"
)

// PaymentReminder is a user-declared future settlement intention against an
// equipment purchase balance or a service log balance.
type PaymentReminder struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SourceID      string             `bson:"source_id" json:"source_id"`
	SourceType    SourceType         `bson:"source_type" json:"source_type"`
	Name          string             `bson:"name" json:"name"`
	Provider      string             `bson:"provider" json:"provider"`
	AmountToPay   float64            `bson:"amount_to_pay" json:"amount_to_pay"`
	ScheduledDate time.Time          `bson:"scheduled_date" json:"scheduled_date"`
	LeadDays      int                `bson:"lead_days" json:"lead_days"`
	Status        ReminderStatus     `bson:"status" json:"status"`
	Notes         string             `bson:"notes" json:"notes"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// Validate checks the fields an operator must supply.
func (r *PaymentReminder) Validate() error {
	if r.SourceID == "" {
		return errors.New("reminder requires a source reference")
	}
	if r.SourceType != SourceEquipment && r.SourceType != SourceService {
		return errors.New("reminder source type must be equipment or service")
	}
	if r.AmountToPay <= 0 {
		return errors.New("reminder amount must be positive")
	}
	if r.ScheduledDate.IsZero() {
		return errors.New("reminder requires a scheduled date")
	}
	return nil
}
