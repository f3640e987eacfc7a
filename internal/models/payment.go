package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod enumerates how a settlement was made.
type PaymentMethod string

const (
	MethodCash          PaymentMethod = "Cash"
	MethodCheck         PaymentMethod = "Check"
	MethodBankTransfer  PaymentMethod = "Bank Transfer"
	MethodMobileBanking PaymentMethod = "Mobile Banking"
	MethodOther         PaymentMethod = "Other"
)

// IsValidPaymentMethod checks if a payment method is one of the known values.
func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodCheck, MethodBankTransfer, MethodMobileBanking, MethodOther:
		return true
	default:
		return false
	}
}

// PaymentRecord is a single settlement entry embedded in an Equipment or
// ServiceLog payment history. Storage order is append-only; display layers
// may re-sort by date.
type PaymentRecord struct {
	ID        string        `bson:"id" json:"id"`
	Amount    float64       `bson:"amount" json:"amount"`
	Date      time.Time     `bson:"date" json:"date"`
	Method    PaymentMethod `bson:"method" json:"method"`
	Note      string        `bson:"note" json:"note"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

// NewPaymentRecord builds a settlement entry with a fresh identifier.
func NewPaymentRecord(amount float64, date time.Time, method PaymentMethod, note string, now time.Time) PaymentRecord {
	return PaymentRecord{
		ID:        uuid.NewString(),
		Amount:    amount,
		Date:      date,
		Method:    method,
		Note:      note,
		CreatedAt: now,
	}
}
