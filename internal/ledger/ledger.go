// Package ledger computes outstanding monetary obligations and applies
// settlements. Documents store amounts as float64; all arithmetic here runs
// through decimals so repeated settlements cannot accumulate float error.
package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
)

// ErrNonPositiveAmount is returned when a settlement amount is zero or
// negative.
var ErrNonPositiveAmount = errors.New("payment amount must be positive")

// Settlement is the outcome of applying one payment.
type Settlement struct {
	Paid      float64              `json:"paid"`
	Remaining float64              `json:"remaining"`
	// Excess is the portion of the payment beyond the owed balance. The
	// balance clamps at zero and the excess is not carried as credit; it is
	// reported here so callers can surface it instead of losing it silently.
	Excess float64              `json:"excess"`
	Record models.PaymentRecord `json:"record"`
}

// ApplyPayment computes the new settlement triple for an item with the given
// total cost and paid-so-far. Payments larger than the remaining balance are
// accepted and clamped (matching the original write path); non-positive
// amounts are rejected.
func ApplyPayment(totalCost, paidSoFar, amount float64, date time.Time, method models.PaymentMethod, note string, now time.Time) (Settlement, error) {
	if amount <= 0 {
		return Settlement{}, ErrNonPositiveAmount
	}

	total := decimal.NewFromFloat(totalCost)
	newPaid := decimal.NewFromFloat(paidSoFar).Add(decimal.NewFromFloat(amount))
	remaining := total.Sub(newPaid)
	excess := decimal.Zero
	if remaining.IsNegative() {
		excess = remaining.Neg()
		remaining = decimal.Zero
	}

	paidF, _ := newPaid.Float64()
	remF, _ := remaining.Float64()
	excessF, _ := excess.Float64()
	return Settlement{
		Paid:      paidF,
		Remaining: remF,
		Excess:    excessF,
		Record:    models.NewPaymentRecord(amount, date, method, note, now),
	}, nil
}

// SettleEquipment applies a payment to an equipment purchase balance,
// mutating the settlement triple and appending to the payment history.
func SettleEquipment(eq *models.Equipment, amount float64, date time.Time, method models.PaymentMethod, note string, now time.Time) (Settlement, error) {
	s, err := ApplyPayment(eq.PurchasePrice, eq.PaidAmount, amount, date, method, note, now)
	if err != nil {
		return Settlement{}, err
	}
	eq.PaidAmount = s.Paid
	eq.RemainingAmount = s.Remaining
	eq.PaymentHistory = append(eq.PaymentHistory, s.Record)
	eq.UpdatedAt = now
	return s, nil
}

// SettleServiceLog applies a payment to a service log balance.
func SettleServiceLog(sl *models.ServiceLog, amount float64, date time.Time, method models.PaymentMethod, note string, now time.Time) (Settlement, error) {
	s, err := ApplyPayment(sl.Cost, sl.PaidAmount, amount, date, method, note, now)
	if err != nil {
		return Settlement{}, err
	}
	sl.PaidAmount = s.Paid
	sl.RemainingAmount = s.Remaining
	sl.PaymentHistory = append(sl.PaymentHistory, s.Record)
	sl.UpdatedAt = now
	return s, nil
}

// Item is one indebted equipment purchase or service log.
type Item struct {
	SourceID   string            `json:"source_id"`
	SourceType models.SourceType `json:"source_type"`
	Name       string            `json:"name"`
	Provider   string            `json:"provider"`
	Total      float64           `json:"total"`
	Paid       float64           `json:"paid"`
	Remaining  float64           `json:"remaining"`
}

// Summary is the fleet-wide liability aggregate. Counts are item
// cardinality, not unit counts: a multi-quantity equipment debt counts once.
type Summary struct {
	PurchaseOutstanding      float64 `json:"purchase_outstanding"`
	PurchaseOutstandingCount int     `json:"purchase_outstanding_count"`
	ServiceOutstanding       float64 `json:"service_outstanding"`
	ServiceOutstandingCount  int     `json:"service_outstanding_count"`
	TotalOutstanding         float64 `json:"total_outstanding"`
	TotalOutstandingCount    int     `json:"total_outstanding_count"`
	Items                    []Item  `json:"items"`
}

// Aggregate computes outstanding balances over the loaded collections. An
// item is in debt iff its remaining amount is strictly positive.
func Aggregate(equipment []models.Equipment, logs []models.ServiceLog) Summary {
	var sum Summary
	purchase := decimal.Zero
	service := decimal.Zero

	for _, e := range equipment {
		if e.RemainingAmount <= 0 {
			continue
		}
		purchase = purchase.Add(decimal.NewFromFloat(e.RemainingAmount))
		sum.PurchaseOutstandingCount++
		sum.Items = append(sum.Items, Item{
			SourceID:   e.ID.Hex(),
			SourceType: models.SourceEquipment,
			Name:       e.Name,
			Provider:   e.SupplierName,
			Total:      e.PurchasePrice,
			Paid:       e.PaidAmount,
			Remaining:  e.RemainingAmount,
		})
	}
	for _, l := range logs {
		if l.RemainingAmount <= 0 {
			continue
		}
		service = service.Add(decimal.NewFromFloat(l.RemainingAmount))
		sum.ServiceOutstandingCount++
		sum.Items = append(sum.Items, Item{
			SourceID:   l.ID.Hex(),
			SourceType: models.SourceService,
			Name:       l.EquipmentName,
			Provider:   l.CompanyName,
			Total:      l.Cost,
			Paid:       l.PaidAmount,
			Remaining:  l.RemainingAmount,
		})
	}

	sum.PurchaseOutstanding, _ = purchase.Float64()
	sum.ServiceOutstanding, _ = service.Float64()
	sum.TotalOutstanding, _ = purchase.Add(service).Float64()
	sum.TotalOutstandingCount = sum.PurchaseOutstandingCount + sum.ServiceOutstandingCount
	return sum
}
