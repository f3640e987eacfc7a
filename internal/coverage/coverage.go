// Package coverage resolves whether an asset is protected by a manufacturer
// warranty or an active maintenance contract. All functions are pure.
package coverage

import (
	"math"
	"time"

	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
)

// Kind identifies the protection source.
type Kind string

const (
	KindWarranty Kind = "warranty"
	KindContract Kind = "contract"
	KindNone     Kind = "none"
)

// Coverage is the resolved protection state of a single asset.
type Coverage struct {
	Kind          Kind                `json:"kind"`
	Expiry        *time.Time          `json:"expiry,omitempty"`
	DaysRemaining int                 `json:"days_remaining"`
	ContractType  models.ContractType `json:"contract_type,omitempty"`
	ContractID    string              `json:"contract_id,omitempty"`
}

// Covered reports whether any protection is active.
func (c Coverage) Covered() bool {
	return c.Kind != KindNone
}

// DisplayDays floors DaysRemaining at zero for display thresholds, so a
// same-day or already-lapsed edge never renders negative.
func (c Coverage) DisplayDays() int {
	if c.DaysRemaining < 0 {
		return 0
	}
	return c.DaysRemaining
}

// daysUntil is the ceiling of the interval to expiry in whole days.
func daysUntil(expiry, now time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

// Resolve determines the active protection for an asset. Warranty always
// takes priority over a contract when both are live; among live contracts
// the one ending latest wins.
func Resolve(eq models.Equipment, contracts []models.MaintenanceContract, now time.Time) Coverage {
	if eq.HasWarranty && eq.WarrantyExpiryDate != nil && !eq.WarrantyExpiryDate.Before(now) {
		expiry := *eq.WarrantyExpiryDate
		return Coverage{
			Kind:          KindWarranty,
			Expiry:        &expiry,
			DaysRemaining: daysUntil(expiry, now),
		}
	}

	var best *models.MaintenanceContract
	id := eq.ID.Hex()
	for i := range contracts {
		c := &contracts[i]
		if c.EquipmentID != id || !c.ActiveAt(now) {
			continue
		}
		if best == nil || c.EndDate.After(best.EndDate) {
			best = c
		}
	}
	if best != nil {
		expiry := best.EndDate
		return Coverage{
			Kind:          KindContract,
			Expiry:        &expiry,
			DaysRemaining: daysUntil(expiry, now),
			ContractType:  best.Type,
			ContractID:    best.ID.Hex(),
		}
	}

	return Coverage{Kind: KindNone}
}

// GapReport is the fleet-wide protection audit.
type GapReport struct {
	Total           int                `json:"total"`
	WarrantyCovered int                `json:"warranty_covered"`
	ContractCovered int                `json:"contract_covered"`
	UncoveredCount  int                `json:"uncovered_count"`
	Uncovered       []models.Equipment `json:"uncovered"`
}

// Audit resolves every asset and tallies the protection sources. Each asset
// counts exactly once: warranty-covered, contract-covered (and not under
// warranty), or uncovered.
func Audit(fleet []models.Equipment, contracts []models.MaintenanceContract, now time.Time) GapReport {
	report := GapReport{Total: len(fleet)}
	for _, eq := range fleet {
		switch Resolve(eq, contracts, now).Kind {
		case KindWarranty:
			report.WarrantyCovered++
		case KindContract:
			report.ContractCovered++
		default:
			report.Uncovered = append(report.Uncovered, eq)
		}
	}
	report.UncoveredCount = len(report.Uncovered)
	return report
}
