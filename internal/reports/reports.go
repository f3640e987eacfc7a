// Package reports assembles printable projections over the loaded
// collections. Every builder is a pure function of its inputs and now:
// identical inputs produce identical output, so callers may cache or diff
// results freely.
package reports

import (
	"sort"
	"time"

	"github.com/jamesonvoice/biomedicaldashboard/internal/coverage"
	"github.com/jamesonvoice/biomedicaldashboard/internal/ledger"
	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
)

// Params selects the assets a report covers. An empty ID list means the
// whole fleet.
type Params struct {
	AssetIDs []string
}

func (p Params) selects(id string) bool {
	if len(p.AssetIDs) == 0 {
		return true
	}
	for _, s := range p.AssetIDs {
		if s == id {
			return true
		}
	}
	return false
}

func (p Params) filter(fleet []models.Equipment) []models.Equipment {
	if len(p.AssetIDs) == 0 {
		return fleet
	}
	out := make([]models.Equipment, 0, len(fleet))
	for _, e := range fleet {
		if p.selects(e.ID.Hex()) {
			out = append(out, e)
		}
	}
	return out
}

// FinancialLine is one asset's acquisition ledger entry.
type FinancialLine struct {
	EquipmentID string  `json:"equipment_id"`
	Name        string  `json:"name"`
	GroupName   string  `json:"group_name,omitempty"`
	Supplier    string  `json:"supplier"`
	TotalSpent  float64 `json:"total_spent"`
	Paid        float64 `json:"paid"`
	Due         float64 `json:"due"`
}

// FinancialReport is the acquisition and liability audit.
type FinancialReport struct {
	Lines      []FinancialLine `json:"lines"`
	TotalSpent float64         `json:"total_spent"`
	TotalPaid  float64         `json:"total_paid"`
	TotalDue   float64         `json:"total_due"`
}

// FinancialHistory projects per-asset totals and fleet sums. Total spent is
// unit price times unit count; paid and due come from the settlement triple.
func FinancialHistory(fleet []models.Equipment, p Params) FinancialReport {
	var r FinancialReport
	for _, e := range p.filter(fleet) {
		line := FinancialLine{
			EquipmentID: e.ID.Hex(),
			Name:        e.Name,
			GroupName:   e.GroupName,
			Supplier:    e.SupplierName,
			TotalSpent:  e.PurchasePrice * float64(e.Units()),
			Paid:        e.PaidAmount,
			Due:         e.RemainingAmount,
		}
		r.Lines = append(r.Lines, line)
		r.TotalSpent += line.TotalSpent
		r.TotalPaid += line.Paid
		r.TotalDue += line.Due
	}
	return r
}

// CostLine is one asset's total-cost-of-ownership entry.
type CostLine struct {
	EquipmentID   string  `json:"equipment_id"`
	Name          string  `json:"name"`
	PurchaseTotal float64 `json:"purchase_total"`
	ServiceCost   float64 `json:"service_cost"`
	GrandTotal    float64 `json:"grand_total"`
}

// CostAnalysis sums purchase and lifetime service cost per asset, most
// expensive first.
func CostAnalysis(fleet []models.Equipment, logs []models.ServiceLog, p Params) []CostLine {
	serviceCost := make(map[string]float64)
	for _, l := range logs {
		serviceCost[l.EquipmentID] += l.Cost
	}

	lines := make([]CostLine, 0)
	for _, e := range p.filter(fleet) {
		id := e.ID.Hex()
		purchase := e.PurchasePrice * float64(e.Units())
		lines = append(lines, CostLine{
			EquipmentID:   id,
			Name:          e.Name,
			PurchaseTotal: purchase,
			ServiceCost:   serviceCost[id],
			GrandTotal:    purchase + serviceCost[id],
		})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].GrandTotal != lines[j].GrandTotal {
			return lines[i].GrandTotal > lines[j].GrandTotal
		}
		return lines[i].Name < lines[j].Name
	})
	return lines
}

// Reliability buckets for the breakdown-frequency report.
const (
	RatingStable     = "Stable"
	RatingNeedsPM    = "Needs PM"
	RatingUnreliable = "Unreliable"
)

// BreakdownLine is one asset's failure-frequency entry.
type BreakdownLine struct {
	EquipmentID    string  `json:"equipment_id"`
	Name           string  `json:"name"`
	BreakdownCount int     `json:"breakdown_count"`
	PMCount        int     `json:"pm_count"`
	Ratio          float64 `json:"ratio"`
	Rating         string  `json:"rating"`
}

// BreakdownFrequency counts corrective versus preventive visits per asset
// and buckets a reliability index, worst offenders first. The ratio guards
// against a zero breakdown count by dividing by at least one.
func BreakdownFrequency(fleet []models.Equipment, logs []models.ServiceLog, p Params) []BreakdownLine {
	type tally struct{ corrective, preventive int }
	tallies := make(map[string]tally)
	for _, l := range logs {
		t := tallies[l.EquipmentID]
		switch l.Type {
		case models.ServiceCorrective:
			t.corrective++
		case models.ServicePreventive:
			t.preventive++
		}
		tallies[l.EquipmentID] = t
	}

	lines := make([]BreakdownLine, 0)
	for _, e := range p.filter(fleet) {
		t := tallies[e.ID.Hex()]
		denom := t.corrective
		if denom < 1 {
			denom = 1
		}
		ratio := float64(t.preventive) / float64(denom)
		rating := RatingUnreliable
		switch {
		case ratio >= 2:
			rating = RatingStable
		case ratio >= 1:
			rating = RatingNeedsPM
		}
		lines = append(lines, BreakdownLine{
			EquipmentID:    e.ID.Hex(),
			Name:           e.Name,
			BreakdownCount: t.corrective,
			PMCount:        t.preventive,
			Ratio:          ratio,
			Rating:         rating,
		})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].BreakdownCount != lines[j].BreakdownCount {
			return lines[i].BreakdownCount > lines[j].BreakdownCount
		}
		return lines[i].Name < lines[j].Name
	})
	return lines
}

// PartUsageLine aggregates one replaced-part name across service logs.
type PartUsageLine struct {
	Name         string  `json:"name"`
	Count        int     `json:"count"`
	MachineCount int     `json:"machine_count"`
	Stock        int     `json:"stock"`
	Price        float64 `json:"price"`
	// Matched is false when no inventory record carries this exact name;
	// stock and price read zero in that case rather than erroring.
	Matched bool `json:"matched"`
}

// SparePartsUsage groups replaced-part entries by their literal name
// (case-sensitive, no normalization) and joins current stock by exact name
// match, heaviest consumption first.
func SparePartsUsage(logs []models.ServiceLog, parts []models.SparePart, p Params) []PartUsageLine {
	type usage struct {
		count    int
		machines map[string]struct{}
	}
	usageByName := make(map[string]*usage)
	for _, l := range logs {
		if !p.selects(l.EquipmentID) {
			continue
		}
		for _, partName := range l.PartsReplaced {
			u := usageByName[partName]
			if u == nil {
				u = &usage{machines: make(map[string]struct{})}
				usageByName[partName] = u
			}
			u.count++
			u.machines[l.EquipmentName] = struct{}{}
		}
	}

	stock := make(map[string]models.SparePart, len(parts))
	for _, sp := range parts {
		stock[sp.Name] = sp
	}

	lines := make([]PartUsageLine, 0, len(usageByName))
	for name, u := range usageByName {
		line := PartUsageLine{Name: name, Count: u.count, MachineCount: len(u.machines)}
		if sp, ok := stock[name]; ok {
			line.Stock = sp.Quantity
			line.Price = sp.Price
			line.Matched = true
		}
		lines = append(lines, line)
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Count != lines[j].Count {
			return lines[i].Count > lines[j].Count
		}
		return lines[i].Name < lines[j].Name
	})
	return lines
}

// Coverage classifications for the warranty audit.
const (
	ClassCovered = "COVERED"
	ClassExposed = "EXPOSED"
)

// WarrantyLine is one asset's coverage-audit entry.
type WarrantyLine struct {
	EquipmentID    string            `json:"equipment_id"`
	Name           string            `json:"name"`
	SerialNumber   string            `json:"serial_number"`
	Coverage       coverage.Coverage `json:"coverage"`
	Classification string            `json:"classification"`
}

// WarrantyAudit resolves per-asset coverage and a binary COVERED/EXPOSED
// classification.
func WarrantyAudit(fleet []models.Equipment, contracts []models.MaintenanceContract, p Params, now time.Time) []WarrantyLine {
	lines := make([]WarrantyLine, 0)
	for _, e := range p.filter(fleet) {
		cov := coverage.Resolve(e, contracts, now)
		class := ClassExposed
		if cov.Covered() {
			class = ClassCovered
		}
		lines = append(lines, WarrantyLine{
			EquipmentID:    e.ID.Hex(),
			Name:           e.Name,
			SerialNumber:   e.SerialNumber,
			Coverage:       cov,
			Classification: class,
		})
	}
	return lines
}

// MonthlySummary returns the selected assets' service logs dated within the
// current month up to now, oldest first.
func MonthlySummary(logs []models.ServiceLog, p Params, now time.Time) []models.ServiceLog {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	out := make([]models.ServiceLog, 0)
	for _, l := range logs {
		if !p.selects(l.EquipmentID) {
			continue
		}
		if l.Date.Before(monthStart) || l.Date.After(now) {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// MachineReport is the full lifecycle dossier for a single asset.
type MachineReport struct {
	Equipment        models.Equipment             `json:"equipment"`
	Coverage         coverage.Coverage            `json:"coverage"`
	ServiceLogs      []models.ServiceLog          `json:"service_logs"`
	Contracts        []models.MaintenanceContract `json:"contracts"`
	Documents        []models.Document            `json:"documents"`
	TotalServiceCost float64                      `json:"total_service_cost"`
	ServiceDue       float64                      `json:"service_due"`
}

// BuildMachineReport assembles the dossier: profile, coverage, service
// history (newest first), contracts and linked documents.
func BuildMachineReport(eq models.Equipment, logs []models.ServiceLog, contracts []models.MaintenanceContract, docs []models.Document, now time.Time) MachineReport {
	id := eq.ID.Hex()
	r := MachineReport{
		Equipment: eq,
		Coverage:  coverage.Resolve(eq, contracts, now),
	}
	for _, l := range logs {
		if l.EquipmentID != id {
			continue
		}
		r.ServiceLogs = append(r.ServiceLogs, l)
		r.TotalServiceCost += l.Cost
		if l.RemainingAmount > 0 {
			r.ServiceDue += l.RemainingAmount
		}
	}
	sort.SliceStable(r.ServiceLogs, func(i, j int) bool { return r.ServiceLogs[i].Date.After(r.ServiceLogs[j].Date) })
	for _, c := range contracts {
		if c.EquipmentID == id {
			r.Contracts = append(r.Contracts, c)
		}
	}
	for _, d := range docs {
		if d.EquipmentID == id {
			r.Documents = append(r.Documents, d)
		}
	}
	return r
}

// DashboardStats is the landing-page aggregate.
type DashboardStats struct {
	TotalUnits      int            `json:"total_units"`
	Running         int            `json:"running"`
	Stopped         int            `json:"stopped"`
	NeedsService    int            `json:"needs_service"`
	Liability       ledger.Summary `json:"liability"`
	ScheduledCount  int            `json:"scheduled_count"`
	WarrantyCovered int            `json:"warranty_covered"`
	ContractCovered int            `json:"contract_covered"`
	UncoveredCount  int            `json:"uncovered_count"`
	CoveragePercent int            `json:"coverage_percent"`
}

// BuildDashboardStats tallies unit counts by status, the liability split,
// pending reminders and the protection gap. Unit tallies weight by quantity;
// coverage tallies count assets once each.
func BuildDashboardStats(fleet []models.Equipment, logs []models.ServiceLog, contracts []models.MaintenanceContract, rems []models.PaymentReminder, now time.Time) DashboardStats {
	var s DashboardStats
	for _, e := range fleet {
		units := e.Units()
		s.TotalUnits += units
		switch e.Status {
		case models.StatusOperational:
			s.Running += units
		case models.StatusDown:
			s.Stopped += units
		case models.StatusUnderMaintenance:
			s.NeedsService += units
		}
	}

	s.Liability = ledger.Aggregate(fleet, logs)

	for _, r := range rems {
		if r.Status == models.ReminderPending {
			s.ScheduledCount++
		}
	}

	gap := coverage.Audit(fleet, contracts, now)
	s.WarrantyCovered = gap.WarrantyCovered
	s.ContractCovered = gap.ContractCovered
	s.UncoveredCount = gap.UncoveredCount
	if gap.Total > 0 {
		s.CoveragePercent = (gap.Total - gap.UncoveredCount) * 100 / gap.Total
	}
	return s
}

// License audit states.
const (
	LicenseMissing    = "Missing"
	LicenseExpired    = "Expired"
	LicenseRenewalDue = "Renewal Due"
	LicenseValid      = "Valid"
)

// LicenseLine is one license-required asset's compliance entry.
type LicenseLine struct {
	EquipmentID string     `json:"equipment_id"`
	Name        string     `json:"name"`
	LicenseName string     `json:"license_name,omitempty"`
	Number      string     `json:"number,omitempty"`
	Expiry      *time.Time `json:"expiry,omitempty"`
	DaysLeft    int        `json:"days_left"`
	State       string     `json:"state"`
}

// LicenseAudit reviews every license-required asset: missing license record,
// expired, inside the renewal window, or valid.
func LicenseAudit(fleet []models.Equipment, p Params, now time.Time) []LicenseLine {
	lines := make([]LicenseLine, 0)
	for _, e := range p.filter(fleet) {
		if !e.LicenseRequired {
			continue
		}
		line := LicenseLine{EquipmentID: e.ID.Hex(), Name: e.Name, State: LicenseMissing}
		if lic := e.LicenseInfo; lic != nil {
			line.LicenseName = lic.Name
			line.Number = lic.Number
			line.Expiry = lic.ExpiryDate
			switch {
			case lic.ExpiryDate == nil:
				line.State = LicenseMissing
			case lic.Expired(now):
				line.State = LicenseExpired
			case lic.InRenewalWindow(now):
				line.State = LicenseRenewalDue
			default:
				line.State = LicenseValid
			}
			if lic.ExpiryDate != nil {
				line.DaysLeft = int(lic.ExpiryDate.Sub(now).Hours() / 24)
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// LowStock returns the spare parts at or below their reorder threshold,
// sorted by name.
func LowStock(parts []models.SparePart) []models.SparePart {
	out := make([]models.SparePart, 0)
	for _, sp := range parts {
		if sp.BelowThreshold() {
			out = append(out, sp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
