package reports

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
)

// money renders an amount with thousands separators for the printable CSVs.
func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// WriteCSV streams rows to w with a header row first.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// CSV renders the financial report as header and rows.
func (r FinancialReport) CSV() ([]string, [][]string) {
	header := []string{"Equipment", "Group", "Supplier", "Total Spent", "Paid", "Due"}
	rows := make([][]string, 0, len(r.Lines)+1)
	for _, l := range r.Lines {
		rows = append(rows, []string{l.Name, l.GroupName, l.Supplier, money(l.TotalSpent), money(l.Paid), money(l.Due)})
	}
	rows = append(rows, []string{"TOTAL", "", "", money(r.TotalSpent), money(r.TotalPaid), money(r.TotalDue)})
	return header, rows
}

// CostAnalysisCSV renders cost-analysis lines as header and rows.
func CostAnalysisCSV(lines []CostLine) ([]string, [][]string) {
	header := []string{"Equipment", "Purchase Total", "Service Cost", "Grand Total"}
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{l.Name, money(l.PurchaseTotal), money(l.ServiceCost), money(l.GrandTotal)})
	}
	return header, rows
}

// BreakdownCSV renders breakdown-frequency lines as header and rows.
func BreakdownCSV(lines []BreakdownLine) ([]string, [][]string) {
	header := []string{"Equipment", "Breakdowns", "PM Visits", "Rating"}
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{l.Name, strconv.Itoa(l.BreakdownCount), strconv.Itoa(l.PMCount), l.Rating})
	}
	return header, rows
}

// PartsUsageCSV renders spare-part usage lines as header and rows.
func PartsUsageCSV(lines []PartUsageLine) ([]string, [][]string) {
	header := []string{"Part", "Times Replaced", "Machines", "In Stock", "Unit Price"}
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{l.Name, strconv.Itoa(l.Count), strconv.Itoa(l.MachineCount), strconv.Itoa(l.Stock), money(l.Price)})
	}
	return header, rows
}

// WarrantyCSV renders warranty-audit lines as header and rows.
func WarrantyCSV(lines []WarrantyLine) ([]string, [][]string) {
	header := []string{"Equipment", "Serial", "Protection", "Days Remaining", "Classification"}
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{
			l.Name,
			l.SerialNumber,
			string(l.Coverage.Kind),
			strconv.Itoa(l.Coverage.DisplayDays()),
			l.Classification,
		})
	}
	return header, rows
}
