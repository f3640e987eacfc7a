package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jamesonvoice/biomedicaldashboard/internal/db"
	"github.com/jamesonvoice/biomedicaldashboard/internal/ledger"
	"github.com/jamesonvoice/biomedicaldashboard/internal/notify"
	"github.com/jamesonvoice/biomedicaldashboard/internal/reminders"
	"github.com/jamesonvoice/biomedicaldashboard/internal/reports"
)

// ReportHandler serves the printable report projections and the dashboard
// aggregate. Reports accept ?assets=id1,id2 to narrow scope and ?format=csv
// for a printable export.
type ReportHandler struct {
	equipment db.EquipmentCollection
	service   db.ServiceLogCollection
	contracts db.ContractCollection
	parts     db.SparePartCollection
	reminders db.ReminderCollection
	mailer    *notify.Mailer
}

// NewReportHandler creates a report handler.
func NewReportHandler(equipment db.EquipmentCollection, service db.ServiceLogCollection, contracts db.ContractCollection, parts db.SparePartCollection, rems db.ReminderCollection, mailer *notify.Mailer) *ReportHandler {
	return &ReportHandler{
		equipment: equipment,
		service:   service,
		contracts: contracts,
		parts:     parts,
		reminders: rems,
		mailer:    mailer,
	}
}

// reportParams extracts the asset selection from the query string.
func reportParams(r *http.Request) reports.Params {
	var p reports.Params
	if raw := r.URL.Query().Get("assets"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				p.AssetIDs = append(p.AssetIDs, id)
			}
		}
	}
	return p
}

func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == "csv"
}

// writeCSV streams a CSV attachment.
func writeCSV(w http.ResponseWriter, name string, header []string, rows [][]string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	if err := reports.WriteCSV(w, header, rows); err != nil {
		http.Error(w, "Failed to write CSV", http.StatusInternalServerError)
	}
}

// Financial serves the acquisition and liability audit.
func (h *ReportHandler) Financial(w http.ResponseWriter, r *http.Request) {
	fleet, err := h.equipment.FindAllEquipment(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	report := reports.FinancialHistory(fleet, reportParams(r))
	if wantsCSV(r) {
		header, rows := report.CSV()
		writeCSV(w, "financial-history", header, rows)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Cost serves the total-cost-of-ownership ranking.
func (h *ReportHandler) Cost(w http.ResponseWriter, r *http.Request) {
	fleet, err := h.equipment.FindAllEquipment(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	logs, err := h.service.FindAllServiceLogs(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	lines := reports.CostAnalysis(fleet, logs, reportParams(r))
	if wantsCSV(r) {
		header, rows := reports.CostAnalysisCSV(lines)
		writeCSV(w, "cost-analysis", header, rows)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

// Breakdown serves the failure-frequency report.
func (h *ReportHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	fleet, err := h.equipment.FindAllEquipment(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	logs, err := h.service.FindAllServiceLogs(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	lines := reports.BreakdownFrequency(fleet, logs, reportParams(r))
	if wantsCSV(r) {
		header, rows := reports.BreakdownCSV(lines)
		writeCSV(w, "breakdown-frequency", header, rows)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

// Parts serves the spare-part consumption report.
func (h *ReportHandler) Parts(w http.ResponseWriter, r *http.Request) {
	logs, err := h.service.FindAllServiceLogs(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	parts, err := h.parts.FindAllSpareParts(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	lines := reports.SparePartsUsage(logs, parts, reportParams(r))
	if wantsCSV(r) {
		header, rows := reports.PartsUsageCSV(lines)
		writeCSV(w, "parts-usage", header, rows)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

// Warranty serves the coverage audit.
func (h *ReportHandler) Warranty(w http.ResponseWriter, r *http.Request) {
	fleet, err := h.equipment.FindAllEquipment(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	contracts, err := h.contracts.FindAllContracts(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	lines := reports.WarrantyAudit(fleet, contracts, reportParams(r), time.Now())
	if wantsCSV(r) {
		header, rows := reports.WarrantyCSV(lines)
		writeCSV(w, "warranty-audit", header, rows)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

// Monthly serves the current-month service summary.
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	logs, err := h.service.FindAllServiceLogs(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports.MonthlySummary(logs, reportParams(r), time.Now()))
}

// Licenses serves the license compliance audit.
func (h *ReportHandler) Licenses(w http.ResponseWriter, r *http.Request) {
	fleet, err := h.equipment.FindAllEquipment(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports.LicenseAudit(fleet, reportParams(r), time.Now()))
}

// LowStock serves the reorder list.
func (h *ReportHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	parts, err := h.parts.FindAllSpareParts(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports.LowStock(parts))
}

// Dashboard serves the landing-page aggregate.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fleet, err := h.equipment.FindAllEquipment(ctx)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	logs, err := h.service.FindAllServiceLogs(ctx)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	contracts, err := h.contracts.FindAllContracts(ctx)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	rems, err := h.reminders.FindAllReminders(ctx)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports.BuildDashboardStats(fleet, logs, contracts, rems, time.Now()))
}

// SendDigest assembles and mails the outstanding-balance digest.
func (h *ReportHandler) SendDigest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fleet, err := h.equipment.FindAllEquipment(ctx)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	logs, err := h.service.FindAllServiceLogs(ctx)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	rems, err := h.reminders.FindAllReminders(ctx)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	summary := ledger.Aggregate(fleet, logs)
	alerts := reminders.ActiveAlerts(rems, time.Now())
	if err := h.mailer.SendReminderDigest(summary, alerts); err != nil {
		if errors.Is(err, notify.ErrMailerDisabled) {
			http.Error(w, "Mailer is not configured", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "Failed to send digest", http.StatusBadGateway)
		return
	}
	writeMessage(w, http.StatusOK, "Digest sent")
}

// Health reports service liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
