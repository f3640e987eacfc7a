package handlers

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jamesonvoice/biomedicaldashboard/internal/db"
	"github.com/jamesonvoice/biomedicaldashboard/internal/ledger"
	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
	"github.com/jamesonvoice/biomedicaldashboard/internal/reminders"
)

// PaymentHandler applies settlements against purchase and service balances.
type PaymentHandler struct {
	equipment db.EquipmentCollection
	service   db.ServiceLogCollection
	reminders db.ReminderCollection
}

// NewPaymentHandler creates a payment handler.
func NewPaymentHandler(equipment db.EquipmentCollection, service db.ServiceLogCollection, rems db.ReminderCollection) *PaymentHandler {
	return &PaymentHandler{equipment: equipment, service: service, reminders: rems}
}

// applyRequest is the settlement request body.
type applyRequest struct {
	SourceID   string               `json:"source_id"`
	SourceType models.SourceType    `json:"source_type"`
	Amount     float64              `json:"amount"`
	Date       time.Time            `json:"date"`
	Method     models.PaymentMethod `json:"method"`
	Note       string               `json:"note"`
}

// applyResponse reports the settlement outcome, including overpayment excess
// and any reminders the settlement closed.
type applyResponse struct {
	Settlement       ledger.Settlement `json:"settlement"`
	SettledReminders []string          `json:"settled_reminders"`
}

// Apply settles a payment against the referenced balance, appends to the
// payment history, and transitions linked reminders to Paid when the balance
// reaches zero.
func (h *PaymentHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.SourceID == "" {
		http.Error(w, "source_id is required", http.StatusBadRequest)
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}
	if req.Method == "" {
		req.Method = models.MethodOther
	}
	if !models.IsValidPaymentMethod(req.Method) {
		http.Error(w, "invalid payment method", http.StatusBadRequest)
		return
	}

	now := time.Now()
	var (
		settlement ledger.Settlement
		sources    []models.Equipment
		logs       []models.ServiceLog
		settled    bool
		err        error
	)
	switch req.SourceType {
	case models.SourceEquipment:
		var eq *models.Equipment
		eq, err = h.equipment.FindEquipmentByID(r.Context(), req.SourceID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		settlement, err = ledger.SettleEquipment(eq, req.Amount, req.Date, req.Method, req.Note, now)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err = h.equipment.UpdateEquipment(r.Context(), req.SourceID, *eq); err != nil {
			writeStoreError(w, err)
			return
		}
		sources = []models.Equipment{*eq}
		settled = eq.RemainingAmount <= 0
	case models.SourceService:
		var sl *models.ServiceLog
		sl, err = h.service.FindServiceLogByID(r.Context(), req.SourceID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		settlement, err = ledger.SettleServiceLog(sl, req.Amount, req.Date, req.Method, req.Note, now)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err = h.service.UpdateServiceLog(r.Context(), req.SourceID, *sl); err != nil {
			writeStoreError(w, err)
			return
		}
		logs = []models.ServiceLog{*sl}
		settled = sl.RemainingAmount <= 0
	default:
		http.Error(w, "source_type must be equipment or service", http.StatusBadRequest)
		return
	}

	resp := applyResponse{Settlement: settlement, SettledReminders: []string{}}
	if settled {
		resp.SettledReminders = h.settleReminders(r, req.SourceID, sources, logs)
	}
	writeJSON(w, http.StatusOK, resp)
}

// settleReminders flips the pending reminders linked to a now-settled source
// to Paid. Selection is delegated to reminders.SettleLinkedReminders; this
// only persists the transition. Failures are logged, not fatal: the payment
// itself already stuck.
func (h *PaymentHandler) settleReminders(r *http.Request, sourceID string, equipment []models.Equipment, logs []models.ServiceLog) []string {
	ids := []string{}
	rems, err := h.reminders.FindRemindersBySource(r.Context(), sourceID)
	if err != nil {
		log.WithError(err).WithField("source_id", sourceID).Warn("reminder sweep skipped")
		return ids
	}
	for _, rem := range reminders.SettleLinkedReminders(rems, equipment, logs) {
		id := rem.ID.Hex()
		if err := h.reminders.UpdateReminderStatus(r.Context(), id, models.ReminderPaid); err != nil {
			log.WithError(err).WithField("reminder_id", id).Warn("reminder not settled")
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// ReminderHandler serves payment reminder CRUD and urgency resolution.
type ReminderHandler struct {
	reminders db.ReminderCollection
}

// NewReminderHandler creates a reminder handler.
func NewReminderHandler(rems db.ReminderCollection) *ReminderHandler {
	return &ReminderHandler{reminders: rems}
}

// reminderView pairs a stored reminder with its urgency right now.
type reminderView struct {
	Reminder models.PaymentReminder `json:"reminder"`
	Urgency  reminders.Urgency      `json:"urgency"`
}

// List returns every reminder with resolved urgency.
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	rems, err := h.reminders.FindAllReminders(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	now := time.Now()
	views := make([]reminderView, 0, len(rems))
	for _, rem := range rems {
		views = append(views, reminderView{Reminder: rem, Urgency: reminders.ResolveUrgency(rem, now)})
	}
	writeJSON(w, http.StatusOK, views)
}

// Alerts returns the pending reminders whose alert window is open, most
// urgent first.
func (h *ReminderHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	rems, err := h.reminders.FindAllReminders(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	alerts := reminders.ActiveAlerts(rems, time.Now())
	if alerts == nil {
		alerts = []reminders.Alert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

// Create declares a future settlement intention.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rem models.PaymentReminder
	if !decodeBody(w, r, &rem) {
		return
	}
	if err := rem.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := h.reminders.InsertReminder(r.Context(), rem)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Cancel transitions a reminder to Cancelled; it stays in the history but
// leaves every alert surface.
func (h *ReminderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.reminders.UpdateReminderStatus(r.Context(), r.PathValue("id"), models.ReminderCancelled); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Reminder cancelled")
}

// Delete removes a reminder entirely.
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.reminders.DeleteReminder(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Reminder deleted")
}
