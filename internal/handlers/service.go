package handlers

import (
	"net/http"
	"time"

	"github.com/jamesonvoice/biomedicaldashboard/internal/db"
	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
)

// ServiceLogHandler serves the maintenance visit history.
type ServiceLogHandler struct {
	service db.ServiceLogCollection
}

// NewServiceLogHandler creates a service log handler.
func NewServiceLogHandler(service db.ServiceLogCollection) *ServiceLogHandler {
	return &ServiceLogHandler{service: service}
}

// List returns the full service history snapshot.
func (h *ServiceLogHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.service.FindAllServiceLogs(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if logs == nil {
		logs = []models.ServiceLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

// Create records a maintenance visit.
func (h *ServiceLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var sl models.ServiceLog
	if !decodeBody(w, r, &sl) {
		return
	}
	if err := sl.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sl.Recalculate()
	now := time.Now()
	sl.CreatedAt = now
	sl.UpdatedAt = now

	id, err := h.service.InsertServiceLog(r.Context(), sl)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Get returns one service log by ID.
func (h *ServiceLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	sl, err := h.service.FindServiceLogByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sl)
}

// Update replaces a service log and refreshes its settlement triple.
func (h *ServiceLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var sl models.ServiceLog
	if !decodeBody(w, r, &sl) {
		return
	}
	if err := sl.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sl.Recalculate()
	sl.UpdatedAt = time.Now()

	if err := h.service.UpdateServiceLog(r.Context(), r.PathValue("id"), sl); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Service log updated")
}

// Delete removes a service log.
func (h *ServiceLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteServiceLog(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Service log deleted")
}
