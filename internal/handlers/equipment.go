package handlers

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jamesonvoice/biomedicaldashboard/internal/alerts"
	"github.com/jamesonvoice/biomedicaldashboard/internal/db"
	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
	"github.com/jamesonvoice/biomedicaldashboard/internal/reports"
)

// EquipmentHandler serves the equipment register: CRUD, the uptime status
// toggle and the per-machine dossier.
type EquipmentHandler struct {
	equipment db.EquipmentCollection
	service   db.ServiceLogCollection
	contracts db.ContractCollection
	documents db.DocumentCollection
	alerts    *alerts.Publisher
}

// NewEquipmentHandler creates an equipment handler.
func NewEquipmentHandler(equipment db.EquipmentCollection, service db.ServiceLogCollection, contracts db.ContractCollection, documents db.DocumentCollection, publisher *alerts.Publisher) *EquipmentHandler {
	return &EquipmentHandler{
		equipment: equipment,
		service:   service,
		contracts: contracts,
		documents: documents,
		alerts:    publisher,
	}
}

// List returns the full equipment snapshot.
func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	fleet, err := h.equipment.FindAllEquipment(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if fleet == nil {
		fleet = []models.Equipment{}
	}
	writeJSON(w, http.StatusOK, fleet)
}

// Create registers a new asset.
func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var eq models.Equipment
	if !decodeBody(w, r, &eq) {
		return
	}
	if eq.Status == "" {
		eq.Status = models.StatusOperational
	}
	if err := eq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	eq.Recalculate()
	now := time.Now()
	eq.CreatedAt = now
	eq.UpdatedAt = now

	id, err := h.equipment.InsertEquipment(r.Context(), eq)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Get returns one asset by ID.
func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	eq, err := h.equipment.FindEquipmentByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

// Update replaces an asset record and refreshes the derived fields.
func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var eq models.Equipment
	if !decodeBody(w, r, &eq) {
		return
	}
	if err := eq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	eq.Recalculate()
	eq.UpdatedAt = time.Now()

	if err := h.equipment.UpdateEquipment(r.Context(), r.PathValue("id"), eq); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Equipment updated")
}

// Delete removes an asset. Service logs, contracts and reminders referencing
// it are left in place; readers tolerate the dangling reference.
func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.equipment.DeleteEquipment(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Equipment deleted")
}

// SetStatus handles the uptime manager's status toggle. Marking an asset
// Down pushes an alert to the broker.
func (h *EquipmentHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.EquipmentStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !models.IsValidEquipmentStatus(req.Status) {
		http.Error(w, "Invalid equipment status", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	if err := h.equipment.UpdateEquipmentStatus(r.Context(), id, req.Status); err != nil {
		writeStoreError(w, err)
		return
	}

	if req.Status == models.StatusDown {
		eq, err := h.equipment.FindEquipmentByID(r.Context(), id)
		if err != nil {
			log.WithError(err).WithField("equipment_id", id).Warn("status alert skipped")
		} else {
			h.alerts.AssetDown(*eq)
		}
	}
	writeMessage(w, http.StatusOK, "Status updated")
}

// MachineReport assembles the full lifecycle dossier for one asset.
func (h *EquipmentHandler) MachineReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eq, err := h.equipment.FindEquipmentByID(ctx, r.PathValue("id"))
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
	docs, err := h.documents.FindAllDocuments(ctx)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reports.BuildMachineReport(*eq, logs, contracts, docs, time.Now()))
}
