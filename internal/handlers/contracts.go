package handlers

import (
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jamesonvoice/biomedicaldashboard/internal/coverage"
	"github.com/jamesonvoice/biomedicaldashboard/internal/db"
	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
)

// ContractHandler serves the maintenance contract register.
type ContractHandler struct {
	contracts db.ContractCollection
	equipment db.EquipmentCollection
}

// NewContractHandler creates a contract handler.
func NewContractHandler(contracts db.ContractCollection, equipment db.EquipmentCollection) *ContractHandler {
	return &ContractHandler{contracts: contracts, equipment: equipment}
}

// List returns the full contract snapshot with statuses refreshed in the
// response (the stored marker is only refreshed on writes).
func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.contracts.FindAllContracts(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	now := time.Now()
	for i := range contracts {
		contracts[i].RefreshStatus(now)
	}
	if contracts == nil {
		contracts = []models.MaintenanceContract{}
	}
	writeJSON(w, http.StatusOK, contracts)
}

// Create enrolls an asset in a contract. If the asset already has active
// coverage (a live warranty or another running contract) the contract is
// created anyway and the response carries a warning.
func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.MaintenanceContract
	if !decodeBody(w, r, &c) {
		return
	}
	if err := c.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c.CreatedAt = time.Now()

	warning := h.overlapWarning(r, c.EquipmentID)

	id, err := h.contracts.InsertContract(r.Context(), c)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	resp := map[string]string{"id": id}
	if warning != "" {
		resp["warning"] = warning
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Get returns one contract by ID.
func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.contracts.FindContractByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	c.RefreshStatus(time.Now())
	writeJSON(w, http.StatusOK, c)
}

// Update replaces a contract.
func (h *ContractHandler) Update(w http.ResponseWriter, r *http.Request) {
	var c models.MaintenanceContract
	if !decodeBody(w, r, &c) {
		return
	}
	if err := c.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.contracts.UpdateContract(r.Context(), r.PathValue("id"), c); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Contract updated")
}

// Delete removes a contract.
func (h *ContractHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.contracts.DeleteContract(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Contract deleted")
}

// overlapWarning checks whether the referenced asset already has active
// coverage, from its warranty or from a contract it is already enrolled in.
// Lookup failures only suppress the warning; enrollment proceeds.
func (h *ContractHandler) overlapWarning(r *http.Request, equipmentID string) string {
	eq, err := h.equipment.FindEquipmentByID(r.Context(), equipmentID)
	if err != nil {
		log.WithError(err).WithField("equipment_id", equipmentID).Debug("overlap check skipped")
		return ""
	}
	existing, err := h.contracts.FindAllContracts(r.Context())
	if err != nil {
		log.WithError(err).WithField("equipment_id", equipmentID).Debug("overlap check skipped")
		return ""
	}
	cov := coverage.Resolve(*eq, existing, time.Now())
	switch cov.Kind {
	case coverage.KindWarranty:
		return fmt.Sprintf("%s is under warranty until %s; the warranty takes priority over this contract until then",
			eq.Name, cov.Expiry.Format("2006-01-02"))
	case coverage.KindContract:
		return fmt.Sprintf("%s already has an active %s contract until %s",
			eq.Name, cov.ContractType, cov.Expiry.Format("2006-01-02"))
	default:
		return ""
	}
}
