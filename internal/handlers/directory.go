package handlers

import (
	"net/http"

	"github.com/jamesonvoice/biomedicaldashboard/internal/db"
	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
)

// DirectoryHandler serves the vendor and engineer directories.
type DirectoryHandler struct {
	vendors   db.VendorCollection
	engineers db.EngineerCollection
}

// NewDirectoryHandler creates a directory handler.
func NewDirectoryHandler(vendors db.VendorCollection, engineers db.EngineerCollection) *DirectoryHandler {
	return &DirectoryHandler{vendors: vendors, engineers: engineers}
}

// ListVendors returns the full vendor snapshot.
func (h *DirectoryHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.vendors.FindAllVendors(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if vendors == nil {
		vendors = []models.Vendor{}
	}
	writeJSON(w, http.StatusOK, vendors)
}

// CreateVendor registers a vendor.
func (h *DirectoryHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var v models.Vendor
	if !decodeBody(w, r, &v) {
		return
	}
	if err := v.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := h.vendors.InsertVendor(r.Context(), v)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateVendor replaces a vendor record.
func (h *DirectoryHandler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	var v models.Vendor
	if !decodeBody(w, r, &v) {
		return
	}
	if err := v.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.vendors.UpdateVendor(r.Context(), r.PathValue("id"), v); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Vendor updated")
}

// DeleteVendor removes a vendor.
func (h *DirectoryHandler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	if err := h.vendors.DeleteVendor(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Vendor deleted")
}

// ListEngineers returns the full engineer snapshot.
func (h *DirectoryHandler) ListEngineers(w http.ResponseWriter, r *http.Request) {
	engineers, err := h.engineers.FindAllEngineers(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if engineers == nil {
		engineers = []models.Engineer{}
	}
	writeJSON(w, http.StatusOK, engineers)
}

// CreateEngineer registers an engineer.
func (h *DirectoryHandler) CreateEngineer(w http.ResponseWriter, r *http.Request) {
	var e models.Engineer
	if !decodeBody(w, r, &e) {
		return
	}
	if err := e.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := h.engineers.InsertEngineer(r.Context(), e)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateEngineer replaces an engineer record.
func (h *DirectoryHandler) UpdateEngineer(w http.ResponseWriter, r *http.Request) {
	var e models.Engineer
	if !decodeBody(w, r, &e) {
		return
	}
	if err := e.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.engineers.UpdateEngineer(r.Context(), r.PathValue("id"), e); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Engineer updated")
}

// DeleteEngineer removes an engineer.
func (h *DirectoryHandler) DeleteEngineer(w http.ResponseWriter, r *http.Request) {
	if err := h.engineers.DeleteEngineer(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Engineer deleted")
}
