package handlers

import (
	"net/http"
	"time"

	"github.com/jamesonvoice/biomedicaldashboard/internal/alerts"
	"github.com/jamesonvoice/biomedicaldashboard/internal/db"
	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
)

// InventoryHandler serves the spare part stock and document metadata.
type InventoryHandler struct {
	parts     db.SparePartCollection
	documents db.DocumentCollection
	alerts    *alerts.Publisher
}

// NewInventoryHandler creates an inventory handler.
func NewInventoryHandler(parts db.SparePartCollection, documents db.DocumentCollection, publisher *alerts.Publisher) *InventoryHandler {
	return &InventoryHandler{parts: parts, documents: documents, alerts: publisher}
}

// ListParts returns the full spare part snapshot.
func (h *InventoryHandler) ListParts(w http.ResponseWriter, r *http.Request) {
	parts, err := h.parts.FindAllSpareParts(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if parts == nil {
		parts = []models.SparePart{}
	}
	writeJSON(w, http.StatusOK, parts)
}

// CreatePart registers a spare part.
func (h *InventoryHandler) CreatePart(w http.ResponseWriter, r *http.Request) {
	var p models.SparePart
	if !decodeBody(w, r, &p) {
		return
	}
	if err := p.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := h.parts.InsertSparePart(r.Context(), p)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if p.BelowThreshold() {
		h.alerts.LowStock(p)
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdatePart replaces a spare part record. Stock dropping to or below the
// reorder threshold pushes a low-stock alert.
func (h *InventoryHandler) UpdatePart(w http.ResponseWriter, r *http.Request) {
	var p models.SparePart
	if !decodeBody(w, r, &p) {
		return
	}
	if err := p.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.parts.UpdateSparePart(r.Context(), r.PathValue("id"), p); err != nil {
		writeStoreError(w, err)
		return
	}
	if p.BelowThreshold() {
		h.alerts.LowStock(p)
	}
	writeMessage(w, http.StatusOK, "Spare part updated")
}

// DeletePart removes a spare part.
func (h *InventoryHandler) DeletePart(w http.ResponseWriter, r *http.Request) {
	if err := h.parts.DeleteSparePart(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Spare part deleted")
}

// ListDocuments returns the full document metadata snapshot.
func (h *InventoryHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documents.FindAllDocuments(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// CreateDocument registers document metadata; the binary itself lives in the
// external object store already.
func (h *InventoryHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var d models.Document
	if !decodeBody(w, r, &d) {
		return
	}
	if err := d.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if d.UploadDate.IsZero() {
		d.UploadDate = time.Now()
	}
	id, err := h.documents.InsertDocument(r.Context(), d)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// DeleteDocument removes document metadata.
func (h *InventoryHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.documents.DeleteDocument(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Document deleted")
}
