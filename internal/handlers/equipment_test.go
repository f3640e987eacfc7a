package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jamesonvoice/biomedicaldashboard/internal/alerts"
	"github.com/jamesonvoice/biomedicaldashboard/internal/db"
	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
)

func newEquipmentHandler(equipment *MockEquipmentCollection, service *MockServiceLogCollection, contracts *MockContractCollection, documents *MockDocumentCollection) *EquipmentHandler {
	return NewEquipmentHandler(equipment, service, contracts, documents, alerts.NewPublisher("", ""))
}

func TestEquipmentHandler_List(t *testing.T) {
	t.Run("returns fleet", func(t *testing.T) {
		mockEquipment := new(MockEquipmentCollection)
		handler := newEquipmentHandler(mockEquipment, nil, nil, nil)

		fleet := []models.Equipment{
			{ID: primitive.NewObjectID(), Name: "Ventilator", Status: models.StatusOperational},
			{ID: primitive.NewObjectID(), Name: "Infusion Pump", Status: models.StatusDown},
		}
		mockEquipment.On("FindAllEquipment", mock.Anything).Return(fleet, nil)

		req := httptest.NewRequest("GET", "/api/equipment", nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response []models.Equipment
		err := json.Unmarshal(w.Body.Bytes(), &response)
		if err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		assert.Len(t, response, 2)
		assert.Equal(t, "Ventilator", response[0].Name)

		mockEquipment.AssertExpectations(t)
	})

	t.Run("empty store returns empty array", func(t *testing.T) {
		mockEquipment := new(MockEquipmentCollection)
		handler := newEquipmentHandler(mockEquipment, nil, nil, nil)

		mockEquipment.On("FindAllEquipment", mock.Anything).Return(nil, nil)

		req := httptest.NewRequest("GET", "/api/equipment", nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
		mockEquipment.AssertExpectations(t)
	})
}

func TestEquipmentHandler_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		mockEquipment := new(MockEquipmentCollection)
		handler := newEquipmentHandler(mockEquipment, nil, nil, nil)

		mockEquipment.On("InsertEquipment", mock.Anything, mock.MatchedBy(func(eq models.Equipment) bool {
			// Derived fields refresh and the status defaults on insert.
			return eq.Status == models.StatusOperational &&
				eq.RemainingAmount == 30000 &&
				!eq.CreatedAt.IsZero()
		})).Return("abc123", nil)

		eq := models.Equipment{
			Name:          "Ventilator",
			PurchasePrice: 50000,
			PaidAmount:    20000,
		}
		body, err := json.Marshal(eq)
		if err != nil {
			t.Fatalf("Failed to marshal equipment: %v", err)
		}
		req := httptest.NewRequest("POST", "/api/equipment", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]string
		err = json.Unmarshal(w.Body.Bytes(), &response)
		if err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		assert.Equal(t, "abc123", response["id"])
		mockEquipment.AssertExpectations(t)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		mockEquipment := new(MockEquipmentCollection)
		handler := newEquipmentHandler(mockEquipment, nil, nil, nil)

		body, err := json.Marshal(models.Equipment{PurchasePrice: 100})
		if err != nil {
			t.Fatalf("Failed to marshal equipment: %v", err)
		}
		req := httptest.NewRequest("POST", "/api/equipment", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockEquipment.AssertNotCalled(t, "InsertEquipment")
	})

	t.Run("invalid JSON rejected", func(t *testing.T) {
		mockEquipment := new(MockEquipmentCollection)
		handler := newEquipmentHandler(mockEquipment, nil, nil, nil)

		req := httptest.NewRequest("POST", "/api/equipment", bytes.NewBufferString("{not json"))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEquipmentHandler_Get(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		mockEquipment := new(MockEquipmentCollection)
		handler := newEquipmentHandler(mockEquipment, nil, nil, nil)

		mockEquipment.On("FindEquipmentByID", mock.Anything, "missing").Return(nil, db.ErrNotFound)

		req := httptest.NewRequest("GET", "/api/equipment/missing", nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.Get(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockEquipment.AssertExpectations(t)
	})

	t.Run("store failure maps to 502", func(t *testing.T) {
		mockEquipment := new(MockEquipmentCollection)
		handler := newEquipmentHandler(mockEquipment, nil, nil, nil)

		mockEquipment.On("FindEquipmentByID", mock.Anything, "abc").Return(nil, assert.AnError)

		req := httptest.NewRequest("GET", "/api/equipment/abc", nil)
		req.SetPathValue("id", "abc")
		w := httptest.NewRecorder()

		handler.Get(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		mockEquipment.AssertExpectations(t)
	})
}

func TestEquipmentHandler_SetStatus(t *testing.T) {
	t.Run("marking down re-fetches for the alert", func(t *testing.T) {
		mockEquipment := new(MockEquipmentCollection)
		handler := newEquipmentHandler(mockEquipment, nil, nil, nil)

		id := primitive.NewObjectID()
		eq := &models.Equipment{ID: id, Name: "CT Scanner", Status: models.StatusDown}
		mockEquipment.On("UpdateEquipmentStatus", mock.Anything, id.Hex(), models.StatusDown).Return(nil)
		mockEquipment.On("FindEquipmentByID", mock.Anything, id.Hex()).Return(eq, nil)

		body, err := json.Marshal(map[string]string{"status": string(models.StatusDown)})
		if err != nil {
			t.Fatalf("Failed to marshal status request: %v", err)
		}
		req := httptest.NewRequest("POST", "/api/equipment/"+id.Hex()+"/status", bytes.NewBuffer(body))
		req.SetPathValue("id", id.Hex())
		w := httptest.NewRecorder()

		handler.SetStatus(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockEquipment.AssertExpectations(t)
	})

	t.Run("operational transition skips the alert fetch", func(t *testing.T) {
		mockEquipment := new(MockEquipmentCollection)
		handler := newEquipmentHandler(mockEquipment, nil, nil, nil)

		mockEquipment.On("UpdateEquipmentStatus", mock.Anything, "abc", models.StatusOperational).Return(nil)

		body, err := json.Marshal(map[string]string{"status": string(models.StatusOperational)})
		if err != nil {
			t.Fatalf("Failed to marshal status request: %v", err)
		}
		req := httptest.NewRequest("POST", "/api/equipment/abc/status", bytes.NewBuffer(body))
		req.SetPathValue("id", "abc")
		w := httptest.NewRecorder()

		handler.SetStatus(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockEquipment.AssertNotCalled(t, "FindEquipmentByID")
		mockEquipment.AssertExpectations(t)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		mockEquipment := new(MockEquipmentCollection)
		handler := newEquipmentHandler(mockEquipment, nil, nil, nil)

		body, err := json.Marshal(map[string]string{"status": "Exploded"})
		if err != nil {
			t.Fatalf("Failed to marshal status request: %v", err)
		}
		req := httptest.NewRequest("POST", "/api/equipment/abc/status", bytes.NewBuffer(body))
		req.SetPathValue("id", "abc")
		w := httptest.NewRecorder()

		handler.SetStatus(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockEquipment.AssertNotCalled(t, "UpdateEquipmentStatus")
	})
}

func TestEquipmentHandler_MachineReport(t *testing.T) {
	mockEquipment := new(MockEquipmentCollection)
	mockService := new(MockServiceLogCollection)
	mockContracts := new(MockContractCollection)
	mockDocuments := new(MockDocumentCollection)
	handler := newEquipmentHandler(mockEquipment, mockService, mockContracts, mockDocuments)

	id := primitive.NewObjectID()
	eq := &models.Equipment{ID: id, Name: "MRI", Status: models.StatusOperational}
	logs := []models.ServiceLog{
		{EquipmentID: id.Hex(), Type: models.ServiceCorrective, Cost: 1200},
		{EquipmentID: "other", Type: models.ServiceCorrective, Cost: 900},
	}

	mockEquipment.On("FindEquipmentByID", mock.Anything, id.Hex()).Return(eq, nil)
	mockService.On("FindAllServiceLogs", mock.Anything).Return(logs, nil)
	mockContracts.On("FindAllContracts", mock.Anything).Return([]models.MaintenanceContract{}, nil)
	mockDocuments.On("FindAllDocuments", mock.Anything).Return([]models.Document{}, nil)

	req := httptest.NewRequest("GET", "/api/equipment/"+id.Hex()+"/report", nil)
	req.SetPathValue("id", id.Hex())
	w := httptest.NewRecorder()

	handler.MachineReport(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MRI")

	mockEquipment.AssertExpectations(t)
	mockService.AssertExpectations(t)
	mockContracts.AssertExpectations(t)
	mockDocuments.AssertExpectations(t)
}
