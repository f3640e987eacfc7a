package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
)

func postContract(t *testing.T, handler *ContractHandler, c models.MaintenanceContract) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Failed to marshal contract: %v", err)
	}
	r := httptest.NewRequest("POST", "/api/contracts", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.Create(w, r)
	return w
}

func validContract(equipmentID string) models.MaintenanceContract {
	return models.MaintenanceContract{
		EquipmentID: equipmentID,
		CompanyName: "MedServe Ltd",
		StartDate:   time.Now(),
		EndDate:     time.Now().AddDate(1, 0, 0),
		Amount:      12000,
		Type:        models.ContractAMC,
	}
}

func TestContractHandler_Create(t *testing.T) {
	t.Run("enrollment without warranty has no warning", func(t *testing.T) {
		mockContracts := new(MockContractCollection)
		mockEquipment := new(MockEquipmentCollection)
		handler := NewContractHandler(mockContracts, mockEquipment)

		id := primitive.NewObjectID()
		eq := &models.Equipment{ID: id, Name: "Autoclave"}
		mockEquipment.On("FindEquipmentByID", mock.Anything, id.Hex()).Return(eq, nil)
		mockContracts.On("FindAllContracts", mock.Anything).Return([]models.MaintenanceContract{}, nil)
		mockContracts.On("InsertContract", mock.Anything, mock.AnythingOfType("models.MaintenanceContract")).Return("c1", nil)

		w := postContract(t, handler, validContract(id.Hex()))

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]string
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		if err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		assert.Equal(t, "c1", resp["id"])
		assert.NotContains(t, resp, "warning")

		mockContracts.AssertExpectations(t)
		mockEquipment.AssertExpectations(t)
	})

	t.Run("active warranty produces overlap warning but still enrolls", func(t *testing.T) {
		mockContracts := new(MockContractCollection)
		mockEquipment := new(MockEquipmentCollection)
		handler := NewContractHandler(mockContracts, mockEquipment)

		id := primitive.NewObjectID()
		expiry := time.Now().AddDate(0, 6, 0)
		eq := &models.Equipment{
			ID:                 id,
			Name:               "Autoclave",
			HasWarranty:        true,
			WarrantyExpiryDate: &expiry,
		}
		mockEquipment.On("FindEquipmentByID", mock.Anything, id.Hex()).Return(eq, nil)
		mockContracts.On("FindAllContracts", mock.Anything).Return([]models.MaintenanceContract{}, nil)
		mockContracts.On("InsertContract", mock.Anything, mock.AnythingOfType("models.MaintenanceContract")).Return("c2", nil)

		w := postContract(t, handler, validContract(id.Hex()))

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]string
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		if err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		assert.Equal(t, "c2", resp["id"])
		assert.Contains(t, resp["warning"], "under warranty")
		assert.Contains(t, resp["warning"], expiry.Format("2006-01-02"))

		mockContracts.AssertExpectations(t)
		mockEquipment.AssertExpectations(t)
	})

	t.Run("active contract produces overlap warning but still enrolls", func(t *testing.T) {
		mockContracts := new(MockContractCollection)
		mockEquipment := new(MockEquipmentCollection)
		handler := NewContractHandler(mockContracts, mockEquipment)

		id := primitive.NewObjectID()
		eq := &models.Equipment{ID: id, Name: "Autoclave"}
		end := time.Now().AddDate(0, 6, 0)
		existing := []models.MaintenanceContract{
			{
				ID:          primitive.NewObjectID(),
				EquipmentID: id.Hex(),
				StartDate:   time.Now().AddDate(0, -6, 0),
				EndDate:     end,
				Type:        models.ContractAMC,
			},
		}
		mockEquipment.On("FindEquipmentByID", mock.Anything, id.Hex()).Return(eq, nil)
		mockContracts.On("FindAllContracts", mock.Anything).Return(existing, nil)
		mockContracts.On("InsertContract", mock.Anything, mock.AnythingOfType("models.MaintenanceContract")).Return("c9", nil)

		w := postContract(t, handler, validContract(id.Hex()))

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]string
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		if err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		assert.Equal(t, "c9", resp["id"])
		assert.Contains(t, resp["warning"], "active AMC contract")
		assert.Contains(t, resp["warning"], end.Format("2006-01-02"))

		mockContracts.AssertExpectations(t)
		mockEquipment.AssertExpectations(t)
	})

	t.Run("lookup failure suppresses the warning only", func(t *testing.T) {
		mockContracts := new(MockContractCollection)
		mockEquipment := new(MockEquipmentCollection)
		handler := NewContractHandler(mockContracts, mockEquipment)

		mockEquipment.On("FindEquipmentByID", mock.Anything, "ghost").Return(nil, assert.AnError)
		mockContracts.On("InsertContract", mock.Anything, mock.AnythingOfType("models.MaintenanceContract")).Return("c3", nil)

		w := postContract(t, handler, validContract("ghost"))

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]string
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		if err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		assert.NotContains(t, resp, "warning")

		mockContracts.AssertExpectations(t)
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		mockContracts := new(MockContractCollection)
		handler := NewContractHandler(mockContracts, new(MockEquipmentCollection))

		c := validContract("eq1")
		c.Type = "PPM"
		w := postContract(t, handler, c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockContracts.AssertNotCalled(t, "InsertContract")
	})

	t.Run("end before start rejected", func(t *testing.T) {
		mockContracts := new(MockContractCollection)
		handler := NewContractHandler(mockContracts, new(MockEquipmentCollection))

		c := validContract("eq1")
		c.EndDate = c.StartDate.AddDate(-1, 0, 0)
		w := postContract(t, handler, c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockContracts.AssertNotCalled(t, "InsertContract")
	})
}

func TestContractHandler_List(t *testing.T) {
	mockContracts := new(MockContractCollection)
	handler := NewContractHandler(mockContracts, new(MockEquipmentCollection))

	contracts := []models.MaintenanceContract{
		{
			ID:      primitive.NewObjectID(),
			EndDate: time.Now().AddDate(0, 3, 0),
			Status:  models.ContractExpired, // stale stored marker
			Type:    models.ContractAMC,
		},
		{
			ID:      primitive.NewObjectID(),
			EndDate: time.Now().AddDate(0, -1, 0),
			Status:  models.ContractActive, // stale stored marker
			Type:    models.ContractCMC,
		},
	}
	mockContracts.On("FindAllContracts", mock.Anything).Return(contracts, nil)

	req := httptest.NewRequest("GET", "/api/contracts", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []models.MaintenanceContract
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	if err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	assert.Len(t, resp, 2)
	assert.Equal(t, models.ContractActive, resp[0].Status)
	assert.Equal(t, models.ContractExpired, resp[1].Status)

	mockContracts.AssertExpectations(t)
}
