package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
	"github.com/jamesonvoice/biomedicaldashboard/internal/notify"
)

type reportMocks struct {
	equipment *MockEquipmentCollection
	service   *MockServiceLogCollection
	contracts *MockContractCollection
	parts     *MockSparePartCollection
	reminders *MockReminderCollection
}

func newReportHandler() (*ReportHandler, reportMocks) {
	m := reportMocks{
		equipment: new(MockEquipmentCollection),
		service:   new(MockServiceLogCollection),
		contracts: new(MockContractCollection),
		parts:     new(MockSparePartCollection),
		reminders: new(MockReminderCollection),
	}
	mailer := notify.NewMailer("", 0, "", "", "", nil)
	return NewReportHandler(m.equipment, m.service, m.contracts, m.parts, m.reminders, mailer), m
}

func TestReportHandler_Financial(t *testing.T) {
	purchase := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	fleet := []models.Equipment{
		{
			ID:              primitive.NewObjectID(),
			Name:            "Ventilator",
			PurchasePrice:   50000,
			PaidAmount:      20000,
			RemainingAmount: 30000,
			PurchaseDate:    &purchase,
		},
	}

	t.Run("json", func(t *testing.T) {
		handler, m := newReportHandler()
		m.equipment.On("FindAllEquipment", mock.Anything).Return(fleet, nil)

		req := httptest.NewRequest("GET", "/api/reports/financial", nil)
		w := httptest.NewRecorder()

		handler.Financial(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "Ventilator")
		m.equipment.AssertExpectations(t)
	})

	t.Run("csv export", func(t *testing.T) {
		handler, m := newReportHandler()
		m.equipment.On("FindAllEquipment", mock.Anything).Return(fleet, nil)

		req := httptest.NewRequest("GET", "/api/reports/financial?format=csv", nil)
		w := httptest.NewRecorder()

		handler.Financial(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "financial-history.csv")
		assert.Contains(t, w.Body.String(), "Ventilator")
		m.equipment.AssertExpectations(t)
	})

	t.Run("asset filter narrows scope", func(t *testing.T) {
		other := models.Equipment{ID: primitive.NewObjectID(), Name: "Defibrillator", PurchasePrice: 900}
		handler, m := newReportHandler()
		m.equipment.On("FindAllEquipment", mock.Anything).Return(append(fleet, other), nil)

		req := httptest.NewRequest("GET", "/api/reports/financial?assets="+fleet[0].ID.Hex(), nil)
		w := httptest.NewRecorder()

		handler.Financial(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Ventilator")
		assert.NotContains(t, w.Body.String(), "Defibrillator")
		m.equipment.AssertExpectations(t)
	})

	t.Run("store failure maps to 502", func(t *testing.T) {
		handler, m := newReportHandler()
		m.equipment.On("FindAllEquipment", mock.Anything).Return(nil, assert.AnError)

		req := httptest.NewRequest("GET", "/api/reports/financial", nil)
		w := httptest.NewRecorder()

		handler.Financial(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		m.equipment.AssertExpectations(t)
	})
}

func TestReportHandler_Warranty(t *testing.T) {
	handler, m := newReportHandler()

	expiry := time.Now().AddDate(0, 2, 0)
	fleet := []models.Equipment{
		{ID: primitive.NewObjectID(), Name: "Covered Scanner", HasWarranty: true, WarrantyExpiryDate: &expiry},
		{ID: primitive.NewObjectID(), Name: "Bare Centrifuge"},
	}
	m.equipment.On("FindAllEquipment", mock.Anything).Return(fleet, nil)
	m.contracts.On("FindAllContracts", mock.Anything).Return([]models.MaintenanceContract{}, nil)

	req := httptest.NewRequest("GET", "/api/reports/warranty", nil)
	w := httptest.NewRecorder()

	handler.Warranty(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Covered Scanner")
	assert.Contains(t, w.Body.String(), "Bare Centrifuge")

	m.equipment.AssertExpectations(t)
	m.contracts.AssertExpectations(t)
}

func TestReportHandler_Dashboard(t *testing.T) {
	handler, m := newReportHandler()

	fleet := []models.Equipment{
		{ID: primitive.NewObjectID(), Name: "Ventilator", Status: models.StatusOperational, RemainingAmount: 5000},
		{ID: primitive.NewObjectID(), Name: "CT Scanner", Status: models.StatusDown},
	}
	m.equipment.On("FindAllEquipment", mock.Anything).Return(fleet, nil)
	m.service.On("FindAllServiceLogs", mock.Anything).Return([]models.ServiceLog{}, nil)
	m.contracts.On("FindAllContracts", mock.Anything).Return([]models.MaintenanceContract{}, nil)
	m.reminders.On("FindAllReminders", mock.Anything).Return([]models.PaymentReminder{}, nil)

	req := httptest.NewRequest("GET", "/api/reports/dashboard", nil)
	w := httptest.NewRecorder()

	handler.Dashboard(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	m.equipment.AssertExpectations(t)
	m.service.AssertExpectations(t)
	m.contracts.AssertExpectations(t)
	m.reminders.AssertExpectations(t)
}

func TestReportHandler_LowStock(t *testing.T) {
	handler, m := newReportHandler()

	parts := []models.SparePart{
		{Name: "O2 Sensor", Quantity: 1, MinQuantity: 3},
		{Name: "Filter", Quantity: 10, MinQuantity: 2},
	}
	m.parts.On("FindAllSpareParts", mock.Anything).Return(parts, nil)

	req := httptest.NewRequest("GET", "/api/reports/lowstock", nil)
	w := httptest.NewRecorder()

	handler.LowStock(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "O2 Sensor")
	assert.NotContains(t, w.Body.String(), "Filter")
	m.parts.AssertExpectations(t)
}

func TestReportHandler_SendDigest(t *testing.T) {
	t.Run("unconfigured mailer yields 503", func(t *testing.T) {
		handler, m := newReportHandler()

		m.equipment.On("FindAllEquipment", mock.Anything).Return([]models.Equipment{}, nil)
		m.service.On("FindAllServiceLogs", mock.Anything).Return([]models.ServiceLog{}, nil)
		m.reminders.On("FindAllReminders", mock.Anything).Return([]models.PaymentReminder{}, nil)

		req := httptest.NewRequest("POST", "/api/notify/digest", nil)
		w := httptest.NewRecorder()

		handler.SendDigest(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("store failure yields 502", func(t *testing.T) {
		handler, m := newReportHandler()

		m.equipment.On("FindAllEquipment", mock.Anything).Return(nil, assert.AnError)

		req := httptest.NewRequest("POST", "/api/notify/digest", nil)
		w := httptest.NewRecorder()

		handler.SendDigest(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	Health(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
