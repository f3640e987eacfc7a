package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
)

// MockEquipmentCollection is a mock implementation of EquipmentCollection
type MockEquipmentCollection struct {
	mock.Mock
}

func (m *MockEquipmentCollection) InsertEquipment(ctx context.Context, eq models.Equipment) (string, error) {
	args := m.Called(ctx, eq)
	return args.String(0), args.Error(1)
}

func (m *MockEquipmentCollection) FindAllEquipment(ctx context.Context) ([]models.Equipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Equipment), args.Error(1)
}

func (m *MockEquipmentCollection) FindEquipmentByID(ctx context.Context, id string) (*models.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Equipment), args.Error(1)
}

func (m *MockEquipmentCollection) UpdateEquipment(ctx context.Context, id string, eq models.Equipment) error {
	args := m.Called(ctx, id, eq)
	return args.Error(0)
}

func (m *MockEquipmentCollection) UpdateEquipmentStatus(ctx context.Context, id string, status models.EquipmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockEquipmentCollection) DeleteEquipment(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockServiceLogCollection is a mock implementation of ServiceLogCollection
type MockServiceLogCollection struct {
	mock.Mock
}

func (m *MockServiceLogCollection) InsertServiceLog(ctx context.Context, sl models.ServiceLog) (string, error) {
	args := m.Called(ctx, sl)
	return args.String(0), args.Error(1)
}

func (m *MockServiceLogCollection) FindAllServiceLogs(ctx context.Context) ([]models.ServiceLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ServiceLog), args.Error(1)
}

func (m *MockServiceLogCollection) FindServiceLogByID(ctx context.Context, id string) (*models.ServiceLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceLog), args.Error(1)
}

func (m *MockServiceLogCollection) UpdateServiceLog(ctx context.Context, id string, sl models.ServiceLog) error {
	args := m.Called(ctx, id, sl)
	return args.Error(0)
}

func (m *MockServiceLogCollection) DeleteServiceLog(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockContractCollection is a mock implementation of ContractCollection
type MockContractCollection struct {
	mock.Mock
}

func (m *MockContractCollection) InsertContract(ctx context.Context, c models.MaintenanceContract) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

func (m *MockContractCollection) FindAllContracts(ctx context.Context) ([]models.MaintenanceContract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenanceContract), args.Error(1)
}

func (m *MockContractCollection) FindContractByID(ctx context.Context, id string) (*models.MaintenanceContract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceContract), args.Error(1)
}

func (m *MockContractCollection) UpdateContract(ctx context.Context, id string, c models.MaintenanceContract) error {
	args := m.Called(ctx, id, c)
	return args.Error(0)
}

func (m *MockContractCollection) DeleteContract(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSparePartCollection is a mock implementation of SparePartCollection
type MockSparePartCollection struct {
	mock.Mock
}

func (m *MockSparePartCollection) InsertSparePart(ctx context.Context, p models.SparePart) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockSparePartCollection) FindAllSpareParts(ctx context.Context) ([]models.SparePart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SparePart), args.Error(1)
}

func (m *MockSparePartCollection) UpdateSparePart(ctx context.Context, id string, p models.SparePart) error {
	args := m.Called(ctx, id, p)
	return args.Error(0)
}

func (m *MockSparePartCollection) DeleteSparePart(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReminderCollection is a mock implementation of ReminderCollection
type MockReminderCollection struct {
	mock.Mock
}

func (m *MockReminderCollection) InsertReminder(ctx context.Context, r models.PaymentReminder) (string, error) {
	args := m.Called(ctx, r)
	return args.String(0), args.Error(1)
}

func (m *MockReminderCollection) FindAllReminders(ctx context.Context) ([]models.PaymentReminder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PaymentReminder), args.Error(1)
}

func (m *MockReminderCollection) FindRemindersBySource(ctx context.Context, sourceID string) ([]models.PaymentReminder, error) {
	args := m.Called(ctx, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PaymentReminder), args.Error(1)
}

func (m *MockReminderCollection) UpdateReminderStatus(ctx context.Context, id string, status models.ReminderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReminderCollection) DeleteReminder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDocumentCollection is a mock implementation of DocumentCollection
type MockDocumentCollection struct {
	mock.Mock
}

func (m *MockDocumentCollection) InsertDocument(ctx context.Context, d models.Document) (string, error) {
	args := m.Called(ctx, d)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentCollection) FindAllDocuments(ctx context.Context) ([]models.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Document), args.Error(1)
}

func (m *MockDocumentCollection) DeleteDocument(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
