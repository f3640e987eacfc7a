package db

import (
	"context"

	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
)

// EquipmentCollection defines the interface for equipment operations.
type EquipmentCollection interface {
	InsertEquipment(ctx context.Context, eq models.Equipment) (string, error)
	FindAllEquipment(ctx context.Context) ([]models.Equipment, error)
	FindEquipmentByID(ctx context.Context, id string) (*models.Equipment, error)
	UpdateEquipment(ctx context.Context, id string, eq models.Equipment) error
	UpdateEquipmentStatus(ctx context.Context, id string, status models.EquipmentStatus) error
	DeleteEquipment(ctx context.Context, id string) error
}

// ServiceLogCollection defines the interface for service log operations.
type ServiceLogCollection interface {
	InsertServiceLog(ctx context.Context, sl models.ServiceLog) (string, error)
	FindAllServiceLogs(ctx context.Context) ([]models.ServiceLog, error)
	FindServiceLogByID(ctx context.Context, id string) (*models.ServiceLog, error)
	UpdateServiceLog(ctx context.Context, id string, sl models.ServiceLog) error
	DeleteServiceLog(ctx context.Context, id string) error
}

// ContractCollection defines the interface for maintenance contract operations.
type ContractCollection interface {
	InsertContract(ctx context.Context, c models.MaintenanceContract) (string, error)
	FindAllContracts(ctx context.Context) ([]models.MaintenanceContract, error)
	FindContractByID(ctx context.Context, id string) (*models.MaintenanceContract, error)
	UpdateContract(ctx context.Context, id string, c models.MaintenanceContract) error
	DeleteContract(ctx context.Context, id string) error
}

// VendorCollection defines the interface for vendor directory operations.
type VendorCollection interface {
	InsertVendor(ctx context.Context, v models.Vendor) (string, error)
	FindAllVendors(ctx context.Context) ([]models.Vendor, error)
	UpdateVendor(ctx context.Context, id string, v models.Vendor) error
	DeleteVendor(ctx context.Context, id string) error
}

// EngineerCollection defines the interface for engineer directory operations.
type EngineerCollection interface {
	InsertEngineer(ctx context.Context, e models.Engineer) (string, error)
	FindAllEngineers(ctx context.Context) ([]models.Engineer, error)
	UpdateEngineer(ctx context.Context, id string, e models.Engineer) error
	DeleteEngineer(ctx context.Context, id string) error
}

// SparePartCollection defines the interface for spare part inventory operations.
type SparePartCollection interface {
	InsertSparePart(ctx context.Context, p models.SparePart) (string, error)
	FindAllSpareParts(ctx context.Context) ([]models.SparePart, error)
	UpdateSparePart(ctx context.Context, id string, p models.SparePart) error
	DeleteSparePart(ctx context.Context, id string) error
}

// ReminderCollection defines the interface for payment reminder operations.
type ReminderCollection interface {
	InsertReminder(ctx context.Context, r models.PaymentReminder) (string, error)
	FindAllReminders(ctx context.Context) ([]models.PaymentReminder, error)
	FindRemindersBySource(ctx context.Context, sourceID string) ([]models.PaymentReminder, error)
	UpdateReminderStatus(ctx context.Context, id string, status models.ReminderStatus) error
	DeleteReminder(ctx context.Context, id string) error
}

// DocumentCollection defines the interface for document metadata operations.
type DocumentCollection interface {
	InsertDocument(ctx context.Context, d models.Document) (string, error)
	FindAllDocuments(ctx context.Context) ([]models.Document, error)
	DeleteDocument(ctx context.Context, id string) error
}
