package db

import (
	"context"
	"testing"

	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
)

func TestConnectMongo_BadURI(t *testing.T) {
	client, err := ConnectMongo("mongodb://127.0.0.1:1/?connectTimeoutMS=50&serverSelectionTimeoutMS=50")
	if err == nil {
		t.Error("expected error for unreachable URI, got nil")
	}
	if client != nil && err != nil {
		t.Error("expected nil client on error")
	}
}

func TestInsertEquipment_NilCollection(t *testing.T) {
	coll := &MongoCollection{Collection: nil}
	_, err := coll.InsertEquipment(context.Background(), models.Equipment{Name: "Ventilator"})
	if err == nil {
		t.Error("expected error when collection is nil")
	}
}

func TestFindAllEquipment_NilCollection(t *testing.T) {
	coll := &MongoCollection{Collection: nil}
	if _, err := coll.FindAllEquipment(context.Background()); err == nil {
		t.Error("expected error when collection is nil")
	}
}

func TestFindEquipmentByID_InvalidID(t *testing.T) {
	coll := &MongoCollection{Collection: nil}
	if _, err := coll.FindEquipmentByID(context.Background(), "x"); err == nil {
		t.Error("expected error for nil collection or malformed ID")
	}
}

func TestUpdateReminderStatus_InvalidID(t *testing.T) {
	coll := &MongoCollection{Collection: nil}
	if err := coll.UpdateReminderStatus(context.Background(), "not-an-oid", models.ReminderPaid); err == nil {
		t.Error("expected error for nil collection")
	}
}
