package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertContract inserts a maintenance contract. The stored status marker is
// refreshed from the end date before the write.
func (c *MongoCollection) InsertContract(ctx context.Context, mc models.MaintenanceContract) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	mc.RefreshStatus(time.Now())
	mc.CreatedAt = time.Now()

	var res *mongo.InsertOneResult
	err := withRetry(ctx, "insert contract", func() error {
		var err error
		res, err = c.Collection.InsertOne(ctx, mc)
		return err
	})
	if err != nil {
		return "", err
	}
	return objectIDHex(res.InsertedID), nil
}

// FindAllContracts fetches the full contract snapshot.
func (c *MongoCollection) FindAllContracts(ctx context.Context) ([]models.MaintenanceContract, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var out []models.MaintenanceContract
	err := withRetry(ctx, "find contracts", func() error {
		cursor, err := c.Collection.Find(ctx, bson.M{})
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		out = nil
		return cursor.All(ctx, &out)
	})
	return out, err
}

// FindContractByID finds a contract by its ID.
func (c *MongoCollection) FindContractByID(ctx context.Context, id string) (*models.MaintenanceContract, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid contract ID: %w", err)
	}
	var mc models.MaintenanceContract
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&mc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &mc, nil
}

// UpdateContract replaces a contract document, refreshing the status marker.
func (c *MongoCollection) UpdateContract(ctx context.Context, id string, mc models.MaintenanceContract) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid contract ID: %w", err)
	}
	mc.ID = objectID
	mc.RefreshStatus(time.Now())

	return withRetry(ctx, "update contract", func() error {
		res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, mc)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteContract removes a contract.
func (c *MongoCollection) DeleteContract(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid contract ID: %w", err)
	}
	res, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
