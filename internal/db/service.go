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

// InsertServiceLog inserts a service log and returns its assigned ID.
func (c *MongoCollection) InsertServiceLog(ctx context.Context, sl models.ServiceLog) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	sl.CreatedAt = time.Now()
	sl.UpdatedAt = time.Now()

	var res *mongo.InsertOneResult
	err := withRetry(ctx, "insert service log", func() error {
		var err error
		res, err = c.Collection.InsertOne(ctx, sl)
		return err
	})
	if err != nil {
		return "", err
	}
	return objectIDHex(res.InsertedID), nil
}

// FindAllServiceLogs fetches the full service log snapshot.
func (c *MongoCollection) FindAllServiceLogs(ctx context.Context) ([]models.ServiceLog, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var out []models.ServiceLog
	err := withRetry(ctx, "find service logs", func() error {
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

// FindServiceLogByID finds a service log by its ID.
func (c *MongoCollection) FindServiceLogByID(ctx context.Context, id string) (*models.ServiceLog, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid service log ID: %w", err)
	}
	var sl models.ServiceLog
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&sl)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sl, nil
}

// UpdateServiceLog replaces a service log document.
func (c *MongoCollection) UpdateServiceLog(ctx context.Context, id string, sl models.ServiceLog) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid service log ID: %w", err)
	}
	sl.ID = objectID
	sl.UpdatedAt = time.Now()

	return withRetry(ctx, "update service log", func() error {
		res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, sl)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteServiceLog removes a service log.
func (c *MongoCollection) DeleteServiceLog(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid service log ID: %w", err)
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
