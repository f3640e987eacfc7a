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

// InsertReminder inserts a payment reminder; new reminders start Pending.
func (c *MongoCollection) InsertReminder(ctx context.Context, r models.PaymentReminder) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	r.Status = models.ReminderPending
	r.CreatedAt = time.Now()

	var res *mongo.InsertOneResult
	err := withRetry(ctx, "insert reminder", func() error {
		var err error
		res, err = c.Collection.InsertOne(ctx, r)
		return err
	})
	if err != nil {
		return "", err
	}
	return objectIDHex(res.InsertedID), nil
}

// FindAllReminders fetches the full reminder snapshot.
func (c *MongoCollection) FindAllReminders(ctx context.Context) ([]models.PaymentReminder, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var out []models.PaymentReminder
	err := withRetry(ctx, "find reminders", func() error {
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

// FindRemindersBySource fetches the reminders linked to one equipment or
// service log.
func (c *MongoCollection) FindRemindersBySource(ctx context.Context, sourceID string) ([]models.PaymentReminder, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var out []models.PaymentReminder
	err := withRetry(ctx, "find reminders by source", func() error {
		cursor, err := c.Collection.Find(ctx, bson.M{"source_id": sourceID})
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		out = nil
		return cursor.All(ctx, &out)
	})
	return out, err
}

// UpdateReminderStatus transitions a reminder's lifecycle state.
func (c *MongoCollection) UpdateReminderStatus(ctx context.Context, id string, status models.ReminderStatus) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid reminder ID: %w", err)
	}
	return withRetry(ctx, "update reminder status", func() error {
		res, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID},
			bson.M{"$set": bson.M{"status": status}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteReminder removes a reminder.
func (c *MongoCollection) DeleteReminder(ctx context.Context, id string) error {
	return c.deleteByID(ctx, id)
}
