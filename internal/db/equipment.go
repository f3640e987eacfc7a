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

// InsertEquipment inserts an equipment record and returns its assigned ID.
func (c *MongoCollection) InsertEquipment(ctx context.Context, eq models.Equipment) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	eq.CreatedAt = time.Now()
	eq.UpdatedAt = time.Now()

	var res *mongo.InsertOneResult
	err := withRetry(ctx, "insert equipment", func() error {
		var err error
		res, err = c.Collection.InsertOne(ctx, eq)
		return err
	})
	if err != nil {
		return "", err
	}
	return objectIDHex(res.InsertedID), nil
}

// FindAllEquipment fetches the full equipment snapshot.
func (c *MongoCollection) FindAllEquipment(ctx context.Context) ([]models.Equipment, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var out []models.Equipment
	err := withRetry(ctx, "find equipment", func() error {
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

// FindEquipmentByID finds an equipment record by its ID.
func (c *MongoCollection) FindEquipmentByID(ctx context.Context, id string) (*models.Equipment, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid equipment ID: %w", err)
	}

	var eq models.Equipment
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&eq)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &eq, nil
}

// UpdateEquipment replaces an equipment document. Full-document update: the
// last writer wins.
func (c *MongoCollection) UpdateEquipment(ctx context.Context, id string, eq models.Equipment) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid equipment ID: %w", err)
	}
	eq.ID = objectID
	eq.UpdatedAt = time.Now()

	return withRetry(ctx, "update equipment", func() error {
		res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, eq)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// UpdateEquipmentStatus flips only the status field, for the uptime toggle.
func (c *MongoCollection) UpdateEquipmentStatus(ctx context.Context, id string, status models.EquipmentStatus) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid equipment ID: %w", err)
	}
	return withRetry(ctx, "update equipment status", func() error {
		res, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID},
			bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteEquipment removes an equipment record. Deletion does not cascade:
// service logs, contracts and reminders keep their references.
func (c *MongoCollection) DeleteEquipment(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid equipment ID: %w", err)
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

func objectIDHex(v interface{}) string {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}
