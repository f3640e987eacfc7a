package db

import (
	"context"
	"fmt"

	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertVendor inserts a vendor record.
func (c *MongoCollection) InsertVendor(ctx context.Context, v models.Vendor) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	var res *mongo.InsertOneResult
	err := withRetry(ctx, "insert vendor", func() error {
		var err error
		res, err = c.Collection.InsertOne(ctx, v)
		return err
	})
	if err != nil {
		return "", err
	}
	return objectIDHex(res.InsertedID), nil
}

// FindAllVendors fetches the full vendor snapshot.
func (c *MongoCollection) FindAllVendors(ctx context.Context) ([]models.Vendor, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var out []models.Vendor
	err := withRetry(ctx, "find vendors", func() error {
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

// UpdateVendor replaces a vendor document.
func (c *MongoCollection) UpdateVendor(ctx context.Context, id string, v models.Vendor) error {
	return c.replaceByID(ctx, "update vendor", id, func(oid primitive.ObjectID) interface{} {
		v.ID = oid
		return v
	})
}

// DeleteVendor removes a vendor.
func (c *MongoCollection) DeleteVendor(ctx context.Context, id string) error {
	return c.deleteByID(ctx, id)
}

// InsertEngineer inserts an engineer record.
func (c *MongoCollection) InsertEngineer(ctx context.Context, e models.Engineer) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	var res *mongo.InsertOneResult
	err := withRetry(ctx, "insert engineer", func() error {
		var err error
		res, err = c.Collection.InsertOne(ctx, e)
		return err
	})
	if err != nil {
		return "", err
	}
	return objectIDHex(res.InsertedID), nil
}

// FindAllEngineers fetches the full engineer snapshot.
func (c *MongoCollection) FindAllEngineers(ctx context.Context) ([]models.Engineer, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var out []models.Engineer
	err := withRetry(ctx, "find engineers", func() error {
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

// UpdateEngineer replaces an engineer document.
func (c *MongoCollection) UpdateEngineer(ctx context.Context, id string, e models.Engineer) error {
	return c.replaceByID(ctx, "update engineer", id, func(oid primitive.ObjectID) interface{} {
		e.ID = oid
		return e
	})
}

// DeleteEngineer removes an engineer.
func (c *MongoCollection) DeleteEngineer(ctx context.Context, id string) error {
	return c.deleteByID(ctx, id)
}

// replaceByID is the shared full-document replace used by the directory
// entities.
func (c *MongoCollection) replaceByID(ctx context.Context, opName, id string, bind func(primitive.ObjectID) interface{}) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid ID: %w", err)
	}
	doc := bind(objectID)
	return withRetry(ctx, opName, func() error {
		res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, doc)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (c *MongoCollection) deleteByID(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid ID: %w", err)
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
