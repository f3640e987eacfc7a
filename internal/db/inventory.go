package db

import (
	"context"
	"fmt"

	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertSparePart inserts a spare part record.
func (c *MongoCollection) InsertSparePart(ctx context.Context, p models.SparePart) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	var res *mongo.InsertOneResult
	err := withRetry(ctx, "insert spare part", func() error {
		var err error
		res, err = c.Collection.InsertOne(ctx, p)
		return err
	})
	if err != nil {
		return "", err
	}
	return objectIDHex(res.InsertedID), nil
}

// FindAllSpareParts fetches the full inventory snapshot.
func (c *MongoCollection) FindAllSpareParts(ctx context.Context) ([]models.SparePart, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var out []models.SparePart
	err := withRetry(ctx, "find spare parts", func() error {
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

// UpdateSparePart replaces a spare part document.
func (c *MongoCollection) UpdateSparePart(ctx context.Context, id string, p models.SparePart) error {
	return c.replaceByID(ctx, "update spare part", id, func(oid primitive.ObjectID) interface{} {
		p.ID = oid
		return p
	})
}

// DeleteSparePart removes a spare part.
func (c *MongoCollection) DeleteSparePart(ctx context.Context, id string) error {
	return c.deleteByID(ctx, id)
}

// InsertDocument inserts document attachment metadata.
func (c *MongoCollection) InsertDocument(ctx context.Context, d models.Document) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	var res *mongo.InsertOneResult
	err := withRetry(ctx, "insert document", func() error {
		var err error
		res, err = c.Collection.InsertOne(ctx, d)
		return err
	})
	if err != nil {
		return "", err
	}
	return objectIDHex(res.InsertedID), nil
}

// FindAllDocuments fetches the full document metadata snapshot.
func (c *MongoCollection) FindAllDocuments(ctx context.Context) ([]models.Document, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var out []models.Document
	err := withRetry(ctx, "find documents", func() error {
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

// DeleteDocument removes document metadata. The binary in the external
// object store is not touched.
func (c *MongoCollection) DeleteDocument(ctx context.Context, id string) error {
	return c.deleteByID(ctx, id)
}
