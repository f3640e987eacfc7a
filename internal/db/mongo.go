package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names in the backing store.
const (
	CollEquipment = "equipment"
	CollService   = "serviceLogs"
	CollContracts = "maintenanceContracts"
	CollVendors   = "vendors"
	CollEngineers = "engineers"
	CollParts     = "spareParts"
	CollReminders = "paymentReminders"
	CollDocuments = "documents"
	CollUsers     = "users"
)

// ConnectMongo connects to MongoDB at the given URI and verifies the
// connection with a ping.
func ConnectMongo(uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// MongoCollection wraps one MongoDB collection. A single instance is bound
// to a single collection; the entity methods live in the per-entity files.
type MongoCollection struct {
	Collection *mongo.Collection
}

// NewMongoCollection binds a wrapper to a named collection.
func NewMongoCollection(client *mongo.Client, database, name string) *MongoCollection {
	return &MongoCollection{Collection: client.Database(database).Collection(name)}
}

// Store fans the database out into one wrapper per collection.
type Store struct {
	Equipment *MongoCollection
	Service   *MongoCollection
	Contracts *MongoCollection
	Vendors   *MongoCollection
	Engineers *MongoCollection
	Parts     *MongoCollection
	Reminders *MongoCollection
	Documents *MongoCollection
	Users     *MongoUserCollection
}

// NewStore builds the collection fan-out for a database.
func NewStore(client *mongo.Client, database string) *Store {
	return &Store{
		Equipment: NewMongoCollection(client, database, CollEquipment),
		Service:   NewMongoCollection(client, database, CollService),
		Contracts: NewMongoCollection(client, database, CollContracts),
		Vendors:   NewMongoCollection(client, database, CollVendors),
		Engineers: NewMongoCollection(client, database, CollEngineers),
		Parts:     NewMongoCollection(client, database, CollParts),
		Reminders: NewMongoCollection(client, database, CollReminders),
		Documents: NewMongoCollection(client, database, CollDocuments),
		Users:     &MongoUserCollection{Collection: client.Database(database).Collection(CollUsers)},
	}
}
