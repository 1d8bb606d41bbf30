package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo connects to MongoDB using the MONGO_URI environment variable.
func ConnectMongo() (*mongo.Client, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// MongoSnapshotStore persists one snapshot document per owner.
type MongoSnapshotStore struct {
	Collection *mongo.Collection
}

func (s *MongoSnapshotStore) Load(ctx context.Context, owner string) (*Snapshot, error) {
	if s.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var snap Snapshot
	err := s.Collection.FindOne(ctx, bson.M{"owner": owner}).Decode(&snap)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}
	return &snap, nil
}

func (s *MongoSnapshotStore) Save(ctx context.Context, owner string, snap *Snapshot) error {
	if s.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	snap.Owner = owner
	opts := options.Replace().SetUpsert(true)
	_, err := s.Collection.ReplaceOne(ctx, bson.M{"owner": owner}, snap, opts)
	return err
}
