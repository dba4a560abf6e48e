package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists documents in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "ghostify"
	Collection string // defaults to "documents"
}

// NewMongoStore connects to MongoDB and verifies the connection with
// a ping before returning.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "ghostify"
	}
	if cfg.Collection == "" {
		cfg.Collection = "documents"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get retrieves a record by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find document %s: %w", id, err)
	}
	return &rec, nil
}

// Put inserts or replaces a record, preserving CreatedAt on replace.
func (s *MongoStore) Put(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		return ErrEmptyID
	}

	now := time.Now().UTC()
	cp := *rec
	cp.UpdatedAt = now
	if old, err := s.Get(ctx, rec.ID); err == nil {
		cp.CreatedAt = old.CreatedAt
	} else if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": cp.ID}, &cp,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store document %s: %w", cp.ID, err)
	}
	return nil
}

// Delete removes a record.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all records without data payloads, newest first.
func (s *MongoStore) List(ctx context.Context) ([]*Record, error) {
	opts := options.Find().
		SetProjection(bson.M{"data": 0}).
		SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cur.Close(ctx)

	var out []*Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return out, nil
}

// Close disconnects the MongoDB client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
