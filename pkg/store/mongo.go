package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/evoscape/pkg/observability"
	"github.com/matzehuels/evoscape/pkg/run"
)

const (
	defaultDatabase   = "evoscape"
	defaultCollection = "views"
)

// MongoStore is a MongoDB-backed store for shared deployments.
// Records are keyed by name with a unique index.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and prepares the views collection.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	coll := client.Database(defaultDatabase).Collection(defaultCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Put stores a record, replacing any existing record with the same name.
func (s *MongoStore) Put(ctx context.Context, rec Record) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "name", Value: rec.Name}},
		rec,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		observability.Store().OnStoreError(ctx, "put", rec.Name, err)
		return fmt.Errorf("put view %q: %w", rec.Name, err)
	}
	observability.Store().OnStorePut(ctx, rec.Name, viewSize(rec.View))
	return nil
}

// Get returns the record stored under name, or ErrNotFound.
func (s *MongoStore) Get(ctx context.Context, name string) (Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		observability.Store().OnStoreGet(ctx, name, false)
		return Record{}, ErrNotFound
	}
	if err != nil {
		observability.Store().OnStoreError(ctx, "get", name, err)
		return Record{}, fmt.Errorf("get view %q: %w", name, err)
	}
	observability.Store().OnStoreGet(ctx, name, true)
	return rec, nil
}

// Delete removes the record stored under name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	_, err := s.coll.DeleteOne(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		observability.Store().OnStoreError(ctx, "delete", name, err)
		return fmt.Errorf("delete view %q: %w", name, err)
	}
	return nil
}

// List returns the names of all stored records, sorted.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "name", Value: 1}}).
		SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list views: %w", err)
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var doc struct {
			Name string `bson:"name"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode view name: %w", err)
		}
		names = append(names, doc.Name)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list views: %w", err)
	}
	return names, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// viewSize approximates the stored payload size in bytes for hooks.
func viewSize(v run.View) int {
	data, err := run.MarshalView(v)
	if err != nil {
		return 0
	}
	return len(data)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
