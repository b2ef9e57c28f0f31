package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pravaah/internal/domain"
	"pravaah/internal/port"
)

// DefaultCollection holds processed-document logs.
const DefaultCollection = "processed_logs"

type logStore struct {
	coll *mongo.Collection
}

// NewLogStore creates a MongoDB-backed LogStore. Each record is one document
// keyed by its ID.
func NewLogStore(db *mongo.Database, collection string) port.LogStore {
	if collection == "" {
		collection = DefaultCollection
	}
	return &logStore{coll: db.Collection(collection)}
}

func (s *logStore) Append(ctx context.Context, rec domain.LogRecord) error {
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("logStore.Append: %w", err)
	}
	return nil
}

func (s *logStore) List(ctx context.Context) ([]domain.LogRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("logStore.List: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var records []domain.LogRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("logStore.List decode: %w", err)
	}
	return records, nil
}

func (s *logStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
