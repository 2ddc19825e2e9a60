package archive

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection name within the configured database.
const collection = "runs"

// MongoStore archives runs in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	runs   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and uses the given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, wrap(err, "connect %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, wrap(err, "ping %s", uri)
	}
	return &MongoStore{
		client: client,
		runs:   client.Database(database).Collection(collection),
	}, nil
}

// Put persists a run record.
func (s *MongoStore) Put(ctx context.Context, run *Run) error {
	_, err := s.runs.InsertOne(ctx, run)
	return wrap(err, "insert run %s", run.ID)
}

// List returns the most recent runs, newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Run, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.runs.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, wrap(err, "list runs")
	}
	defer cursor.Close(ctx)

	var runs []Run
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, wrap(err, "decode runs")
	}
	return runs, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
