package donotserveRepo

import (
	"context"
	"fmt"
	"time"

	"stagelink/database"
	"stagelink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DoNotServeRepository defines data access for block-list entries.
type DoNotServeRepository interface {
	Insert(ctx context.Context, entry *models.DoNotServeEntry) error
	ListAll(ctx context.Context) ([]models.DoNotServeEntry, error)
	ListByStatus(ctx context.Context, status models.DNSStatus) ([]models.DoNotServeEntry, error)
	UpdateStatus(ctx context.Context, id string, status models.DNSStatus) (*models.DoNotServeEntry, error)
}

// MongoDoNotServeRepo implements DoNotServeRepository using MongoDB.
type MongoDoNotServeRepo struct {
	coll *mongo.Collection
}

// NewMongoDoNotServeRepo creates a new instance backed by MongoDB.
func NewMongoDoNotServeRepo() DoNotServeRepository {
	coll := database.Collection("do_not_serve")
	repo := &MongoDoNotServeRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func (r *MongoDoNotServeRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Insert stores a new block-list entry.
func (r *MongoDoNotServeRepo) Insert(ctx context.Context, entry *models.DoNotServeEntry) error {
	cctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(cctx, entry); err != nil {
		return fmt.Errorf("failed to insert do-not-serve entry: %w", err)
	}
	return nil
}

func (r *MongoDoNotServeRepo) list(ctx context.Context, filter bson.M) ([]models.DoNotServeEntry, error) {
	cctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(cctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query do-not-serve entries: %w", err)
	}
	defer cursor.Close(cctx)

	var entries []models.DoNotServeEntry
	if err := cursor.All(cctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode do-not-serve entries: %w", err)
	}
	return entries, nil
}

// ListAll returns every block-list entry.
func (r *MongoDoNotServeRepo) ListAll(ctx context.Context) ([]models.DoNotServeEntry, error) {
	return r.list(ctx, bson.M{})
}

// ListByStatus returns entries in the given review state.
func (r *MongoDoNotServeRepo) ListByStatus(ctx context.Context, status models.DNSStatus) ([]models.DoNotServeEntry, error) {
	return r.list(ctx, bson.M{"status": status})
}

// UpdateStatus sets the review state of an entry and returns the updated record.
func (r *MongoDoNotServeRepo) UpdateStatus(ctx context.Context, id string, status models.DNSStatus) (*models.DoNotServeEntry, error) {
	cctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.DoNotServeEntry
	err := r.coll.FindOneAndUpdate(cctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("do-not-serve entry with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to update do-not-serve entry %s: %w", id, err)
	}
	return &updated, nil
}
