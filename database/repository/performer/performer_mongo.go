package performerRepo

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

// PerformerRepository defines data access for performer profiles.
type PerformerRepository interface {
	GetByID(ctx context.Context, id string) (*models.Performer, error)
	ListAll(ctx context.Context) ([]models.Performer, error)
	Create(ctx context.Context, p *models.Performer) error
	UpdateStatus(ctx context.Context, id string, status models.PerformerStatus) (*models.Performer, error)
	UpdateProfile(ctx context.Context, id string, set bson.M) (*models.Performer, error)
}

// MongoPerformerRepo implements PerformerRepository using MongoDB.
type MongoPerformerRepo struct {
	coll *mongo.Collection
}

// NewMongoPerformerRepo creates a new instance backed by MongoDB.
func NewMongoPerformerRepo() PerformerRepository {
	coll := database.Collection("performers")
	repo := &MongoPerformerRepo{coll: coll}
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

func (r *MongoPerformerRepo) ensureIndexes() error {
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

// GetByID retrieves a performer by its unique ID.
func (r *MongoPerformerRepo) GetByID(ctx context.Context, id string) (*models.Performer, error) {
	cctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var p models.Performer
	if err := r.coll.FindOne(cctx, bson.M{"id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("performer with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch performer with id %s: %w", id, err)
	}
	return &p, nil
}

// ListAll returns every performer profile.
func (r *MongoPerformerRepo) ListAll(ctx context.Context) ([]models.Performer, error) {
	cctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(cctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query performers: %w", err)
	}
	defer cursor.Close(cctx)

	var performers []models.Performer
	if err := cursor.All(cctx, &performers); err != nil {
		return nil, fmt.Errorf("failed to decode performers: %w", err)
	}
	return performers, nil
}

// Create inserts a new performer profile.
func (r *MongoPerformerRepo) Create(ctx context.Context, p *models.Performer) error {
	cctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	p.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(cctx, p); err != nil {
		return fmt.Errorf("failed to create performer: %w", err)
	}
	return nil
}

// UpdateStatus sets the performer's availability and returns the updated record.
func (r *MongoPerformerRepo) UpdateStatus(ctx context.Context, id string, status models.PerformerStatus) (*models.Performer, error) {
	return r.UpdateProfile(ctx, id, bson.M{"status": status})
}

// UpdateProfile applies a partial update to the performer document.
func (r *MongoPerformerRepo) UpdateProfile(ctx context.Context, id string, set bson.M) (*models.Performer, error) {
	cctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Performer
	err := r.coll.FindOneAndUpdate(cctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("performer with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to update performer %s: %w", id, err)
	}
	return &updated, nil
}
