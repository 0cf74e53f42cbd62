package ratecardRepo

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

// RateCardRepository defines read access to the service rate card. The rate
// card is reference data, seeded outside the booking workflow.
type RateCardRepository interface {
	ListAll(ctx context.Context) ([]models.Service, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Service, error)
}

// MongoRateCardRepo implements RateCardRepository using MongoDB.
type MongoRateCardRepo struct {
	coll *mongo.Collection
}

// NewMongoRateCardRepo creates a new instance backed by MongoDB.
func NewMongoRateCardRepo() RateCardRepository {
	coll := database.Collection("services")
	repo := &MongoRateCardRepo{coll: coll}
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

func (r *MongoRateCardRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// ListAll returns the full rate card.
func (r *MongoRateCardRepo) ListAll(ctx context.Context) ([]models.Service, error) {
	return r.list(ctx, bson.M{})
}

// GetByIDs returns the rate-card entries for the given service ids.
func (r *MongoRateCardRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, bson.M{"id": bson.M{"$in": ids}})
}

func (r *MongoRateCardRepo) list(ctx context.Context, filter bson.M) ([]models.Service, error) {
	cctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(cctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer cursor.Close(cctx)

	var services []models.Service
	if err := cursor.All(cctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}
