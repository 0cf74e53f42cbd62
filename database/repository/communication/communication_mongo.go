package communicationRepo

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

// CommunicationRepository defines data access for notification records.
// Records are append-only; only the read flag is ever updated.
type CommunicationRepository interface {
	Insert(ctx context.Context, comm *models.Communication) error
	ListAll(ctx context.Context) ([]models.Communication, error)
	ListByRecipient(ctx context.Context, recipient string) ([]models.Communication, error)
	ListByBooking(ctx context.Context, bookingID string) ([]models.Communication, error)
	MarkRead(ctx context.Context, id string) error
}

// MongoCommunicationRepo implements CommunicationRepository using MongoDB.
type MongoCommunicationRepo struct {
	coll *mongo.Collection
}

// NewMongoCommunicationRepo creates a new instance backed by MongoDB.
func NewMongoCommunicationRepo() CommunicationRepository {
	coll := database.Collection("communications")
	repo := &MongoCommunicationRepo{coll: coll}
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

func (r *MongoCommunicationRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "recipient", Value: 1}}},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Insert appends a new communication record.
func (r *MongoCommunicationRepo) Insert(ctx context.Context, comm *models.Communication) error {
	cctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(cctx, comm); err != nil {
		return fmt.Errorf("failed to insert communication: %w", err)
	}
	return nil
}

func (r *MongoCommunicationRepo) list(ctx context.Context, filter bson.M) ([]models.Communication, error) {
	cctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(cctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query communications: %w", err)
	}
	defer cursor.Close(cctx)

	var comms []models.Communication
	if err := cursor.All(cctx, &comms); err != nil {
		return nil, fmt.Errorf("failed to decode communications: %w", err)
	}
	return comms, nil
}

// ListAll returns every communication record, newest first.
func (r *MongoCommunicationRepo) ListAll(ctx context.Context) ([]models.Communication, error) {
	return r.list(ctx, bson.M{})
}

// ListByRecipient returns communications addressed to the given audience token.
func (r *MongoCommunicationRepo) ListByRecipient(ctx context.Context, recipient string) ([]models.Communication, error) {
	return r.list(ctx, bson.M{"recipient": recipient})
}

// ListByBooking returns communications linked to the given booking.
func (r *MongoCommunicationRepo) ListByBooking(ctx context.Context, bookingID string) ([]models.Communication, error) {
	return r.list(ctx, bson.M{"booking_id": bookingID})
}

// MarkRead flips the read flag on a single record.
func (r *MongoCommunicationRepo) MarkRead(ctx context.Context, id string) error {
	cctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(cctx, bson.M{"id": id}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("failed to mark communication %s read: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("communication with id %s not found", id)
	}
	return nil
}
