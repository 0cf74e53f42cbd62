// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"stagelink/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	cctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(cctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(cctx)

	var bookings []models.Booking
	if err := cursor.All(cctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// ListAll returns every booking record.
func (r *MongoBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	return r.list(ctx, bson.M{})
}

// ListByStatus returns bookings in the given lifecycle state.
func (r *MongoBookingRepo) ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"status": status})
}

// ListByPerformer returns bookings assigned to the given performer.
func (r *MongoBookingRepo) ListByPerformer(ctx context.Context, performerID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"performer_id": performerID})
}
