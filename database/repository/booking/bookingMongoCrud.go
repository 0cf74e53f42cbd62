// File: database/repository/booking/bookingMongoCrud.go
package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stagelink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrVersionConflict is returned when a compare-and-swap update loses the race:
// the booking was modified since the caller read it.
var ErrVersionConflict = errors.New("booking version conflict")

// ErrNotFound is returned when no booking exists for the given id.
var ErrNotFound = errors.New("booking not found")

// CreateBatch inserts all booking documents or none of them.
func (r *MongoBookingRepo) CreateBatch(ctx context.Context, bookings []models.Booking) ([]models.Booking, error) {
	cctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, 0, len(bookings))
	for i := range bookings {
		docs = append(docs, bookings[i])
	}

	// Ordered insert: the driver stops at the first failure. Combined with the
	// unique id index (ids are fresh UUIDs) a partial batch is not expected;
	// if it ever happens the inserted rows are removed before returning.
	res, err := r.coll.InsertMany(cctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		if res != nil && len(res.InsertedIDs) > 0 {
			ids := make([]string, 0, len(res.InsertedIDs))
			for i := range res.InsertedIDs {
				if i < len(bookings) {
					ids = append(ids, bookings[i].ID)
				}
			}
			if _, delErr := r.coll.DeleteMany(cctx, bson.M{"id": bson.M{"$in": ids}}); delErr != nil {
				return nil, fmt.Errorf("failed to insert bookings and failed to roll back partial batch: %w", err)
			}
		}
		return nil, fmt.Errorf("failed to insert bookings: %w", err)
	}
	return bookings, nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	cctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(cctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// UpdateStatus moves a booking to the given status and applies the partial
// update, guarded by the version the caller read. The version is bumped on
// success so a concurrent writer with the stale version loses.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, version int64, status models.BookingStatus, set bson.M) (*models.Booking, error) {
	cctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if set == nil {
		set = bson.M{}
	}
	set["status"] = status

	filter := bson.M{"id": id, "version": version}
	update := bson.M{"$set": set, "$inc": bson.M{"version": 1}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Booking
	err := r.coll.FindOneAndUpdate(cctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Distinguish a missing booking from a lost CAS race.
			count, cerr := r.coll.CountDocuments(cctx, bson.M{"id": id})
			if cerr == nil && count == 0 {
				return nil, ErrNotFound
			}
			return nil, ErrVersionConflict
		}
		return nil, fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	return &updated, nil
}
