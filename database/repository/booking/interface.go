package bookingRepo

import (
	"context"

	"stagelink/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	// CreateBatch inserts all records or none of them.
	CreateBatch(ctx context.Context, bookings []models.Booking) ([]models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// UpdateStatus applies a status change plus a partial update with
	// compare-and-swap on the booking version. It returns ErrVersionConflict
	// when the booking changed underneath the caller.
	UpdateStatus(ctx context.Context, id string, version int64, status models.BookingStatus, set bson.M) (*models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error)
	ListByPerformer(ctx context.Context, performerID string) ([]models.Booking, error)
}
