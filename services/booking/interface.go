package booking

import (
	"context"

	bookingRepo "stagelink/database/repository/booking"
	performerRepo "stagelink/database/repository/performer"
	ratecardRepo "stagelink/database/repository/ratecard"
	"stagelink/models"
	"stagelink/services/blacklist"
	"stagelink/services/notification"

	"go.uber.org/zap"
)

// Decision is a performer's (or an overriding admin's) response to a request.
type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

// CreateBookingRequest carries one client request, possibly naming several
// performers. Each named performer becomes its own booking record.
type CreateBookingRequest struct {
	ClientName    string   `json:"client_name" binding:"required"`
	ClientEmail   string   `json:"client_email"`
	ClientPhone   string   `json:"client_phone" binding:"required"`
	Date          string   `json:"date" binding:"required"`
	Time          string   `json:"time" binding:"required"`
	Address       string   `json:"address" binding:"required"`
	EventType     string   `json:"event_type" binding:"required"`
	DurationHours int      `json:"duration_hours"`
	GuestCount    int      `json:"guest_count"`
	ClientMessage string   `json:"client_message"`
	ServiceIDs    []string `json:"service_ids" binding:"required"`
	PerformerIDs  []string `json:"performer_ids" binding:"required"`
}

// BookingService drives the booking lifecycle. Every method that mutates a
// booking is a guarded transition: it fails closed when the current status
// does not permit the move, and it applies the update with compare-and-swap
// so concurrent actors cannot silently overwrite each other.
type BookingService interface {
	Create(ctx context.Context, req CreateBookingRequest) ([]models.Booking, error)
	PerformerDecide(ctx context.Context, bookingID string, decision Decision, etaMinutes int) (*models.Booking, error)
	AdminDecideVetting(ctx context.Context, bookingID string, approve bool) (*models.Booking, error)
	ClientConfirmDeposit(ctx context.Context, bookingID string) (*models.Booking, error)
	AdminConfirmDeposit(ctx context.Context, bookingID, verifierName string) (*models.Booking, error)
	AdminReject(ctx context.Context, bookingID string) (*models.Booking, error)
	AdminReassignPerformer(ctx context.Context, bookingID, newPerformerID string) (*models.Booking, error)
	AdminOverrideForPerformer(ctx context.Context, bookingID string, decision Decision, etaMinutes int) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo          bookingRepo.BookingRepository
	RateCard      ratecardRepo.RateCardRepository
	PerformerRepo performerRepo.PerformerRepository
	Guard         blacklist.Guard
	Notifier      notification.NotificationService
	Scheduler     PromptScheduler
	Logger        *zap.Logger
}
