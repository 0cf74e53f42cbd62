// File: services/booking/booking.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stagelink/config"
	bookingRepo "stagelink/database/repository/booking"
	"stagelink/models"
	"stagelink/services/notification"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Create admits the client, quotes the request, and fans it out into one
// booking per named performer, all in pending_performer_acceptance. The batch
// is atomic: a blocked client or a failed insert creates zero bookings.
func (s *DefaultBookingService) Create(ctx context.Context, req CreateBookingRequest) ([]models.Booking, error) {
	if req.DurationHours <= 0 {
		return nil, NewValidationError("duration must be a positive number of hours")
	}
	if req.GuestCount <= 0 {
		return nil, NewValidationError("guest count must be positive")
	}
	serviceIDs := dedupe(req.ServiceIDs)
	if len(serviceIDs) == 0 {
		return nil, NewValidationError("at least one service must be selected")
	}
	performerIDs := dedupe(req.PerformerIDs)
	if len(performerIDs) == 0 {
		return nil, NewValidationError("at least one performer must be selected")
	}

	blocked, err := s.Guard.IsBlocked(ctx, req.ClientName, req.ClientEmail, req.ClientPhone)
	if err != nil {
		return nil, NewBackendError(fmt.Sprintf("admission check failed: %v", err))
	}
	if blocked {
		return nil, NewAdmissionError("we are unable to accept bookings for this client")
	}

	services, err := s.RateCard.GetByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, NewBackendError(fmt.Sprintf("failed to load rate card: %v", err))
	}
	if len(services) != len(serviceIDs) {
		return nil, NewValidationError("one or more selected services do not exist")
	}

	quote := ComputeCost(req.DurationHours, services, len(performerIDs))

	now := time.Now()
	bookings := make([]models.Booking, 0, len(performerIDs))
	for _, performerID := range performerIDs {
		bookings = append(bookings, models.Booking{
			ID:             uuid.New().String(),
			PerformerID:    performerID,
			ClientName:     req.ClientName,
			ClientEmail:    req.ClientEmail,
			ClientPhone:    req.ClientPhone,
			Date:           req.Date,
			Time:           req.Time,
			Address:        req.Address,
			EventType:      req.EventType,
			DurationHours:  req.DurationHours,
			GuestCount:     req.GuestCount,
			ClientMessage:  req.ClientMessage,
			ServiceIDs:     serviceIDs,
			PerformerCount: len(performerIDs),
			TotalCost:      quote.TotalCost,
			DepositAmount:  quote.DepositAmount,
			Status:         models.StatusPendingPerformerAcceptance,
			CreatedAt:      now,
			Version:        1,
		})
	}

	created, err := s.Repo.CreateBatch(ctx, bookings)
	if err != nil {
		return nil, NewBackendError(fmt.Sprintf("failed to create bookings: %v", err))
	}

	// One client receipt and one admin alert per request, not per line.
	comms := notification.Dispatch(notification.EventRequestCreated, created[0], req.ClientName)
	if err := s.Notifier.Notify(ctx, &created[0], comms); err != nil {
		s.Logger.Warn("failed to record creation notifications", zap.Error(err))
	}

	// The performer prompt is delayed as a UX affordance; a failed enqueue is
	// logged, never surfaced, since the booking already exists.
	delay := time.Duration(config.AppConfig.PerformerPromptDelaySec) * time.Second
	for i := range created {
		if err := s.Scheduler.SchedulePerformerPrompt(created[i].ID, delay); err != nil {
			s.Logger.Warn("failed to schedule performer prompt",
				zap.String("booking_id", created[i].ID), zap.Error(err))
		}
	}

	return created, nil
}

// PerformerDecide records the performer's own accept/decline.
func (s *DefaultBookingService) PerformerDecide(ctx context.Context, bookingID string, decision Decision, etaMinutes int) (*models.Booking, error) {
	return s.decide(ctx, bookingID, decision, etaMinutes, models.DecidedByPerformer)
}

// AdminOverrideForPerformer records the same decision on the performer's
// behalf, distinguished in persisted state and by an extra admin note.
func (s *DefaultBookingService) AdminOverrideForPerformer(ctx context.Context, bookingID string, decision Decision, etaMinutes int) (*models.Booking, error) {
	updated, err := s.decide(ctx, bookingID, decision, etaMinutes, models.DecidedByAdminOverride)
	if err != nil {
		return nil, err
	}
	note := notification.Dispatch(notification.EventAdminOverrideNote, *updated, "Admin")
	if err := s.Notifier.Notify(ctx, updated, note); err != nil {
		s.Logger.Warn("failed to record override note", zap.Error(err))
	}
	return updated, nil
}

func (s *DefaultBookingService) decide(ctx context.Context, bookingID string, decision Decision, etaMinutes int, decidedBy string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusPendingPerformerAcceptance {
		return nil, NewConflictError(fmt.Sprintf("booking %s is not awaiting performer acceptance (status %s)", bookingID, b.Status))
	}

	actor := s.performerName(ctx, b.PerformerID)

	if decision == DecisionDecline {
		updated, err := s.applyTransition(ctx, b, models.StatusRejected, bson.M{"decided_by": decidedBy})
		if err != nil {
			return nil, err
		}
		s.notify(ctx, updated, notification.EventPerformerDeclined, actor)
		return updated, nil
	}
	if decision != DecisionAccept {
		return nil, NewValidationError(fmt.Sprintf("unknown decision %q", decision))
	}

	// Recomputed at acceptance time, not at submission: a confirmation landing
	// in between upgrades the client to the fast path.
	verified, err := s.isVerifiedBooker(ctx, b.ClientEmail, b.ClientPhone)
	if err != nil {
		return nil, NewBackendError(fmt.Sprintf("verified-booker check failed: %v", err))
	}

	set := bson.M{"decided_by": decidedBy}
	if etaMinutes > 0 {
		set["eta_minutes"] = etaMinutes
	}

	next := models.StatusPendingVetting
	event := notification.EventPerformerAccepted
	if verified {
		next = models.StatusDepositPending
		event = notification.EventPerformerAcceptedFastPath
		quote, err := s.quoteFor(ctx, b)
		if err != nil {
			return nil, err
		}
		set["total_cost"] = quote.TotalCost
		set["deposit_amount"] = quote.DepositAmount
	}

	updated, err := s.applyTransition(ctx, b, next, set)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, updated, event, actor)
	return updated, nil
}

// AdminDecideVetting resolves the vetting step. Approval quotes the deposit to
// the client; rejection closes the booking.
func (s *DefaultBookingService) AdminDecideVetting(ctx context.Context, bookingID string, approve bool) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusPendingVetting {
		return nil, NewConflictError(fmt.Sprintf("booking %s is not awaiting vetting (status %s)", bookingID, b.Status))
	}

	if !approve {
		updated, err := s.applyTransition(ctx, b, models.StatusRejected, nil)
		if err != nil {
			return nil, err
		}
		s.notify(ctx, updated, notification.EventVettingRejected, "Admin")
		return updated, nil
	}

	quote, err := s.quoteFor(ctx, b)
	if err != nil {
		return nil, err
	}
	set := bson.M{
		"total_cost":     quote.TotalCost,
		"deposit_amount": quote.DepositAmount,
	}
	updated, err := s.applyTransition(ctx, b, models.StatusDepositPending, set)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, updated, notification.EventVettingApproved, "Admin")
	return updated, nil
}

// ClientConfirmDeposit records the client's deposit submission and stamps a
// synthetic receipt reference for the admin to verify.
func (s *DefaultBookingService) ClientConfirmDeposit(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusDepositPending {
		return nil, NewConflictError(fmt.Sprintf("booking %s is not awaiting a deposit (status %s)", bookingID, b.Status))
	}

	ref := "DEP-" + strings.ToUpper(uuid.New().String()[:8])
	updated, err := s.applyTransition(ctx, b, models.StatusPendingDepositConfirmation, bson.M{"deposit_ref": ref})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, updated, notification.EventDepositSubmitted, b.ClientName)
	return updated, nil
}

// AdminConfirmDeposit verifies the deposit and confirms the booking. This is
// the only transition that reveals the client's contact details and address to
// the performer.
func (s *DefaultBookingService) AdminConfirmDeposit(ctx context.Context, bookingID, verifierName string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusPendingDepositConfirmation {
		return nil, NewConflictError(fmt.Sprintf("booking %s has no deposit awaiting confirmation (status %s)", bookingID, b.Status))
	}

	quote, err := s.quoteFor(ctx, b)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	set := bson.M{
		"verified_by":    verifierName,
		"verified_at":    now,
		"total_cost":     quote.TotalCost,
		"deposit_amount": quote.DepositAmount,
	}
	updated, err := s.applyTransition(ctx, b, models.StatusConfirmed, set)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, updated, notification.EventDepositConfirmed, verifierName)

	if at, err := time.Parse("2006-01-02", updated.Date); err == nil {
		if err := s.Scheduler.ScheduleEventReminder(updated.ID, at.Add(-24*time.Hour)); err != nil {
			s.Logger.Warn("failed to schedule event reminder",
				zap.String("booking_id", updated.ID), zap.Error(err))
		}
	}
	return updated, nil
}

// AdminReject closes a booking from any non-terminal state.
func (s *DefaultBookingService) AdminReject(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, NewConflictError(fmt.Sprintf("booking %s is already closed (status %s)", bookingID, b.Status))
	}

	updated, err := s.applyTransition(ctx, b, models.StatusRejected, nil)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, updated, notification.EventAdminRejected, "Admin")
	return updated, nil
}

// AdminReassignPerformer hands the booking to a different performer and
// restarts the acceptance step. The verified-booker fast path is re-evaluated
// when the new performer responds.
func (s *DefaultBookingService) AdminReassignPerformer(ctx context.Context, bookingID, newPerformerID string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, NewConflictError(fmt.Sprintf("booking %s is closed and cannot be reassigned (status %s)", bookingID, b.Status))
	}
	if newPerformerID == "" || newPerformerID == b.PerformerID {
		return nil, NewValidationError("reassignment requires a different performer")
	}
	if _, err := s.PerformerRepo.GetByID(ctx, newPerformerID); err != nil {
		return nil, NewValidationError(fmt.Sprintf("performer %s not found", newPerformerID))
	}

	// Reassignment is a reset, not a graph edge: the status returns to the
	// initial state regardless of how far the booking had advanced.
	set := bson.M{
		"performer_id":                 newPerformerID,
		"performer_reassigned_from_id": b.PerformerID,
		"decided_by":                   "",
		"eta_minutes":                  0,
		"status":                       models.StatusPendingPerformerAcceptance,
	}
	updated, err := s.Repo.UpdateStatus(ctx, b.ID, b.Version, models.StatusPendingPerformerAcceptance, set)
	if err != nil {
		return nil, s.wrapRepoError(err, b.ID)
	}

	s.notify(ctx, updated, notification.EventPerformerReassigned, "Admin")

	delay := time.Duration(config.AppConfig.PerformerPromptDelaySec) * time.Second
	if err := s.Scheduler.SchedulePerformerPrompt(updated.ID, delay); err != nil {
		s.Logger.Warn("failed to schedule performer prompt after reassignment",
			zap.String("booking_id", updated.ID), zap.Error(err))
	}
	return updated, nil
}

// GetBooking fetches one booking by id.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.loadBooking(ctx, bookingID)
}

// ListBookings returns all booking records.
func (s *DefaultBookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, NewBackendError(fmt.Sprintf("failed to list bookings: %v", err))
	}
	return bookings, nil
}

// --- helpers ---

func (s *DefaultBookingService) loadBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewValidationError(fmt.Sprintf("booking %s not found", bookingID))
		}
		return nil, NewBackendError(fmt.Sprintf("failed to load booking %s: %v", bookingID, err))
	}
	return b, nil
}

// applyTransition enforces the transition graph and performs the
// compare-and-swap update.
func (s *DefaultBookingService) applyTransition(ctx context.Context, b *models.Booking, next models.BookingStatus, set bson.M) (*models.Booking, error) {
	if !b.Status.CanTransitionTo(next) {
		return nil, NewConflictError(fmt.Sprintf("booking %s cannot move from %s to %s", b.ID, b.Status, next))
	}
	updated, err := s.Repo.UpdateStatus(ctx, b.ID, b.Version, next, set)
	if err != nil {
		return nil, s.wrapRepoError(err, b.ID)
	}
	return updated, nil
}

func (s *DefaultBookingService) wrapRepoError(err error, bookingID string) error {
	switch {
	case errors.Is(err, bookingRepo.ErrVersionConflict):
		return NewConflictError(fmt.Sprintf("booking %s was modified concurrently, please retry", bookingID))
	case errors.Is(err, bookingRepo.ErrNotFound):
		return NewValidationError(fmt.Sprintf("booking %s not found", bookingID))
	default:
		return NewBackendError(fmt.Sprintf("failed to update booking %s: %v", bookingID, err))
	}
}

// quoteFor recomputes cost and deposit from the rate card. Stored figures are
// never trusted; this keeps every view of the booking drift-free.
func (s *DefaultBookingService) quoteFor(ctx context.Context, b *models.Booking) (Quote, error) {
	services, err := s.RateCard.GetByIDs(ctx, b.ServiceIDs)
	if err != nil {
		return Quote{}, NewBackendError(fmt.Sprintf("failed to load rate card: %v", err))
	}
	count := b.PerformerCount
	if count <= 0 {
		count = 1
	}
	return ComputeCost(b.DurationHours, services, count), nil
}

func (s *DefaultBookingService) performerName(ctx context.Context, performerID string) string {
	p, err := s.PerformerRepo.GetByID(ctx, performerID)
	if err != nil || p.Name == "" {
		return "Performer"
	}
	return p.Name
}

func (s *DefaultBookingService) notify(ctx context.Context, b *models.Booking, event notification.Event, actor string) {
	comms := notification.Dispatch(event, *b, actor)
	if err := s.Notifier.Notify(ctx, b, comms); err != nil {
		s.Logger.Warn("failed to record notifications",
			zap.String("booking_id", b.ID),
			zap.String("event", string(event)),
			zap.Error(err))
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
