package blacklist

import (
	"context"
	"fmt"
	"time"

	donotserveRepo "stagelink/database/repository/donotserve"
	"stagelink/models"
	"stagelink/services/notification"

	"github.com/google/uuid"
)

// DoNotServeService manages block-list entries: submission by performers or
// admins, and the admin review that makes an entry effective.
type DoNotServeService interface {
	Submit(ctx context.Context, entry models.DoNotServeEntry) (*models.DoNotServeEntry, error)
	Review(ctx context.Context, id string, approve bool) (*models.DoNotServeEntry, error)
	List(ctx context.Context) ([]models.DoNotServeEntry, error)
}

// DefaultDoNotServeService is the production implementation.
type DefaultDoNotServeService struct {
	Repo     donotserveRepo.DoNotServeRepository
	Notifier notification.NotificationService
}

// Submit records a new entry in pending state. It has no blocking effect until
// an admin approves it.
func (s *DefaultDoNotServeService) Submit(ctx context.Context, entry models.DoNotServeEntry) (*models.DoNotServeEntry, error) {
	if entry.ClientName == "" {
		return nil, fmt.Errorf("do-not-serve entry requires a client name")
	}
	if entry.Reason == "" {
		return nil, fmt.Errorf("do-not-serve entry requires a reason")
	}

	entry.ID = uuid.New().String()
	entry.Status = models.DNSPending
	entry.CreatedAt = time.Now()

	if err := s.Repo.Insert(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Review approves or rejects a pending entry and leaves an admin-internal
// audit note. The note carries no booking linkage: the review happens outside
// any booking context.
func (s *DefaultDoNotServeService) Review(ctx context.Context, id string, approve bool) (*models.DoNotServeEntry, error) {
	status := models.DNSRejected
	if approve {
		status = models.DNSApproved
	}

	updated, err := s.Repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	note := models.Communication{
		ID:        uuid.New().String(),
		Sender:    "Admin",
		Recipient: models.RecipientAdmin,
		Message:   fmt.Sprintf("Do-not-serve entry for %s marked %s.", updated.ClientName, status),
		Type:      models.CommAdminNote,
		CreatedAt: time.Now(),
	}
	if err := s.Notifier.NotifyAdminNote(ctx, note); err != nil {
		return nil, err
	}
	return updated, nil
}

// List returns all entries regardless of review state.
func (s *DefaultDoNotServeService) List(ctx context.Context) ([]models.DoNotServeEntry, error) {
	return s.Repo.ListAll(ctx)
}
