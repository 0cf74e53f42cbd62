package notification

import (
	"context"
	"fmt"

	"stagelink/config"
	communicationRepo "stagelink/database/repository/communication"
	performerRepo "stagelink/database/repository/performer"
	"stagelink/models"

	"go.uber.org/zap"
)

// NotificationService persists communication records and pushes their text to
// the delivery collaborator. Persistence failures propagate; delivery failures
// are logged and swallowed so a state transition never fails on transport.
type NotificationService interface {
	Notify(ctx context.Context, booking *models.Booking, comms []models.Communication) error
	NotifyAdminNote(ctx context.Context, comm models.Communication) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	CommRepo      communicationRepo.CommunicationRepository
	PerformerRepo performerRepo.PerformerRepository
	Delivery      DeliveryService
	Logger        *zap.Logger
}

// Notify stores each communication and attempts outbound delivery.
func (s *DefaultNotificationService) Notify(ctx context.Context, booking *models.Booking, comms []models.Communication) error {
	for i := range comms {
		comm := comms[i]
		if err := s.CommRepo.Insert(ctx, &comm); err != nil {
			return fmt.Errorf("failed to record notification: %w", err)
		}
		s.deliver(ctx, booking, comm)
	}
	return nil
}

// NotifyAdminNote stores a single admin-internal note created outside a
// booking context (e.g. a do-not-serve review). No outbound delivery.
func (s *DefaultNotificationService) NotifyAdminNote(ctx context.Context, comm models.Communication) error {
	if err := s.CommRepo.Insert(ctx, &comm); err != nil {
		return fmt.Errorf("failed to record admin note: %w", err)
	}
	return nil
}

// deliver resolves the audience token to a phone number and hands the body to
// the transport. Errors are logged only.
func (s *DefaultNotificationService) deliver(ctx context.Context, booking *models.Booking, comm models.Communication) {
	address := ""
	switch comm.Recipient {
	case models.RecipientUser:
		if booking != nil {
			address = booking.ClientPhone
		}
	case models.RecipientAdmin:
		address = config.AppConfig.AdminPhone
	default:
		p, err := s.PerformerRepo.GetByID(ctx, comm.Recipient)
		if err != nil {
			s.Logger.Warn("notification delivery skipped: performer lookup failed",
				zap.String("recipient", comm.Recipient), zap.Error(err))
			return
		}
		address = p.Phone
	}

	if address == "" {
		s.Logger.Debug("notification delivery skipped: no address",
			zap.String("recipient", comm.Recipient))
		return
	}

	if err := s.Delivery.Send(ctx, address, comm.Message, ChannelWhatsApp); err != nil {
		s.Logger.Warn("notification delivery failed",
			zap.String("recipient", comm.Recipient),
			zap.String("communication_id", comm.ID),
			zap.Error(err))
	}
}
