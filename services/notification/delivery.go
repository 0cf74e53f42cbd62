package notification

import (
	"context"

	"go.uber.org/zap"
)

// Channel selects the outbound message transport.
type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// DeliveryService is the outbound transport collaborator. Actual providers
// live outside this service; delivery failure never fails a transition.
type DeliveryService interface {
	Send(ctx context.Context, recipientAddress, body string, channel Channel) error
}

// LogDeliveryService writes outbound messages to the log instead of a real
// gateway. Used in development and as the default when no provider is wired.
type LogDeliveryService struct {
	Logger *zap.Logger
}

func (d *LogDeliveryService) Send(ctx context.Context, recipientAddress, body string, channel Channel) error {
	d.Logger.Info("outbound message",
		zap.String("channel", string(channel)),
		zap.String("to", recipientAddress),
		zap.String("body", body),
	)
	return nil
}
