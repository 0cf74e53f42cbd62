package models

import "time"

// Communication type tags.
type CommunicationType string

const (
	CommStatusUpdate  CommunicationType = "status_update"
	CommConfirmation  CommunicationType = "confirmation"
	CommAdminNote     CommunicationType = "admin_note"
	CommSystemAlert   CommunicationType = "system_alert"
	CommDirectMessage CommunicationType = "chat"
)

// Recipient tokens for the two non-performer audiences. Performer-facing
// records carry the performer id as recipient.
const (
	RecipientAdmin = "admin"
	RecipientUser  = "user"
)

// Communication is an append-only notification record. Only the Read flag is
// ever mutated after insert.
type Communication struct {
	ID        string            `bson:"id" json:"id"`
	Sender    string            `bson:"sender" json:"sender"`
	Recipient string            `bson:"recipient" json:"recipient"`
	Message   string            `bson:"message" json:"message"`
	BookingID string            `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	Type      CommunicationType `bson:"type" json:"type"`
	Read      bool              `bson:"read" json:"read"`
	CreatedAt time.Time         `bson:"created_at" json:"created_at"`
}
