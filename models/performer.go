package models

import "time"

// PerformerStatus is the performer's self-reported availability.
type PerformerStatus string

const (
	PerformerAvailable PerformerStatus = "available"
	PerformerBusy      PerformerStatus = "busy"
	PerformerOffline   PerformerStatus = "offline"
)

// Valid reports whether s is a known availability value.
func (s PerformerStatus) Valid() bool {
	switch s {
	case PerformerAvailable, PerformerBusy, PerformerOffline:
		return true
	}
	return false
}

// Performer is a bookable artist profile. The status field is owned by the
// performer; the profile fields are managed by an admin.
type Performer struct {
	ID         string          `bson:"id" json:"id"`
	Name       string          `bson:"name" json:"name"`
	Email      string          `bson:"email,omitempty" json:"email,omitempty"`
	Phone      string          `bson:"phone" json:"phone"`
	Status     PerformerStatus `bson:"status" json:"status"`
	ServiceIDs []string        `bson:"service_ids,omitempty" json:"service_ids,omitempty"`
	Areas      []string        `bson:"areas,omitempty" json:"areas,omitempty"`
	CreatedAt  time.Time       `bson:"created_at" json:"created_at"`
}
