package models

import "time"

// BookingStatus is the lifecycle state of a booking. The wire values are part of
// the public API and must not change.
type BookingStatus string

const (
	StatusPendingPerformerAcceptance BookingStatus = "pending_performer_acceptance"
	StatusPendingVetting             BookingStatus = "pending_vetting"
	StatusDepositPending             BookingStatus = "deposit_pending"
	StatusPendingDepositConfirmation BookingStatus = "pending_deposit_confirmation"
	StatusConfirmed                  BookingStatus = "confirmed"
	StatusRejected                   BookingStatus = "rejected"
)

// bookingTransitions is the closed transition graph. A booking may only move
// along these edges; Terminal states have no outgoing edges.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPendingPerformerAcceptance: {StatusPendingVetting, StatusDepositPending, StatusRejected},
	StatusPendingVetting:             {StatusDepositPending, StatusRejected},
	StatusDepositPending:             {StatusPendingDepositConfirmation, StatusRejected},
	StatusPendingDepositConfirmation: {StatusConfirmed, StatusRejected},
	StatusConfirmed:                  {},
	StatusRejected:                   {},
}

// Valid reports whether s is one of the known status values.
func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// Terminal reports whether no further transitions are possible from s.
func (s BookingStatus) Terminal() bool {
	return len(bookingTransitions[s]) == 0 && s.Valid()
}

// CanTransitionTo reports whether the edge s -> next exists in the graph.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// DecidedBy values distinguish a genuine performer decision from an admin
// acting on the performer's behalf.
const (
	DecidedByPerformer     = "performer"
	DecidedByAdminOverride = "admin_override"
)

// Booking is one client request line for one performer. A request naming
// several performers fans out into one Booking per performer, sharing the
// client and event facts but carrying distinct ids.
type Booking struct {
	ID          string `bson:"id" json:"id"`
	PerformerID string `bson:"performer_id" json:"performer_id"`

	ClientName  string `bson:"client_name" json:"client_name"`
	ClientEmail string `bson:"client_email" json:"client_email"`
	ClientPhone string `bson:"client_phone" json:"client_phone"`

	Date          string `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time          string `bson:"time" json:"time"` // "HH:MM"
	Address       string `bson:"address" json:"address"`
	EventType     string `bson:"event_type" json:"event_type"`
	DurationHours int    `bson:"duration_hours" json:"duration_hours"`
	GuestCount    int    `bson:"guest_count" json:"guest_count"`
	ClientMessage string `bson:"client_message,omitempty" json:"client_message,omitempty"`

	ServiceIDs []string `bson:"service_ids" json:"service_ids"`
	// PerformerCount is the number of performers on the originating request.
	// Kept on every fanned-out line so cost can be recomputed without the
	// sibling records.
	PerformerCount int `bson:"performer_count" json:"performer_count"`
	// TotalCost and DepositAmount are derived from the rate card; they are
	// recomputed on the transitions that quote them, never trusted as stored.
	TotalCost     float64 `bson:"total_cost" json:"total_cost"`
	DepositAmount float64 `bson:"deposit_amount" json:"deposit_amount"`

	Status    BookingStatus `bson:"status" json:"status"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`

	// Set only on the transition into confirmed.
	VerifiedBy string     `bson:"verified_by,omitempty" json:"verified_by,omitempty"`
	VerifiedAt *time.Time `bson:"verified_at,omitempty" json:"verified_at,omitempty"`

	// Set only when an admin reassigns the performer.
	ReassignedFromID string `bson:"performer_reassigned_from_id,omitempty" json:"performer_reassigned_from_id,omitempty"`

	// Set only during performer acceptance, when the performer quotes an ETA.
	EtaMinutes int `bson:"eta_minutes,omitempty" json:"eta_minutes,omitempty"`

	// Synthetic receipt reference stamped when the client submits the deposit.
	DepositRef string `bson:"deposit_ref,omitempty" json:"deposit_ref,omitempty"`

	// DecidedBy records whether the acceptance/decline came from the performer
	// or from an admin override.
	DecidedBy string `bson:"decided_by,omitempty" json:"decided_by,omitempty"`

	// Version supports compare-and-swap status updates. Concurrent writers on
	// the same booking lose with a conflict instead of overwriting each other.
	Version int64 `bson:"version" json:"version"`
}
