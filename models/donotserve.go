package models

import "time"

// DNSStatus is the review state of a do-not-serve entry.
type DNSStatus string

const (
	DNSPending  DNSStatus = "pending"
	DNSApproved DNSStatus = "approved"
	DNSRejected DNSStatus = "rejected"
)

// DoNotServeEntry flags a client identity so that new bookings are refused.
// An entry only blocks once an admin has approved it.
type DoNotServeEntry struct {
	ID          string    `bson:"id" json:"id"`
	ClientName  string    `bson:"client_name" json:"client_name"`
	ClientEmail string    `bson:"client_email,omitempty" json:"client_email,omitempty"`
	ClientPhone string    `bson:"client_phone,omitempty" json:"client_phone,omitempty"`
	Reason      string    `bson:"reason" json:"reason"`
	SubmittedBy string    `bson:"submitted_by" json:"submitted_by"` // performer id or "admin"
	Status      DNSStatus `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
