package models

// RateType distinguishes flat-priced services from per-hour ones.
type RateType string

const (
	RateFlat    RateType = "flat"
	RatePerHour RateType = "per_hour"
)

// Service is a rate-card entry. Reference data: seeded at deploy time, never
// created or destroyed by the booking workflow.
type Service struct {
	ID       string   `bson:"id" json:"id"`
	Category string   `bson:"category" json:"category"`
	Name     string   `bson:"name" json:"name"`
	Rate     float64  `bson:"rate" json:"rate"`
	RateType RateType `bson:"rate_type" json:"rate_type"`
	// MinDurationHours floors the billable hours for per-hour services.
	MinDurationHours int `bson:"min_duration_hours,omitempty" json:"min_duration_hours,omitempty"`
	// FixedDurationMinutes is the running time of flat-rate show acts, used for
	// the duration estimate shown to clients.
	FixedDurationMinutes int `bson:"fixed_duration_minutes,omitempty" json:"fixed_duration_minutes,omitempty"`
}
