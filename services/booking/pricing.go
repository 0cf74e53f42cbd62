package booking

import (
	"fmt"

	"stagelink/models"
)

// DepositPercentage is the fraction of the total cost required to lock a slot.
const DepositPercentage = 0.30

// Quote is the derived commercial outcome of a service selection.
type Quote struct {
	TotalCost     float64
	DepositAmount float64
}

// ComputeCost derives the total cost and deposit from the selected services,
// the event duration, and the performer count. Flat-rate services are billed
// once per booking line regardless of performer count; per-hour services bill
// max(duration, minimum duration) hours per performer. Zero services or zero
// performers quotes zero. Deterministic, no error path.
func ComputeCost(durationHours int, services []models.Service, performerCount int) Quote {
	if len(services) == 0 || performerCount <= 0 {
		return Quote{}
	}

	total := 0.0
	for _, svc := range services {
		switch svc.RateType {
		case models.RatePerHour:
			hours := durationHours
			if svc.MinDurationHours > hours {
				hours = svc.MinDurationHours
			}
			total += svc.Rate * float64(hours) * float64(performerCount)
		default:
			total += svc.Rate
		}
	}

	return Quote{
		TotalCost:     total,
		DepositAmount: total * DepositPercentage,
	}
}

// EstimateDurationMinutes combines the hourly base duration with the fixed
// running time of flat-rate show acts. The hourly base only counts when at
// least one per-hour service is selected.
func EstimateDurationMinutes(durationHours int, services []models.Service) int {
	minutes := 0
	hasHourly := false
	for _, svc := range services {
		if svc.RateType == models.RatePerHour {
			hasHourly = true
			continue
		}
		minutes += svc.FixedDurationMinutes
	}
	if hasHourly {
		minutes += durationHours * 60
	}
	return minutes
}

// FormatDuration renders a minute total as "Xh Ym" (omitting zero parts).
func FormatDuration(totalMinutes int) string {
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
