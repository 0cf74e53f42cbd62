package booking

import (
	"context"
	"strings"

	"stagelink/models"
)

// isVerifiedBooker reports whether the client already has a confirmed booking,
// matched by email (case-insensitive) or phone (whitespace-normalized exact).
// The check runs against the live confirmed set at the moment of performer
// acceptance — never cached — because confirmations can land between request
// submission and the performer's response.
func (s *DefaultBookingService) isVerifiedBooker(ctx context.Context, email, phone string) (bool, error) {
	confirmed, err := s.Repo.ListByStatus(ctx, models.StatusConfirmed)
	if err != nil {
		return false, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	phone = stripWhitespace(phone)

	for _, b := range confirmed {
		if email != "" && strings.ToLower(strings.TrimSpace(b.ClientEmail)) == email {
			return true, nil
		}
		if phone != "" && stripWhitespace(b.ClientPhone) == phone {
			return true, nil
		}
	}
	return false, nil
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
