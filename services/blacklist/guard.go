package blacklist

import (
	"context"
	"fmt"
	"strings"

	donotserveRepo "stagelink/database/repository/donotserve"
	"stagelink/models"
)

// Guard answers the admission question at booking creation: is this client
// identity on the approved block list?
type Guard interface {
	IsBlocked(ctx context.Context, name, email, phone string) (bool, error)
}

// DefaultGuard implements Guard against the do-not-serve repository.
type DefaultGuard struct {
	Repo donotserveRepo.DoNotServeRepository
}

// IsBlocked matches the client against approved entries only. A hit on any one
// of name, email, or phone is sufficient to block: partial-identity collisions
// err toward caution. Pending and rejected entries never block.
func (g *DefaultGuard) IsBlocked(ctx context.Context, name, email, phone string) (bool, error) {
	entries, err := g.Repo.ListByStatus(ctx, models.DNSApproved)
	if err != nil {
		return false, fmt.Errorf("failed to load block list: %w", err)
	}

	name = normalizeName(name)
	email = normalizeEmail(email)
	phone = normalizePhone(phone)

	for _, e := range entries {
		if name != "" && normalizeName(e.ClientName) == name {
			return true, nil
		}
		if email != "" && normalizeEmail(e.ClientEmail) == email {
			return true, nil
		}
		if phone != "" && normalizePhone(e.ClientPhone) == phone {
			return true, nil
		}
	}
	return false, nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizePhone strips all whitespace; the comparison is otherwise exact.
func normalizePhone(s string) string {
	return strings.Join(strings.Fields(s), "")
}
