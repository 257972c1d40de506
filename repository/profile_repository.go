package repository

import (
	"context"
	"errors"

	"finance-advisor/domain"
)

// ErrNotFound is returned when the store has no row for the user. Callers
// fall back to the default snapshot.
var ErrNotFound = errors.New("repository: not found")

// ProfileRepository reads profile and spending-summary snapshots from the
// persistence API. Read-only: the advisory core never writes through it.
type ProfileRepository interface {
	Profile(ctx context.Context, userID string) (domain.FinancialProfile, error)
	Summary(ctx context.Context, userID string) (domain.SpendingSummary, error)
}
