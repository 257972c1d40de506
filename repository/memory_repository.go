package repository

import (
	"context"
	"sync"

	"finance-advisor/domain"
)

// MemoryProfileRepository is an in-memory ProfileRepository for tests and
// local development.
type MemoryProfileRepository struct {
	mu        sync.RWMutex
	profiles  map[string]domain.FinancialProfile
	summaries map[string]domain.SpendingSummary
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{
		profiles:  make(map[string]domain.FinancialProfile),
		summaries: make(map[string]domain.SpendingSummary),
	}
}

// Seed stores a profile/summary pair for a user.
func (r *MemoryProfileRepository) Seed(profile domain.FinancialProfile, summary domain.SpendingSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
	r.summaries[profile.UserID] = summary
}

func (r *MemoryProfileRepository) Profile(_ context.Context, userID string) (domain.FinancialProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return domain.FinancialProfile{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryProfileRepository) Summary(_ context.Context, userID string) (domain.SpendingSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.summaries[userID]
	if !ok {
		return domain.SpendingSummary{}, ErrNotFound
	}
	return s, nil
}
