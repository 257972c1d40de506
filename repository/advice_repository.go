package repository

import (
	"context"
	"sync"
	"time"

	"finance-advisor/domain"
)

// AdviceRecord is one persisted advisory result.
type AdviceRecord struct {
	ID        string
	UserID    string
	Query     string
	Route     string
	Result    domain.AdvisorResult
	CreatedAt time.Time
}

// AdviceRepository stores advisory results. Saving is best-effort: callers
// log and continue on failure.
type AdviceRepository interface {
	Save(ctx context.Context, record AdviceRecord) error
	Recent(ctx context.Context, userID string, limit int) ([]AdviceRecord, error)
}

// MemoryAdviceRepository keeps records in memory, newest first.
type MemoryAdviceRepository struct {
	mu      sync.Mutex
	records []AdviceRecord
}

func NewMemoryAdviceRepository() *MemoryAdviceRepository {
	return &MemoryAdviceRepository{}
}

func (r *MemoryAdviceRepository) Save(_ context.Context, record AdviceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append([]AdviceRecord{record}, r.records...)
	return nil
}

func (r *MemoryAdviceRepository) Recent(_ context.Context, userID string, limit int) ([]AdviceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []AdviceRecord
	for _, rec := range r.records {
		if rec.UserID != userID {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
