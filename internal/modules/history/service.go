package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// repository is the persistence the Service needs; *Store implements it.
type repository interface {
	Insert(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// Service records and lists completed analyses.
// A Service without a store is disabled: Record is a no-op and Recent is empty.
type Service struct {
	repo repository
	now  func() time.Time
}

// NewService creates a Service backed by the given Store. A nil store disables history.
func NewService(store *Store) *Service {
	if store == nil {
		return &Service{now: time.Now}
	}
	return &Service{repo: store, now: time.Now}
}

func (s *Service) Enabled() bool {
	return s.repo != nil
}

// Record stores e, assigning an id and timestamp when missing.
func (s *Service) Record(ctx context.Context, e Entry) error {
	if s.repo == nil {
		return nil
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	return s.repo.Insert(ctx, e)
}

// Recent lists the newest entries. limit <= 0 means DefaultLimit; values
// above MaxLimit are capped.
func (s *Service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s.repo == nil {
		return []Entry{}, nil
	}
	return s.repo.Recent(ctx, clampLimit(limit))
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
