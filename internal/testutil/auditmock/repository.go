package auditmock

import (
	"context"
	"sync"

	domain "loanstream/internal/domain/audit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// With AppendFn unset it keeps appended events in Events.
type Repo struct {
	AppendFn      func(ctx context.Context, e *domain.Event) error
	ListByAppIDFn func(ctx context.Context, appID string) ([]domain.Event, error)

	mu     sync.Mutex
	Events []domain.Event
}

func (m *Repo) Append(ctx context.Context, e *domain.Event) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, *e)
	return nil
}

func (m *Repo) ListByAppID(ctx context.Context, appID string) ([]domain.Event, error) {
	if m.ListByAppIDFn != nil {
		return m.ListByAppIDFn(ctx, appID)
	}
	return nil, context.Canceled
}
