package documentmock

import (
	"context"

	domain "loanstream/internal/domain/document"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn      func(ctx context.Context, d *domain.Document) error
	ListByAppIDFn func(ctx context.Context, appID string) ([]domain.Document, error)
}

func (m *Repo) Create(ctx context.Context, d *domain.Document) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) ListByAppID(ctx context.Context, appID string) ([]domain.Document, error) {
	if m.ListByAppIDFn != nil {
		return m.ListByAppIDFn(ctx, appID)
	}
	return nil, context.Canceled
}
