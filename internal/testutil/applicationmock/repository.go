package applicationmock

import (
	"context"

	domain "loanstream/internal/domain/application"
)

// Compile-time check
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset writes are no-ops; unset reads return context.Canceled.
type Repo struct {
	CreateFn              func(ctx context.Context, a *domain.Application) error
	SaveFn                func(ctx context.Context, a *domain.Application) error
	GetByAppIDFn          func(ctx context.Context, appID string) (*domain.Application, error)
	GetByAppIDForUpdateFn func(ctx context.Context, appID string) (*domain.Application, error)
	ListByUserIDFn        func(ctx context.Context, userID string) ([]domain.Application, error)
	ListFn                func(ctx context.Context) ([]domain.Application, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAppID(ctx context.Context, appID string) (*domain.Application, error) {
	if m.GetByAppIDFn != nil {
		return m.GetByAppIDFn(ctx, appID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByAppIDForUpdate(ctx context.Context, appID string) (*domain.Application, error) {
	if m.GetByAppIDForUpdateFn != nil {
		return m.GetByAppIDForUpdateFn(ctx, appID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByUserID(ctx context.Context, userID string) ([]domain.Application, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.Application, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}
