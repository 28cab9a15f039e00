package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	Save(ctx context.Context, a *Application) error
	GetByAppID(ctx context.Context, appID string) (*Application, error)
	// Row-locking read; only meaningful inside a transaction.
	GetByAppIDForUpdate(ctx context.Context, appID string) (*Application, error)
	// Newest first.
	ListByUserID(ctx context.Context, userID string) ([]Application, error)
	List(ctx context.Context) ([]Application, error)
}
