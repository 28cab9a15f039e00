package uow

import (
	"context"

	"loanstream/internal/domain/application"
	"loanstream/internal/domain/audit"
	"loanstream/internal/domain/document"
	"loanstream/internal/domain/user"
)

// Repos are bound to one transaction.
type Repos struct {
	Applications application.Repository
	Audit        audit.Repository
	Documents    document.Repository
	Users        user.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, appID string, fn func(r Repos, a *application.Application) error) error
}
