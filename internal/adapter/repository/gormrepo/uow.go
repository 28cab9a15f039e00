package gormrepo

import (
	"context"

	"loanstream/internal/domain/application"
	"loanstream/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// NewRepos binds every repository to db, which may be a transaction.
func NewRepos(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Applications: &ApplicationRepository{db: db},
		Audit:        &AuditRepository{db: db},
		Documents:    &DocumentRepository{db: db},
		Users:        &UserRepository{db: db},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, appID string, fn func(r uow.Repos, a *application.Application) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := NewRepos(tx)
		// lock the application row up-front to prevent races
		a, err := r.Applications.GetByAppIDForUpdate(ctx, appID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
