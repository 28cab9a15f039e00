package gormrepo

import (
	"context"

	appDomain "loanstream/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByAppID(ctx context.Context, appID string) (*appDomain.Application, error) {
	var out appDomain.Application
	if err := r.db.WithContext(ctx).Where("app_id = ?", appID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByAppIDForUpdate issues SELECT ... FOR UPDATE; dialects without row locks
// (sqlite) drop the clause and rely on the database-level write lock.
func (r *ApplicationRepository) GetByAppIDForUpdate(ctx context.Context, appID string) (*appDomain.Application, error) {
	var out appDomain.Application
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("app_id = ?", appID).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ApplicationRepository) ListByUserID(ctx context.Context, userID string) ([]appDomain.Application, error) {
	var out []appDomain.Application
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ApplicationRepository) List(ctx context.Context) ([]appDomain.Application, error) {
	var out []appDomain.Application
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}
