package gormrepo

import (
	"context"

	auditDomain "loanstream/internal/domain/audit"

	"gorm.io/gorm"
)

// AuditRepository never updates or deletes rows.
type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Append(ctx context.Context, e *auditDomain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *AuditRepository) ListByAppID(ctx context.Context, appID string) ([]auditDomain.Event, error) {
	var out []auditDomain.Event
	err := r.db.WithContext(ctx).
		Where("app_id = ?", appID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
