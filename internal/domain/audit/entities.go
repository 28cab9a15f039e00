package audit

import (
	"time"
)

type Kind string

const (
	KindSubmitted       Kind = "application_submitted"
	KindReviewStarted   Kind = "review_started"
	KindUnderwritingRun Kind = "underwriting_run"
	KindManualApproval  Kind = "manual_approval"
	KindManualRejection Kind = "manual_rejection"
)

// Table: audit_logs. Rows are only ever inserted.
type Event struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EventID   string    `gorm:"column:event_id;size:32;uniqueIndex:ux_audit_logs_event_id;not null" json:"event_id"`
	Kind      Kind      `gorm:"column:event;size:64;not null" json:"event"`
	AppID     string    `gorm:"column:app_id;size:32;index:idx_audit_logs_app;not null" json:"app_id"`
	Status    string    `gorm:"column:status;size:16;not null" json:"status"`
	ActorID   string    `gorm:"column:actor_id;size:64" json:"actor_id"`
	Payload   string    `gorm:"column:payload;type:text" json:"payload"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_audit_logs_app" json:"created_at"`
}

func (Event) TableName() string { return "audit_logs" }
