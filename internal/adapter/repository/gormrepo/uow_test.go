package gormrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	appDomain "loanstream/internal/domain/application"
	auditDomain "loanstream/internal/domain/audit"
	docDomain "loanstream/internal/domain/document"
	"loanstream/internal/domain/uow"
	userDomain "loanstream/internal/domain/user"
	"loanstream/internal/testutil/sqlitedb"

	"gorm.io/gorm"
)

func auditFor(a *appDomain.Application, eventID string) *auditDomain.Event {
	return &auditDomain.Event{
		EventID:   eventID,
		Kind:      auditDomain.KindUnderwritingRun,
		AppID:     a.AppID,
		Status:    string(a.Status),
		Payload:   a.AppID + " -> " + string(a.Status),
		CreatedAt: time.Now().UTC(),
	}
}

func TestNewRepos_BindsEveryRepository(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	r := NewRepos(db)

	a := makeApplication("APP-REPOS", "user-1")
	if err := r.Applications.Create(ctx, a); err != nil {
		t.Fatalf("create application: %v", err)
	}
	if err := r.Audit.Append(ctx, auditFor(a, "ev-repos")); err != nil {
		t.Fatalf("append audit: %v", err)
	}
	if err := r.Documents.Create(ctx, &docDomain.Document{AppID: a.AppID, Filename: "payslip.pdf", UploadedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("create document: %v", err)
	}
	if err := r.Users.Upsert(ctx, &userDomain.User{UserID: "user-1", Name: "Ayu"}); err != nil {
		t.Fatalf("upsert user: %v", err)
	}

	if got, err := r.Applications.GetByAppID(ctx, a.AppID); err != nil || got.UserID != "user-1" {
		t.Fatalf("application = %+v, %v", got, err)
	}
	if got, err := r.Audit.ListByAppID(ctx, a.AppID); err != nil || len(got) != 1 {
		t.Fatalf("audit = %d rows, %v", len(got), err)
	}
	if got, err := r.Documents.ListByAppID(ctx, a.AppID); err != nil || len(got) != 1 {
		t.Fatalf("documents = %d rows, %v", len(got), err)
	}
	if got, err := r.Users.GetByUserID(ctx, "user-1"); err != nil || got.Name != "Ayu" {
		t.Fatalf("user = %+v, %v", got, err)
	}
}

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	apps := NewApplicationRepository(db)
	events := NewAuditRepository(db)

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		a := makeApplication("APP-COMMIT", "user-1")
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		return r.Audit.Append(ctx, auditFor(a, "ev-commit"))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	if _, err := apps.GetByAppID(ctx, "APP-COMMIT"); err != nil {
		t.Fatalf("application not visible after commit: %v", err)
	}
	got, err := events.ListByAppID(ctx, "APP-COMMIT")
	if err != nil || len(got) != 1 {
		t.Fatalf("audit not visible after commit: %v (%d rows)", err, len(got))
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	apps := NewApplicationRepository(db)
	events := NewAuditRepository(db)
	sentinel := errors.New("boom")

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		a := makeApplication("APP-ROLL", "user-2")
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		if err := r.Audit.Append(ctx, auditFor(a, "ev-roll")); err != nil {
			return err
		}
		return sentinel
	})

	if _, err := apps.GetByAppID(ctx, "APP-ROLL"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected application not found after rollback, got %v", err)
	}
	if got, _ := events.ListByAppID(ctx, "APP-ROLL"); len(got) != 0 {
		t.Fatalf("expected no audit rows after rollback, got %d", len(got))
	}
}

func TestGormUoW_WithinApplicationTx_Commit(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	apps := NewApplicationRepository(db)
	events := NewAuditRepository(db)

	if err := apps.Create(ctx, makeApplication("APP-TARGET", "user-3")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := guow.WithinApplicationTx(ctx, "APP-TARGET", func(r uow.Repos, a *appDomain.Application) error {
		if a == nil || a.AppID != "APP-TARGET" || a.Status != appDomain.StatusSubmitted {
			t.Fatalf("unexpected application passed to fn: %+v", a)
		}
		a.ForceReject(time.Now())
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		return r.Audit.Append(ctx, auditFor(a, "ev-target"))
	})
	if err != nil {
		t.Fatalf("WithinApplicationTx commit err: %v", err)
	}

	got, err := apps.GetByAppID(ctx, "APP-TARGET")
	if err != nil {
		t.Fatalf("GetByAppID post-commit: %v", err)
	}
	if got.Status != appDomain.StatusRejected {
		t.Fatalf("status not updated, got=%s", got.Status)
	}
	if evs, _ := events.ListByAppID(ctx, "APP-TARGET"); len(evs) != 1 || evs[0].Status != "rejected" {
		t.Fatalf("audit rows = %+v", evs)
	}
}

func TestGormUoW_WithinApplicationTx_Rollback(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	apps := NewApplicationRepository(db)
	events := NewAuditRepository(db)

	if err := apps.Create(ctx, makeApplication("APP-RB", "user-4")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sentinel := errors.New("stop")

	_ = guow.WithinApplicationTx(ctx, "APP-RB", func(r uow.Repos, a *appDomain.Application) error {
		if err := a.ForceApprove("SAN-RB", time.Now()); err != nil {
			return err
		}
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		if err := r.Audit.Append(ctx, auditFor(a, "ev-rb")); err != nil {
			return err
		}
		return sentinel
	})

	got, err := apps.GetByAppID(ctx, "APP-RB")
	if err != nil {
		t.Fatalf("post-rollback GetByAppID: %v", err)
	}
	if got.Status != appDomain.StatusSubmitted || got.SanctionID != "" {
		t.Fatalf("expected untouched application after rollback, got %+v", got)
	}
	if evs, _ := events.ListByAppID(ctx, "APP-RB"); len(evs) != 0 {
		t.Fatalf("expected no audit rows after rollback, got %d", len(evs))
	}
}

func TestGormUoW_WithinApplicationTx_NotFound(t *testing.T) {
	guow := NewGormUoW(sqlitedb.Open(t))

	err := guow.WithinApplicationTx(context.Background(), "APP-NOPE", func(uow.Repos, *appDomain.Application) error {
		t.Fatalf("callback should not be called when application missing")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
