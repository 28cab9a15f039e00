package gormrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	appDomain "loanstream/internal/domain/application"
	"loanstream/internal/testutil/sqlitedb"

	"gorm.io/gorm"
)

func makeApplication(appID, userID string) *appDomain.Application {
	return &appDomain.Application{
		AppID:           appID,
		UserID:          userID,
		LoanAmount:      50000,
		TenureMonths:    12,
		AnnualRate:      12,
		IncomeMonthly:   30000,
		EmploymentType:  appDomain.EmploymentSalaried,
		Status:          appDomain.StatusSubmitted,
		StatusUpdatedAt: time.Now().UTC(),
	}
}

func TestApplication_CreateAndGet(t *testing.T) {
	repo := NewApplicationRepository(sqlitedb.Open(t))
	ctx := context.Background()

	a := makeApplication("APP250906100000", "user-1")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByAppID(ctx, "APP250906100000")
	if err != nil {
		t.Fatalf("GetByAppID: %v", err)
	}
	if got.UserID != "user-1" || got.Status != appDomain.StatusSubmitted || got.CreditScore != nil {
		t.Errorf("unexpected application: %+v", got)
	}

	locked, err := repo.GetByAppIDForUpdate(ctx, "APP250906100000")
	if err != nil {
		t.Fatalf("GetByAppIDForUpdate: %v", err)
	}
	if locked.ID != a.ID {
		t.Errorf("locked read returned id %d, want %d", locked.ID, a.ID)
	}
}

func TestApplication_DuplicateAppIDRejected(t *testing.T) {
	repo := NewApplicationRepository(sqlitedb.Open(t))
	ctx := context.Background()

	if err := repo.Create(ctx, makeApplication("APP250906100001", "user-1")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, makeApplication("APP250906100001", "user-2")); err == nil {
		t.Fatal("expected unique violation for duplicate app_id")
	}
}

func TestApplication_SaveUpdates(t *testing.T) {
	repo := NewApplicationRepository(sqlitedb.Open(t))
	ctx := context.Background()

	a := makeApplication("APP250906100002", "user-1")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	score, dti, emi := 342, 0.148, 4442.44
	a.CreditScore, a.DTI, a.EMI = &score, &dti, &emi
	a.Status = appDomain.StatusRejected
	a.DecisionReason = "credit score too low (342)"
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByAppID(ctx, a.AppID)
	if err != nil {
		t.Fatalf("GetByAppID: %v", err)
	}
	if got.Status != appDomain.StatusRejected || got.DecisionReason != a.DecisionReason {
		t.Errorf("status/reason not persisted: %+v", got)
	}
	if got.CreditScore == nil || *got.CreditScore != 342 || got.EMI == nil || *got.EMI != 4442.44 {
		t.Errorf("metrics not persisted: %+v", got)
	}
}

func TestApplication_NotFound(t *testing.T) {
	repo := NewApplicationRepository(sqlitedb.Open(t))
	ctx := context.Background()

	if _, err := repo.GetByAppID(ctx, "APP000000000000"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if _, err := repo.GetByAppIDForUpdate(ctx, "APP000000000000"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestApplication_ListNewestFirst(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 9, 6, 10, 0, 0, 0, time.UTC)
	seed := []struct {
		appID, userID string
		at            time.Time
	}{
		{"APP1", "user-1", base.Add(-3 * time.Hour)},
		{"APP2", "user-2", base.Add(-2 * time.Hour)},
		{"APP3", "user-1", base.Add(-1 * time.Hour)},
	}
	for _, s := range seed {
		a := makeApplication(s.appID, s.userID)
		a.CreatedAt = s.at
		if err := repo.Create(ctx, a); err != nil {
			t.Fatal(err)
		}
	}

	mine, err := repo.ListByUserID(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(mine) != 2 || mine[0].AppID != "APP3" || mine[1].AppID != "APP1" {
		t.Fatalf("unexpected order: %+v", mine)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].AppID != "APP3" || all[2].AppID != "APP1" {
		t.Fatalf("unexpected order: %+v", all)
	}

	none, err := repo.ListByUserID(ctx, "nobody")
	if err != nil || len(none) != 0 {
		t.Fatalf("ListByUserID(nobody) = %v, %v", none, err)
	}
}
