package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "loanstream/internal/domain/audit"
	"loanstream/internal/testutil/auditmock"
)

func TestRecorder_Record(t *testing.T) {
	at := time.Date(2025, 9, 6, 17, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	rec := NewRecorder().WithClock(func() time.Time { return at })

	var appended []*domain.Event
	repo := &auditmock.Repo{
		AppendFn: func(ctx context.Context, e *domain.Event) error {
			appended = append(appended, e)
			return nil
		},
	}

	ev, err := rec.Record(context.Background(), repo, Entry{
		Kind:    domain.KindUnderwritingRun,
		AppID:   "APP1",
		Status:  "rejected",
		ActorID: "admin-1",
		Detail:  "credit score too low (342)",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(appended) != 1 || appended[0] != ev {
		t.Fatalf("expected exactly one append, got %d", len(appended))
	}
	if ev.Payload != "APP1 -> rejected: credit score too low (342)" {
		t.Fatalf("payload = %q", ev.Payload)
	}
	if !ev.CreatedAt.Equal(at) || ev.CreatedAt.Location() != time.UTC {
		t.Fatalf("CreatedAt = %v, want %v in UTC", ev.CreatedAt, at)
	}
	if len(ev.EventID) != 32 {
		t.Fatalf("EventID = %q", ev.EventID)
	}
}

func TestRecorder_Record_PropagatesError(t *testing.T) {
	boom := errors.New("insert failed")
	repo := &auditmock.Repo{AppendFn: func(context.Context, *domain.Event) error { return boom }}

	ev, err := NewRecorder().Record(context.Background(), repo, Entry{Kind: domain.KindSubmitted, AppID: "APP1", Status: "submitted"})
	if !errors.Is(err, boom) || ev != nil {
		t.Fatalf("want %v and nil event, got %v / %+v", boom, err, ev)
	}
}

func TestPayload(t *testing.T) {
	if got := Payload("APP1", "submitted", ""); got != "APP1 -> submitted" {
		t.Fatalf("Payload = %q", got)
	}
}
