// Package audit appends lifecycle events. It is always handed the
// transaction-bound repository of the transition it records.
package audit

import (
	"context"
	"time"

	domain "loanstream/internal/domain/audit"
	"loanstream/pkg/id"
)

type Entry struct {
	Kind    domain.Kind
	AppID   string
	Status  string
	ActorID string
	Detail  string // optional, appended to the payload
}

type Recorder struct {
	now   func() time.Time
	newID func() string
}

func NewRecorder() *Recorder {
	return &Recorder{now: time.Now, newID: id.NewID32}
}

// WithClock returns a copy stamping events with now.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	c := *r
	c.now = now
	return &c
}

// Payload renders the descriptive text stored with an event.
func Payload(appID, status, detail string) string {
	p := appID + " -> " + status
	if detail != "" {
		p += ": " + detail
	}
	return p
}

// Record appends exactly one event.
func (r *Recorder) Record(ctx context.Context, repo domain.Repository, e Entry) (*domain.Event, error) {
	ev := &domain.Event{
		EventID:   r.newID(),
		Kind:      e.Kind,
		AppID:     e.AppID,
		Status:    e.Status,
		ActorID:   e.ActorID,
		Payload:   Payload(e.AppID, e.Status, e.Detail),
		CreatedAt: r.now().UTC(),
	}
	if err := repo.Append(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}
