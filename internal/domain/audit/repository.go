package audit

import "context"

type Repository interface {
	Append(ctx context.Context, e *Event) error
	// Newest first.
	ListByAppID(ctx context.Context, appID string) ([]Event, error)
}
