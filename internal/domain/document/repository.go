package document

import "context"

type Repository interface {
	Create(ctx context.Context, d *Document) error
	// Oldest first.
	ListByAppID(ctx context.Context, appID string) ([]Document, error)
}
