package user

import "context"

type Repository interface {
	// Insert or refresh email/name by user_id.
	Upsert(ctx context.Context, u *User) error
	GetByUserID(ctx context.Context, userID string) (*User, error)
}
