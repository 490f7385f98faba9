package user

import "context"

// Repository exposes account persistence operations.
type Repository interface {
	GetByExternalID(ctx context.Context, externalID string) (User, bool, error)
	// UpsertByExternalID inserts the user; an existing row is left unchanged and returned.
	UpsertByExternalID(ctx context.Context, user User) (User, error)
	DeleteByExternalID(ctx context.Context, externalID string) (bool, error)
}
