package users

import (
	"context"
	"errors"
)

// ErrNotFound reports that no user exists for the requested ID.
var ErrNotFound = errors.New("user not found")

// Repo defines persistence operations for user identities.
type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
}
