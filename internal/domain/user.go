package domain

import (
	"context"
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRepository interface {
	// Create inserts a user with the already-encoded credential and returns
	// the stored row. Fails with ErrConstraint on a duplicate or empty username.
	Create(ctx context.Context, username, credential string) (*User, error)

	// GetByUsername returns the user and its stored credential.
	GetByUsername(ctx context.Context, username string) (*User, string, error)

	GetByID(ctx context.Context, id int64) (*User, error)

	// List returns all users ordered by username.
	List(ctx context.Context) ([]*User, error)
}
