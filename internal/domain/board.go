package domain

import (
	"context"
	"time"
)

type Board struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BoardRepository interface {
	// Create inserts a board. Fails with ErrConstraint if the name is empty
	// or already taken.
	Create(ctx context.Context, name string) (*Board, error)

	// List returns all boards ordered by id.
	List(ctx context.Context) ([]*Board, error)

	// Rename updates the board name and refreshes updated_at.
	Rename(ctx context.Context, id int64, name string) error

	// Delete removes the board. Tasks on the board are removed by the
	// ON DELETE CASCADE constraint.
	Delete(ctx context.Context, id int64) error
}
