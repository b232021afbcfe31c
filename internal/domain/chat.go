package domain

import (
	"context"
	"time"
)

// ChatMessage is append-only; there are no edits or deletes. Username is
// denormalized at write time so clients can render without a user lookup.
type ChatMessage struct {
	ID        int64     `json:"message_id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageRepository interface {
	// Insert stores a message and resolves the author's username inside the
	// same transaction. Fails with ErrConstraint if the user does not exist
	// or the content is empty.
	Insert(ctx context.Context, userID int64, content string) (*ChatMessage, error)

	// Recent returns at most limit messages, ascending by created_at.
	Recent(ctx context.Context, limit int) ([]*ChatMessage, error)
}
