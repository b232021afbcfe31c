package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plannyhq/planny/internal/domain"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// Insert stores the message and resolves the author's username in one
// transaction: either both statements commit or neither does. The returned
// message is safe to broadcast because the transaction has already committed.
func (r *MessageRepo) Insert(ctx context.Context, userID int64, content string) (*domain.ChatMessage, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("messageRepo.Insert: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	m := domain.ChatMessage{
		UserID:  userID,
		Content: content,
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO messages (user_id, content) VALUES ($1, $2)
		 RETURNING message_id, created_at`,
		userID, content,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, wrapError("messageRepo.Insert", err)
	}

	err = tx.QueryRow(ctx,
		`SELECT username FROM users WHERE id = $1`,
		userID,
	).Scan(&m.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("messageRepo.Insert: author: %w", domain.ErrConstraint)
	}
	if err != nil {
		return nil, fmt.Errorf("messageRepo.Insert: author: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("messageRepo.Insert: commit: %w", err)
	}

	return &m, nil
}

// Recent returns the newest limit messages in ascending order. The inner
// query selects the tail of the stream, the outer one restores chronology.
func (r *MessageRepo) Recent(ctx context.Context, limit int) ([]*domain.ChatMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT message_id, user_id, username, content, created_at FROM (
			SELECT m.message_id, m.user_id, u.username, m.content, m.created_at
			FROM messages m
			JOIN users u ON m.user_id = u.id
			ORDER BY m.created_at DESC, m.message_id DESC
			LIMIT $1
		 ) tail
		 ORDER BY created_at ASC, message_id ASC`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("messageRepo.Recent: %w", err)
	}
	defer rows.Close()

	var messages []*domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.Username, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("messageRepo.Recent: scan: %w", err)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("messageRepo.Recent: rows: %w", err)
	}

	return messages, nil
}
