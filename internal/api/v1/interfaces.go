package v1

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/plannyhq/planny/internal/auth"
	"github.com/plannyhq/planny/internal/domain"
)

// Kanban abstracts the state-change service for handler testing.
// *kanban.Service satisfies this interface.
type Kanban interface {
	GetUsers(ctx context.Context) ([]*domain.User, error)

	GetBoards(ctx context.Context) ([]*domain.Board, error)
	CreateBoard(ctx context.Context, name string) (*domain.Board, error)
	UpdateBoard(ctx context.Context, id int64, name string) error
	DeleteBoard(ctx context.Context, id int64) error

	GetTasksByBoard(ctx context.Context, boardID int64) ([]*domain.Task, error)
	CreateTask(ctx context.Context, boardID, creatorID int64, assigneeID *int64, title, description string, status domain.TaskStatus) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, assigneeID *int64, title, description string, status domain.TaskStatus) error
	MoveTask(ctx context.Context, id int64, status domain.TaskStatus) error
	DeleteTask(ctx context.Context, id int64) error

	SendMessage(ctx context.Context, userID int64, content string) (*domain.ChatMessage, error)
	GetChatHistory(ctx context.Context) ([]*domain.ChatMessage, error)
}

// AuthService abstracts authentication for handler testing. *auth.Service
// satisfies this interface.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Register(ctx context.Context, username, password string) (*domain.User, error)
}

// serviceError maps domain sentinels onto HTTP problem responses.
func serviceError(detail string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound(detail)
	case errors.Is(err, domain.ErrConstraint):
		return huma.Error422UnprocessableEntity(detail, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return huma.Error401Unauthorized(detail)
	default:
		return huma.Error500InternalServerError(detail, err)
	}
}
