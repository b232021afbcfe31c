package kanban

import (
	"context"
	"fmt"
	"strings"

	"github.com/plannyhq/planny/internal/domain"
)

// DefaultHistoryLimit bounds getChatHistory when no limit is configured.
const DefaultHistoryLimit = 100

// Service is the collaborative state-change core: every board/task/chat
// mutation goes through it, and on success the resulting event is broadcast
// to all registered listeners. Notifications fire strictly after the
// repository call has returned, i.e. after the mutation committed; a
// delivery failure never rolls anything back and never fails the caller.
type Service struct {
	users    domain.UserRepository
	boards   domain.BoardRepository
	tasks    domain.TaskRepository
	messages domain.MessageRepository

	registry    *Registry
	broadcaster *Broadcaster

	historyLimit int
}

// NewService wires the service with its own listener registry. relay may be
// nil for single-node deployments; historyLimit <= 0 selects the default.
func NewService(users domain.UserRepository, boards domain.BoardRepository, tasks domain.TaskRepository, messages domain.MessageRepository, relay Relay, historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}

	registry := NewRegistry()

	return &Service{
		users:        users,
		boards:       boards,
		tasks:        tasks,
		messages:     messages,
		registry:     registry,
		broadcaster:  NewBroadcaster(registry, relay),
		historyLimit: historyLimit,
	}
}

// Broadcaster exposes the fan-out for the relay bridge's inbound path.
func (s *Service) Broadcaster() *Broadcaster { return s.broadcaster }

func (s *Service) GetUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("kanban.GetUsers: %w", err)
	}
	return users, nil
}

func (s *Service) GetBoards(ctx context.Context) ([]*domain.Board, error) {
	boards, err := s.boards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("kanban.GetBoards: %w", err)
	}
	return boards, nil
}

func (s *Service) CreateBoard(ctx context.Context, name string) (*domain.Board, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("kanban.CreateBoard: empty name: %w", domain.ErrConstraint)
	}

	b, err := s.boards.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("kanban.CreateBoard: %w", err)
	}

	s.broadcaster.Broadcast(ctx, BoardListChanged())
	return b, nil
}

func (s *Service) UpdateBoard(ctx context.Context, id int64, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("kanban.UpdateBoard: empty name: %w", domain.ErrConstraint)
	}

	if err := s.boards.Rename(ctx, id, name); err != nil {
		return fmt.Errorf("kanban.UpdateBoard: %w", err)
	}

	s.broadcaster.Broadcast(ctx, BoardListChanged())
	return nil
}

func (s *Service) DeleteBoard(ctx context.Context, id int64) error {
	if err := s.boards.Delete(ctx, id); err != nil {
		return fmt.Errorf("kanban.DeleteBoard: %w", err)
	}

	s.broadcaster.Broadcast(ctx, BoardListChanged())
	return nil
}

func (s *Service) GetTasksByBoard(ctx context.Context, boardID int64) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("kanban.GetTasksByBoard: %w", err)
	}
	return tasks, nil
}

func (s *Service) CreateTask(ctx context.Context, boardID, creatorID int64, assigneeID *int64, title, description string, status domain.TaskStatus) (*domain.Task, error) {
	if err := domain.ValidateTaskFields(title, description, status); err != nil {
		return nil, fmt.Errorf("kanban.CreateTask: %w", err)
	}

	t, err := s.tasks.Create(ctx, boardID, creatorID, assigneeID, title, description, status)
	if err != nil {
		return nil, fmt.Errorf("kanban.CreateTask: %w", err)
	}

	s.broadcaster.Broadcast(ctx, TasksUpdated(t.BoardID))
	return t, nil
}

func (s *Service) UpdateTask(ctx context.Context, id int64, assigneeID *int64, title, description string, status domain.TaskStatus) error {
	if err := domain.ValidateTaskFields(title, description, status); err != nil {
		return fmt.Errorf("kanban.UpdateTask: %w", err)
	}

	boardID, err := s.tasks.Update(ctx, id, assigneeID, title, description, status)
	if err != nil {
		return fmt.Errorf("kanban.UpdateTask: %w", err)
	}

	s.broadcaster.Broadcast(ctx, TasksUpdated(boardID))
	return nil
}

func (s *Service) MoveTask(ctx context.Context, id int64, status domain.TaskStatus) error {
	if _, err := domain.ParseTaskStatus(string(status)); err != nil {
		return fmt.Errorf("kanban.MoveTask: %w", err)
	}

	boardID, err := s.tasks.Move(ctx, id, status)
	if err != nil {
		return fmt.Errorf("kanban.MoveTask: %w", err)
	}

	s.broadcaster.Broadcast(ctx, TasksUpdated(boardID))
	return nil
}

func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	boardID, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("kanban.DeleteTask: %w", err)
	}

	s.broadcaster.Broadcast(ctx, TasksUpdated(boardID))
	return nil
}

func (s *Service) SendMessage(ctx context.Context, userID int64, content string) (*domain.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("kanban.SendMessage: empty content: %w", domain.ErrConstraint)
	}

	m, err := s.messages.Insert(ctx, userID, content)
	if err != nil {
		return nil, fmt.Errorf("kanban.SendMessage: %w", err)
	}

	s.broadcaster.Broadcast(ctx, ChatMessageReceived(m))
	return m, nil
}

func (s *Service) GetChatHistory(ctx context.Context) ([]*domain.ChatMessage, error) {
	messages, err := s.messages.Recent(ctx, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("kanban.GetChatHistory: %w", err)
	}
	return messages, nil
}

// RegisterListener subscribes a client callback endpoint. Idempotent.
func (s *Service) RegisterListener(l Listener) {
	s.registry.Register(l)
}

// UnregisterListener removes a client callback endpoint. Idempotent.
func (s *Service) UnregisterListener(l Listener) {
	s.registry.Unregister(l)
}
