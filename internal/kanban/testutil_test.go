package kanban_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/plannyhq/planny/internal/domain"
	"github.com/plannyhq/planny/internal/kanban"
)

// ---------------------------------------------------------------------------
// Recording / failing listeners
// ---------------------------------------------------------------------------

type recordingListener struct {
	mu     sync.Mutex
	events []kanban.Event
}

func (l *recordingListener) Deliver(_ context.Context, ev kanban.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
	return nil
}

func (l *recordingListener) Events() []kanban.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]kanban.Event(nil), l.events...)
}

// failingListener returns err on every delivery attempt and counts them.
type failingListener struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (l *failingListener) Deliver(context.Context, kanban.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	return l.err
}

func (l *failingListener) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

// ---------------------------------------------------------------------------
// Mock repositories
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	createFunc        func(ctx context.Context, username, credential string) (*domain.User, error)
	getByUsernameFunc func(ctx context.Context, username string) (*domain.User, string, error)
	getByIDFunc       func(ctx context.Context, id int64) (*domain.User, error)
	listFunc          func(ctx context.Context) ([]*domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, username, credential string) (*domain.User, error) {
	return m.createFunc(ctx, username, credential)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, string, error) {
	return m.getByUsernameFunc(ctx, username)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	return m.listFunc(ctx)
}

type mockBoardRepo struct {
	createFunc func(ctx context.Context, name string) (*domain.Board, error)
	listFunc   func(ctx context.Context) ([]*domain.Board, error)
	renameFunc func(ctx context.Context, id int64, name string) error
	deleteFunc func(ctx context.Context, id int64) error
}

func (m *mockBoardRepo) Create(ctx context.Context, name string) (*domain.Board, error) {
	return m.createFunc(ctx, name)
}

func (m *mockBoardRepo) List(ctx context.Context) ([]*domain.Board, error) {
	return m.listFunc(ctx)
}

func (m *mockBoardRepo) Rename(ctx context.Context, id int64, name string) error {
	return m.renameFunc(ctx, id, name)
}

func (m *mockBoardRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFunc(ctx, id)
}

type mockTaskRepo struct {
	createFunc      func(ctx context.Context, boardID, creatorID int64, assigneeID *int64, title, description string, status domain.TaskStatus) (*domain.Task, error)
	listByBoardFunc func(ctx context.Context, boardID int64) ([]*domain.Task, error)
	updateFunc      func(ctx context.Context, id int64, assigneeID *int64, title, description string, status domain.TaskStatus) (int64, error)
	moveFunc        func(ctx context.Context, id int64, status domain.TaskStatus) (int64, error)
	deleteFunc      func(ctx context.Context, id int64) (int64, error)
}

func (m *mockTaskRepo) Create(ctx context.Context, boardID, creatorID int64, assigneeID *int64, title, description string, status domain.TaskStatus) (*domain.Task, error) {
	return m.createFunc(ctx, boardID, creatorID, assigneeID, title, description, status)
}

func (m *mockTaskRepo) ListByBoard(ctx context.Context, boardID int64) ([]*domain.Task, error) {
	return m.listByBoardFunc(ctx, boardID)
}

func (m *mockTaskRepo) Update(ctx context.Context, id int64, assigneeID *int64, title, description string, status domain.TaskStatus) (int64, error) {
	return m.updateFunc(ctx, id, assigneeID, title, description, status)
}

func (m *mockTaskRepo) Move(ctx context.Context, id int64, status domain.TaskStatus) (int64, error) {
	return m.moveFunc(ctx, id, status)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return m.deleteFunc(ctx, id)
}

type mockMessageRepo struct {
	insertFunc func(ctx context.Context, userID int64, content string) (*domain.ChatMessage, error)
	recentFunc func(ctx context.Context, limit int) ([]*domain.ChatMessage, error)
}

func (m *mockMessageRepo) Insert(ctx context.Context, userID int64, content string) (*domain.ChatMessage, error) {
	return m.insertFunc(ctx, userID, content)
}

func (m *mockMessageRepo) Recent(ctx context.Context, limit int) ([]*domain.ChatMessage, error) {
	return m.recentFunc(ctx, limit)
}

// newService builds a service over the given mocks with nil relay and the
// default history limit. Nil mocks panic when touched, which is the point:
// an operation must not reach a repository it has no business calling.
func newService(users *mockUserRepo, boards *mockBoardRepo, tasks *mockTaskRepo, messages *mockMessageRepo) *kanban.Service {
	return kanban.NewService(users, boards, tasks, messages, nil, 0)
}

// transportErr fabricates a delivery error that the fan-out must treat as a
// transport failure.
func transportErr() error {
	return fmt.Errorf("write tcp 127.0.0.1:9: broken pipe: %w", kanban.ErrUnreachable)
}
