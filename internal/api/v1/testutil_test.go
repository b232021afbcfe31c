package v1_test

import (
	"context"

	"github.com/plannyhq/planny/internal/domain"
	"github.com/plannyhq/planny/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject user identity into context for the *Ctx calls
// ---------------------------------------------------------------------------

func userCtx(userID int64, username string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, middleware.ContextKeyUsername, username)
	return ctx
}

// ---------------------------------------------------------------------------
// Mock Kanban service
// ---------------------------------------------------------------------------

type mockKanban struct {
	getUsersFunc func(ctx context.Context) ([]*domain.User, error)

	getBoardsFunc   func(ctx context.Context) ([]*domain.Board, error)
	createBoardFunc func(ctx context.Context, name string) (*domain.Board, error)
	updateBoardFunc func(ctx context.Context, id int64, name string) error
	deleteBoardFunc func(ctx context.Context, id int64) error

	getTasksByBoardFunc func(ctx context.Context, boardID int64) ([]*domain.Task, error)
	createTaskFunc      func(ctx context.Context, boardID, creatorID int64, assigneeID *int64, title, description string, status domain.TaskStatus) (*domain.Task, error)
	updateTaskFunc      func(ctx context.Context, id int64, assigneeID *int64, title, description string, status domain.TaskStatus) error
	moveTaskFunc        func(ctx context.Context, id int64, status domain.TaskStatus) error
	deleteTaskFunc      func(ctx context.Context, id int64) error

	sendMessageFunc    func(ctx context.Context, userID int64, content string) (*domain.ChatMessage, error)
	getChatHistoryFunc func(ctx context.Context) ([]*domain.ChatMessage, error)
}

func (m *mockKanban) GetUsers(ctx context.Context) ([]*domain.User, error) {
	return m.getUsersFunc(ctx)
}

func (m *mockKanban) GetBoards(ctx context.Context) ([]*domain.Board, error) {
	return m.getBoardsFunc(ctx)
}

func (m *mockKanban) CreateBoard(ctx context.Context, name string) (*domain.Board, error) {
	return m.createBoardFunc(ctx, name)
}

func (m *mockKanban) UpdateBoard(ctx context.Context, id int64, name string) error {
	return m.updateBoardFunc(ctx, id, name)
}

func (m *mockKanban) DeleteBoard(ctx context.Context, id int64) error {
	return m.deleteBoardFunc(ctx, id)
}

func (m *mockKanban) GetTasksByBoard(ctx context.Context, boardID int64) ([]*domain.Task, error) {
	return m.getTasksByBoardFunc(ctx, boardID)
}

func (m *mockKanban) CreateTask(ctx context.Context, boardID, creatorID int64, assigneeID *int64, title, description string, status domain.TaskStatus) (*domain.Task, error) {
	return m.createTaskFunc(ctx, boardID, creatorID, assigneeID, title, description, status)
}

func (m *mockKanban) UpdateTask(ctx context.Context, id int64, assigneeID *int64, title, description string, status domain.TaskStatus) error {
	return m.updateTaskFunc(ctx, id, assigneeID, title, description, status)
}

func (m *mockKanban) MoveTask(ctx context.Context, id int64, status domain.TaskStatus) error {
	return m.moveTaskFunc(ctx, id, status)
}

func (m *mockKanban) DeleteTask(ctx context.Context, id int64) error {
	return m.deleteTaskFunc(ctx, id)
}

func (m *mockKanban) SendMessage(ctx context.Context, userID int64, content string) (*domain.ChatMessage, error) {
	return m.sendMessageFunc(ctx, userID, content)
}

func (m *mockKanban) GetChatHistory(ctx context.Context) ([]*domain.ChatMessage, error) {
	return m.getChatHistoryFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	loginFunc    func(ctx context.Context, username, password string) (string, *domain.User, error)
	registerFunc func(ctx context.Context, username, password string) (*domain.User, error)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return m.loginFunc(ctx, username, password)
}

func (m *mockAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return m.registerFunc(ctx, username, password)
}
