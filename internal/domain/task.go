package domain

import (
	"context"
	"fmt"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// ParseTaskStatus validates a raw status string. Any status may move to any
// other, so there is no transition check beyond membership in the enum.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return TaskStatus(s), nil
	default:
		return "", fmt.Errorf("unknown task status %q: %w", s, ErrConstraint)
	}
}

// Length limits enforced both here and by the CHECK constraints in the schema.
const (
	TaskTitleMaxLen       = 100
	TaskDescriptionMaxLen = 500
)

type Task struct {
	ID          int64      `json:"id"`
	BoardID     int64      `json:"board_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatorID   int64      `json:"creator_id"`
	AssigneeID  *int64     `json:"assignee_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ValidateTaskFields checks title/description bounds and the status enum.
func ValidateTaskFields(title, description string, status TaskStatus) error {
	if len(title) == 0 || len(title) > TaskTitleMaxLen {
		return fmt.Errorf("task title must be 1-%d characters: %w", TaskTitleMaxLen, ErrConstraint)
	}
	if len(description) > TaskDescriptionMaxLen {
		return fmt.Errorf("task description must be at most %d characters: %w", TaskDescriptionMaxLen, ErrConstraint)
	}
	if _, err := ParseTaskStatus(string(status)); err != nil {
		return err
	}
	return nil
}

type TaskRepository interface {
	// Create inserts a task and returns the stored row. Fails with
	// ErrConstraint if the board, creator, or assignee does not exist.
	Create(ctx context.Context, boardID, creatorID int64, assigneeID *int64, title, description string, status TaskStatus) (*Task, error)

	// ListByBoard returns the board's tasks ordered by id.
	ListByBoard(ctx context.Context, boardID int64) ([]*Task, error)

	// Update replaces the mutable fields and returns the owning board id.
	// BoardID never changes after creation.
	Update(ctx context.Context, id int64, assigneeID *int64, title, description string, status TaskStatus) (int64, error)

	// Move changes only the status and returns the owning board id.
	Move(ctx context.Context, id int64, status TaskStatus) (int64, error)

	// Delete removes the task and returns the owning board id.
	Delete(ctx context.Context, id int64) (int64, error)
}
