package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plannyhq/planny/internal/domain"
)

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) Create(ctx context.Context, boardID, creatorID int64, assigneeID *int64, title, description string, status domain.TaskStatus) (*domain.Task, error) {
	t := domain.Task{
		BoardID:     boardID,
		Title:       title,
		Description: description,
		Status:      status,
		CreatorID:   creatorID,
		AssigneeID:  assigneeID,
	}

	err := r.pool.QueryRow(ctx,
		`INSERT INTO tasks (board_id, creator_id, assignee_id, title, description, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		boardID, creatorID, assigneeID, title, description, status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, wrapError("taskRepo.Create", err)
	}

	return &t, nil
}

func (r *TaskRepo) ListByBoard(ctx context.Context, boardID int64) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, board_id, creator_id, assignee_id, title, description, status, created_at, updated_at
		 FROM tasks WHERE board_id = $1
		 ORDER BY id`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.ListByBoard: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(
			&t.ID, &t.BoardID, &t.CreatorID, &t.AssigneeID,
			&t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("taskRepo.ListByBoard: scan: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("taskRepo.ListByBoard: rows: %w", err)
	}

	return tasks, nil
}

// Update replaces the mutable fields in one statement; RETURNING board_id
// makes the mutation and the board lookup for notification a single atomic
// operation.
func (r *TaskRepo) Update(ctx context.Context, id int64, assigneeID *int64, title, description string, status domain.TaskStatus) (int64, error) {
	var boardID int64

	err := r.pool.QueryRow(ctx,
		`UPDATE tasks
		 SET assignee_id = $1, title = $2, description = $3, status = $4, updated_at = now()
		 WHERE id = $5
		 RETURNING board_id`,
		assigneeID, title, description, status, id,
	).Scan(&boardID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("taskRepo.Update: %w", domain.ErrNotFound)
	}
	if err != nil {
		return 0, wrapError("taskRepo.Update", err)
	}

	return boardID, nil
}

func (r *TaskRepo) Move(ctx context.Context, id int64, status domain.TaskStatus) (int64, error) {
	var boardID int64

	err := r.pool.QueryRow(ctx,
		`UPDATE tasks SET status = $1, updated_at = now() WHERE id = $2 RETURNING board_id`,
		status, id,
	).Scan(&boardID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("taskRepo.Move: %w", domain.ErrNotFound)
	}
	if err != nil {
		return 0, wrapError("taskRepo.Move", err)
	}

	return boardID, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) (int64, error) {
	var boardID int64

	err := r.pool.QueryRow(ctx,
		`DELETE FROM tasks WHERE id = $1 RETURNING board_id`,
		id,
	).Scan(&boardID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("taskRepo.Delete: %w", domain.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("taskRepo.Delete: %w", err)
	}

	return boardID, nil
}
