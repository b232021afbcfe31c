package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/plannyhq/planny/internal/domain"
	"github.com/plannyhq/planny/internal/server/middleware"
)

type ListBoardTasksInput struct {
	ID int64 `path:"id" doc:"Board ID"`
}

type ListBoardTasksOutput struct {
	Body []*domain.Task
}

type CreateTaskInput struct {
	Body struct {
		BoardID     int64  `json:"board_id" doc:"Owning board ID"`
		AssigneeID  *int64 `json:"assignee_id,omitempty" doc:"Optional assignee user ID"`
		Title       string `json:"title" minLength:"1" maxLength:"100" doc:"Task title"`
		Description string `json:"description,omitempty" maxLength:"500" doc:"Task description"`
		Status      string `json:"status" enum:"TODO,IN_PROGRESS,DONE" doc:"Initial status"`
	}
}

type CreateTaskOutput struct {
	Body *domain.Task
}

type UpdateTaskInput struct {
	ID   int64 `path:"id" doc:"Task ID"`
	Body struct {
		AssigneeID  *int64 `json:"assignee_id,omitempty" doc:"Assignee user ID"`
		Title       string `json:"title" minLength:"1" maxLength:"100" doc:"Task title"`
		Description string `json:"description,omitempty" maxLength:"500" doc:"Task description"`
		Status      string `json:"status" enum:"TODO,IN_PROGRESS,DONE" doc:"Status"`
	}
}

type MoveTaskInput struct {
	ID   int64 `path:"id" doc:"Task ID"`
	Body struct {
		Status string `json:"status" enum:"TODO,IN_PROGRESS,DONE" doc:"Target status"`
	}
}

type DeleteTaskInput struct {
	ID int64 `path:"id" doc:"Task ID"`
}

func RegisterTaskRoutes(api huma.API, svc Kanban) {
	huma.Register(api, huma.Operation{
		OperationID: "list-board-tasks",
		Method:      http.MethodGet,
		Path:        "/boards/{id}/tasks",
		Summary:     "List a board's tasks",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *ListBoardTasksInput) (*ListBoardTasksOutput, error) {
		tasks, err := svc.GetTasksByBoard(ctx, input.ID)
		if err != nil {
			return nil, serviceError("failed to list tasks", err)
		}
		return &ListBoardTasksOutput{Body: tasks}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-task",
		Method:      http.MethodPost,
		Path:        "/tasks",
		Summary:     "Create a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *CreateTaskInput) (*CreateTaskOutput, error) {
		creatorID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		task, err := svc.CreateTask(ctx, input.Body.BoardID, creatorID, input.Body.AssigneeID,
			input.Body.Title, input.Body.Description, domain.TaskStatus(input.Body.Status))
		if err != nil {
			return nil, serviceError("failed to create task", err)
		}
		return &CreateTaskOutput{Body: task}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-task",
		Method:      http.MethodPut,
		Path:        "/tasks/{id}",
		Summary:     "Update a task's fields",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *UpdateTaskInput) (*struct{}, error) {
		err := svc.UpdateTask(ctx, input.ID, input.Body.AssigneeID,
			input.Body.Title, input.Body.Description, domain.TaskStatus(input.Body.Status))
		if err != nil {
			return nil, serviceError("failed to update task", err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "move-task",
		Method:      http.MethodPost,
		Path:        "/tasks/{id}/move",
		Summary:     "Move a task to another status",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *MoveTaskInput) (*struct{}, error) {
		if err := svc.MoveTask(ctx, input.ID, domain.TaskStatus(input.Body.Status)); err != nil {
			return nil, serviceError("failed to move task", err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-task",
		Method:      http.MethodDelete,
		Path:        "/tasks/{id}",
		Summary:     "Delete a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *DeleteTaskInput) (*struct{}, error) {
		if err := svc.DeleteTask(ctx, input.ID); err != nil {
			return nil, serviceError("failed to delete task", err)
		}
		return nil, nil
	})
}
