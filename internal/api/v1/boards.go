package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/plannyhq/planny/internal/domain"
)

type ListBoardsOutput struct {
	Body []*domain.Board
}

type CreateBoardInput struct {
	Body struct {
		Name string `json:"name" minLength:"1" doc:"Board name (unique)"`
	}
}

type CreateBoardOutput struct {
	Body *domain.Board
}

type UpdateBoardInput struct {
	ID   int64 `path:"id" doc:"Board ID"`
	Body struct {
		Name string `json:"name" minLength:"1" doc:"New board name (unique)"`
	}
}

type DeleteBoardInput struct {
	ID int64 `path:"id" doc:"Board ID"`
}

func RegisterBoardRoutes(api huma.API, svc Kanban) {
	huma.Register(api, huma.Operation{
		OperationID: "list-boards",
		Method:      http.MethodGet,
		Path:        "/boards",
		Summary:     "List all boards",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, _ *struct{}) (*ListBoardsOutput, error) {
		boards, err := svc.GetBoards(ctx)
		if err != nil {
			return nil, serviceError("failed to list boards", err)
		}
		return &ListBoardsOutput{Body: boards}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-board",
		Method:      http.MethodPost,
		Path:        "/boards",
		Summary:     "Create a board",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *CreateBoardInput) (*CreateBoardOutput, error) {
		board, err := svc.CreateBoard(ctx, input.Body.Name)
		if err != nil {
			return nil, serviceError("failed to create board", err)
		}
		return &CreateBoardOutput{Body: board}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-board",
		Method:      http.MethodPut,
		Path:        "/boards/{id}",
		Summary:     "Rename a board",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *UpdateBoardInput) (*struct{}, error) {
		if err := svc.UpdateBoard(ctx, input.ID, input.Body.Name); err != nil {
			return nil, serviceError("failed to update board", err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-board",
		Method:      http.MethodDelete,
		Path:        "/boards/{id}",
		Summary:     "Delete a board and its tasks",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *DeleteBoardInput) (*struct{}, error) {
		if err := svc.DeleteBoard(ctx, input.ID); err != nil {
			return nil, serviceError("failed to delete board", err)
		}
		return nil, nil
	})
}
