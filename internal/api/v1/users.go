package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/plannyhq/planny/internal/domain"
)

type ListUsersOutput struct {
	Body []*domain.User
}

func RegisterUserRoutes(api huma.API, svc Kanban) {
	huma.Register(api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        "/users",
		Summary:     "List all users",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, _ *struct{}) (*ListUsersOutput, error) {
		users, err := svc.GetUsers(ctx)
		if err != nil {
			return nil, serviceError("failed to list users", err)
		}
		return &ListUsersOutput{Body: users}, nil
	})
}
