package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/plannyhq/planny/internal/domain"
	"github.com/plannyhq/planny/internal/server/middleware"
)

type ChatHistoryOutput struct {
	Body []*domain.ChatMessage
}

type SendMessageInput struct {
	Body struct {
		Content string `json:"content" minLength:"1" doc:"Message text"`
	}
}

type SendMessageOutput struct {
	Body *domain.ChatMessage
}

func RegisterChatRoutes(api huma.API, svc Kanban) {
	huma.Register(api, huma.Operation{
		OperationID: "chat-history",
		Method:      http.MethodGet,
		Path:        "/chat",
		Summary:     "Fetch recent chat history (ascending by time)",
		Tags:        []string{"Chat"},
	}, func(ctx context.Context, _ *struct{}) (*ChatHistoryOutput, error) {
		messages, err := svc.GetChatHistory(ctx)
		if err != nil {
			return nil, serviceError("failed to fetch chat history", err)
		}
		return &ChatHistoryOutput{Body: messages}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "send-message",
		Method:      http.MethodPost,
		Path:        "/chat",
		Summary:     "Send a chat message",
		Tags:        []string{"Chat"},
	}, func(ctx context.Context, input *SendMessageInput) (*SendMessageOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		message, err := svc.SendMessage(ctx, userID, input.Body.Content)
		if err != nil {
			return nil, serviceError("failed to send message", err)
		}
		return &SendMessageOutput{Body: message}, nil
	})
}
