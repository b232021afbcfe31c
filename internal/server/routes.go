package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/plannyhq/planny/internal/api/v1"
	"github.com/plannyhq/planny/internal/api/ws"
	"github.com/plannyhq/planny/internal/auth"
	"github.com/plannyhq/planny/internal/kanban"
)

func registerAuthRoutes(api huma.API, authSvc *auth.Service) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerAPIRoutes(api huma.API, svc *kanban.Service) {
	v1.RegisterUserRoutes(api, svc)
	v1.RegisterBoardRoutes(api, svc)
	v1.RegisterTaskRoutes(api, svc)
	v1.RegisterChatRoutes(api, svc)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/events", hub.ServeEvents)
}
