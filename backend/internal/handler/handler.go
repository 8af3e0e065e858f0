package handler

import (
	"context"

	"github.com/simplechat/simplechat/backend/internal/service"
	"github.com/simplechat/simplechat/shared/config"
)

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Renderer turns message text into sanitized html.
type Renderer interface {
	Render(text string) string
}

type Handler struct {
	thread   service.ThreadService
	message  service.MessageService
	renderer Renderer
	health   HealthChecker
	cfg      *config.Config
}

func New(thread service.ThreadService, message service.MessageService, renderer Renderer, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		thread:   thread,
		message:  message,
		renderer: renderer,
		health:   health,
		cfg:      cfg,
	}
}
