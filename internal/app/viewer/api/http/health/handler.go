package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"artargets/internal/domain/session"
)

// SessionSource отдаёт текущую сессию или nil.
type SessionSource interface {
	Current() *session.Session
}

type Handler struct {
	sessions   SessionSource
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(sessions SessionSource, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		sessions:   sessions,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(_ context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	return &Output{
		Body: Response{
			Status:   "OK",
			LoggedIn: h.sessions.Current() != nil,
		},
	}, nil
}
