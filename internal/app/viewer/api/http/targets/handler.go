package targets

import (
	"context"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	sessionMW "artargets/internal/app/viewer/api/http/middleware/session"
	"artargets/internal/domain/session"
	"artargets/internal/domain/target"
)

// Viewer - контроллер AR-просмотра.
type Viewer interface {
	Init(ctx context.Context) error
	Session() *session.Session
	Targets() []target.Target
}

type Handler struct {
	viewer     Viewer
	sessions   sessionMW.Source
	log        *slog.Logger
	middleware huma.Middlewares
	protected  huma.Middlewares

	mu     sync.Mutex
	loaded bool
}

// NewHandler: mws применяются к списку, protected - к операциям, требующим сессию.
func NewHandler(viewer Viewer, sessions sessionMW.Source, log *slog.Logger, mws, protected huma.Middlewares) *Handler {
	return &Handler{
		viewer:     viewer,
		sessions:   sessions,
		log:        log,
		middleware: mws,
		protected:  protected,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.findOp(), h.find)
}

// load вызывает Init до первого успеха, при каждом refresh и при смене сессии.
func (h *Handler) load(ctx context.Context, refresh bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.loaded && !refresh && sameUser(h.sessions.Current(), h.viewer.Session()) {
		return nil
	}
	if err := h.viewer.Init(ctx); err != nil {
		return err
	}
	h.loaded = true
	return nil
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	if err := h.load(ctx, input.Refresh); err != nil {
		h.log.Error("failed to load targets", "error", err)
		return nil, huma.Error502BadGateway("failed to load targets", err)
	}

	out := &listOutput{
		Body: listResponse{Targets: []targetResponse{}},
	}
	if s := h.viewer.Session(); s != nil {
		out.Body.User = &userResponse{UID: s.UID, Email: s.Email}
	}
	for _, t := range h.viewer.Targets() {
		out.Body.Targets = append(out.Body.Targets, toResponse(t))
	}

	return out, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	if err := h.load(ctx, false); err != nil {
		h.log.Error("failed to load targets", "error", err)
		return nil, huma.Error502BadGateway("failed to load targets", err)
	}

	userID, ok := sessionMW.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	for _, t := range h.viewer.Targets() {
		if t.ID == input.ID && t.UserID == userID {
			return &findOutput{Body: toResponse(t)}, nil
		}
	}

	return nil, huma.Error404NotFound("target not found")
}

func sameUser(a, b *session.Session) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.UID == b.UID
}
