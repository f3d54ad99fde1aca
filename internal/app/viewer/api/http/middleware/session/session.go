package session

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	domain "artargets/internal/domain/session"
)

// Source отдаёт текущую локальную сессию или nil.
type Source interface {
	Current() *domain.Session
}

// Session пропускает запрос дальше, только если в клиенте есть активная сессия.
type Session struct {
	sessions Source
	log      *slog.Logger
}

func New(sessions Source, log *slog.Logger) *Session {
	return &Session{
		sessions: sessions,
		log:      log.With("component", "session_middleware"),
	}
}

type contextKey string

const UserIDKey contextKey = "userID"

// GetUserID возвращает uid, положенный мидлварью в контекст.
func GetUserID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UserIDKey).(string)
	return uid, ok && uid != ""
}

func (s *Session) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		current := s.sessions.Current()
		if current == nil {
			s.log.Debug("request without session", "path", ctx.URL().Path)
			ctx.SetStatus(http.StatusUnauthorized)
			ctx.SetHeader("Content-Type", "application/json")

			if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
				"error": "Unauthorized",
			}); err != nil {
				s.log.Error("failed to encode response", "error", err)
			}
			return
		}

		newCtx := context.WithValue(ctx.Context(), UserIDKey, current.UID)
		next(huma.WithContext(ctx, newCtx))
	}
}
