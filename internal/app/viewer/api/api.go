// Локальный API AR-просмотра:
//GET /api/v1/health        # Состояние и наличие сессии
//GET /api/v1/targets       # Пользователь и его таргеты (?refresh=true перечитывает)
//GET /api/v1/targets/{id}  # Один таргет

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"

	healthAPI "artargets/internal/app/viewer/api/http/health"
	"artargets/internal/app/viewer/api/http/middleware"
	"artargets/internal/app/viewer/api/http/middleware/logger"
	"artargets/internal/app/viewer/api/http/middleware/session"
	targetsAPI "artargets/internal/app/viewer/api/http/targets"
)

type Handlers struct {
	Health  *healthAPI.Handler
	Targets *targetsAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(viewer targetsAPI.Viewer, sessions healthAPI.SessionSource, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.Recoverer)

	config := huma.DefaultConfig("AR Targets Viewer API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(viewer, sessions, log)
	h.Health.SetupRoutes(API)
	h.Targets.SetupRoutes(API)

	return mux
}

func handlers(viewer targetsAPI.Viewer, sessions healthAPI.SessionSource, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	sessionMW := session.New(sessions, log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(sessions, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	public := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(sessionMW.Middleware())
	targetsHandler := targetsAPI.NewHandler(viewer, sessions, log, public, middlewares.GetAllAndClear())

	return &Handlers{
		Health:  healthHandler,
		Targets: targetsHandler,
	}
}
