package viewer

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"artargets/internal/app/viewer/api"
	healthAPI "artargets/internal/app/viewer/api/http/health"
	targetsAPI "artargets/internal/app/viewer/api/http/targets"
)

const shutdownTimeout = 5 * time.Second

// Server отдаёт API просмотра до отмены контекста.
type Server struct {
	srv *http.Server
	log *slog.Logger
}

func NewServer(addr string, viewer targetsAPI.Viewer, sessions healthAPI.SessionSource, log *slog.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           api.New(viewer, sessions, log),
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log.With("component", "viewer_server"),
	}
}

func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run слушает addr и корректно останавливается при отмене ctx.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("viewer started", "addr", ln.Addr().String())
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down viewer")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	s.log.Info("viewer stopped")
	return nil
}
