package client

import (
	"context"
	"sync"

	"golang.org/x/exp/slog"

	"artargets/internal/domain/session"
	"artargets/internal/domain/target"
)

// Viewer - AR-просмотр, только чтение.
type Viewer struct {
	sessions Sessions
	targets  target.Servicer
	log      *slog.Logger

	mu      sync.RWMutex
	current *session.Session
	list    []target.Target
}

func NewViewer(sessions Sessions, targets target.Servicer, log *slog.Logger) *Viewer {
	return &Viewer{
		sessions: sessions,
		targets:  targets,
		log:      log.With("component", "viewer"),
		list:     []target.Target{},
	}
}

// Init читает сессию и, если она есть, таргеты пользователя.
func (v *Viewer) Init(ctx context.Context) error {
	s := v.sessions.Current()
	if s == nil {
		v.set(nil, nil)
		return nil
	}

	list, err := v.targets.GetTargets(ctx, s.UID)
	if err != nil {
		v.log.Error("failed to load targets", "user_id", s.UID, "error", err)
		v.set(s, nil)
		return err
	}

	v.set(s, list)
	return nil
}

func (v *Viewer) Session() *session.Session {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

func (v *Viewer) Targets() []target.Target {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]target.Target, len(v.list))
	copy(out, v.list)
	return out
}

func (v *Viewer) set(s *session.Session, list []target.Target) {
	if list == nil {
		list = []target.Target{}
	}
	v.mu.Lock()
	v.current = s
	v.list = list
	v.mu.Unlock()
}
