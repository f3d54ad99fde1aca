package target

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	GetTargets(ctx context.Context, userID string) ([]Target, error)
	AddTarget(ctx context.Context, t Target) (Target, error)
	UpdateTarget(ctx context.Context, id string, patch Patch) (Target, error)
	DeleteTarget(ctx context.Context, id string) error
	DeleteTargetIfVersion(ctx context.Context, id string, version int) error
}

// Service пробрасывает CRUD по таргетам в Store, ошибки не глотает.
type Service struct {
	store Store
	log   *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With("component", "target_service"),
	}
}

func (s *Service) GetTargets(ctx context.Context, userID string) ([]Target, error) {
	return s.store.ListTargets(ctx, userID)
}

func (s *Service) AddTarget(ctx context.Context, t Target) (Target, error) {
	if t.UserID == "" {
		return Target{}, ErrMissingOwner
	}
	if err := t.Type.Validate(); err != nil {
		return Target{}, err
	}

	s.log.Debug("adding target", "user_id", t.UserID, "name", t.Name, "type", t.Type)

	return s.store.SaveTarget(ctx, t)
}

func (s *Service) UpdateTarget(ctx context.Context, id string, patch Patch) (Target, error) {
	if id == "" {
		return Target{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	if err := patch.Validate(); err != nil {
		return Target{}, err
	}

	return s.store.UpdateTarget(ctx, id, patch)
}

func (s *Service) DeleteTarget(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrNotFound)
	}
	return s.store.DeleteTarget(ctx, id)
}

func (s *Service) DeleteTargetIfVersion(ctx context.Context, id string, version int) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrNotFound)
	}
	return s.store.DeleteTargetIfVersion(ctx, id, version)
}
