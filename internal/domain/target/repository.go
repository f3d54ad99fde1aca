package target

import "context"

// Store - хранилище записей о таргетах. Реализуется адаптером хранилища ассетов.
type Store interface {
	ListTargets(ctx context.Context, userID string) ([]Target, error)
	SaveTarget(ctx context.Context, t Target) (Target, error)
	UpdateTarget(ctx context.Context, id string, patch Patch) (Target, error)
	DeleteTarget(ctx context.Context, id string) error
	DeleteTargetIfVersion(ctx context.Context, id string, version int) error
}

// RecordStore - удалённая таблица таргетов (PostgREST, Postgres, память).
type RecordStore interface {
	List(ctx context.Context, userID string) ([]Target, error)
	Insert(ctx context.Context, t Target) (Target, error)
	Update(ctx context.Context, id string, patch Patch) (Target, error)
	Delete(ctx context.Context, id string, expectedVersion *int) error
}
