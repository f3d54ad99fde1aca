package asset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"artargets/internal/domain/target"
)

// Adapter переводит операции над таргетами и файлами в вызовы удалённого хранилища.
type Adapter struct {
	records target.RecordStore
	objects ObjectStore
	urls    URLBuilder
	bucket  string
	now     func() time.Time
	log     *slog.Logger
}

type Option func(*Adapter)

// WithClock подменяет источник времени для путей загрузки.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		a.now = now
	}
}

func NewAdapter(records target.RecordStore, objects ObjectStore, urls URLBuilder, bucket string, log *slog.Logger, opts ...Option) *Adapter {
	a := &Adapter{
		records: records,
		objects: objects,
		urls:    urls,
		bucket:  bucket,
		now:     time.Now,
		log:     log.With("component", "asset_adapter"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ListTargets возвращает таргеты владельца. Пустой userID - пустой список без запроса.
func (a *Adapter) ListTargets(ctx context.Context, userID string) ([]target.Target, error) {
	if userID == "" {
		return []target.Target{}, nil
	}

	targets, err := a.records.List(ctx, userID)
	if err != nil {
		a.log.Error("failed to list targets", "user_id", userID, "error", err)
		return nil, err
	}
	if targets == nil {
		targets = []target.Target{}
	}

	return targets, nil
}

func (a *Adapter) UploadImage(ctx context.Context, userID string, f File) (string, error) {
	return a.upload(ctx, userID, f)
}

// UploadFile - то же, что UploadImage, для файлов любого типа.
func (a *Adapter) UploadFile(ctx context.Context, userID string, f File) (string, error) {
	if f.ContentType == "" {
		f.ContentType = DefaultContentType
	}
	return a.upload(ctx, userID, f)
}

func (a *Adapter) upload(ctx context.Context, userID string, f File) (string, error) {
	if userID == "" {
		return "", target.ErrMissingOwner
	}
	if f.Name == "" {
		return "", errors.New("file name is empty")
	}

	path := ObjectPath(userID, a.now(), f.Name)

	a.log.Debug("uploading object", "bucket", a.bucket, "path", path, "content_type", f.ContentType)

	stored, err := a.objects.Put(ctx, a.bucket, path, f, true)
	if err != nil {
		a.log.Error("upload failed", "bucket", a.bucket, "path", path, "error", err)
		return "", err
	}
	if stored == "" {
		stored = path
	}

	return a.urls.PublicURL(a.bucket, stored), nil
}

// DeleteImage удаляет объект по публичному адресу.
func (a *Adapter) DeleteImage(ctx context.Context, publicURL string) error {
	bucket, path, err := a.urls.Parse(publicURL)
	if err != nil {
		return err
	}

	if err := a.objects.Remove(ctx, bucket, path); err != nil {
		return fmt.Errorf("remove %s/%s: %w", bucket, path, err)
	}

	a.log.Debug("object removed", "bucket", bucket, "path", path)
	return nil
}

func (a *Adapter) SaveTarget(ctx context.Context, t target.Target) (target.Target, error) {
	return a.records.Insert(ctx, t)
}

func (a *Adapter) UpdateTarget(ctx context.Context, id string, patch target.Patch) (target.Target, error) {
	return a.records.Update(ctx, id, patch)
}

func (a *Adapter) DeleteTarget(ctx context.Context, id string) error {
	return a.records.Delete(ctx, id, nil)
}

func (a *Adapter) DeleteTargetIfVersion(ctx context.Context, id string, version int) error {
	return a.records.Delete(ctx, id, &version)
}

func (a *Adapter) PublicURL(path string) string {
	return a.urls.PublicURL(a.bucket, path)
}

func (a *Adapter) ParsePublicURL(publicURL string) (string, string, error) {
	return a.urls.Parse(publicURL)
}
