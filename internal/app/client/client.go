package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/slog"

	"artargets/internal/app/client/config"
	"artargets/internal/domain/asset"
	"artargets/internal/domain/session"
	"artargets/internal/domain/target"
	"artargets/internal/domain/user"
	"artargets/internal/infrastructure/storage/memory"
	"artargets/internal/infrastructure/storage/postgres"
	"artargets/internal/infrastructure/storage/s3store"
	"artargets/internal/infrastructure/storage/sqlite"
	"artargets/internal/infrastructure/supabase"
)

type App struct {
	config *config.Config
	log    *slog.Logger

	Sessions *session.Manager
	Assets   *asset.Adapter
	Targets  *target.Service

	closers []io.Closer
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger, opts ...supabase.Option) (*App, error) {
	app := &App{
		config: cfg,
		log:    log,
	}

	// Локальное хранилище сессии (используем SQLite)
	var kv session.KV
	sqliteKV, err := sqlite.New(cfg.SessionPath)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, используем память", "error", err)
		kv = memory.NewKV()
	} else {
		kv = sqliteKV
		app.closers = append(app.closers, sqliteKV)
	}

	var sessions *session.Manager
	tokenSource := func() string {
		if sessions == nil {
			return ""
		}
		return sessions.AccessToken()
	}

	opts = append(opts, supabase.WithTokenSource(tokenSource))
	api := supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.HTTPTimeout, log, opts...)

	sessions = session.NewManager(supabase.NewAuthClient(api), kv, cfg.SessionKey, log)

	records, err := app.recordStore(ctx, api)
	if err != nil {
		app.Close()
		return nil, err
	}

	objects, err := app.objectStore(ctx, api)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Sessions = sessions
	app.Assets = asset.NewAdapter(records, objects, asset.NewURLBuilder(cfg.SupabaseURL), cfg.Bucket, log)
	app.Targets = target.NewService(app.Assets, log)

	return app, nil
}

func (a *App) recordStore(ctx context.Context, api *supabase.Client) (target.RecordStore, error) {
	switch a.config.RecordDriver {
	case config.DriverPostgres:
		storage, err := postgres.New(ctx, a.config.DatabaseURI)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения к Postgres: %w", err)
		}
		a.closers = append(a.closers, storage)
		return postgres.NewTargetRepository(storage.Pool(), a.config.Table, a.log), nil
	default:
		return supabase.NewRecordStore(api, a.config.Table), nil
	}
}

func (a *App) objectStore(ctx context.Context, api *supabase.Client) (asset.ObjectStore, error) {
	switch a.config.ObjectDriver {
	case config.DriverS3:
		store, err := s3store.New(ctx, a.config.S3Endpoint, a.config.S3Region, a.config.S3AccessKey, a.config.S3SecretKey, a.log)
		if err != nil {
			return nil, fmt.Errorf("ошибка инициализации S3: %w", err)
		}
		return store, nil
	default:
		return supabase.NewObjectStore(api), nil
	}
}

func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) Logger() *slog.Logger {
	return a.log
}

func (a *App) Home(ui UI) *Home {
	return NewHome(a.Sessions, a.Targets, a.Assets, ui, a.log)
}

func (a *App) Auth(ui UI) *Auth {
	return NewAuth(a.Sessions, user.NewCredentialsValidator(), ui, a.log)
}

func (a *App) Viewer() *Viewer {
	return NewViewer(a.Sessions, a.Targets, a.log)
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
