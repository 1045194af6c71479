// Package app assembles the dropspace core: configuration, logging, the
// remote collaborators, the local cache slot and the services bundle.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	sc "github.com/eshmelev/dropspace/internal/config"
	"github.com/eshmelev/dropspace/internal/localstore"
	"github.com/eshmelev/dropspace/internal/logging"
	"github.com/eshmelev/dropspace/internal/notify"
	"github.com/eshmelev/dropspace/internal/remote/auth"
	"github.com/eshmelev/dropspace/internal/remote/docstore"
	"github.com/eshmelev/dropspace/internal/remote/migrations"
	"github.com/eshmelev/dropspace/internal/remote/objectstore"
	"github.com/eshmelev/dropspace/internal/services"
)

const pingTimeout = 5 * time.Second

// App is the assembled application.
type App struct {
	Config   *sc.Config
	Log      logging.Logger
	Services *services.Services
	Slot     *localstore.Slot

	remoteDB *sql.DB
	localDB  *sql.DB
}

// New builds the application from its configuration, opening both databases
// and applying pending migrations.
func New(ctx context.Context, cfg *sc.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr)

	remoteDB, err := openRemoteDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("remote database: %w", err)
	}

	localDB, err := localstore.InitDatabase(ctx, cfg.LocalDBPath)
	if err != nil {
		_ = remoteDB.Close()
		return nil, fmt.Errorf("local cache database: %w", err)
	}
	slot := localstore.NewSlot(localstore.NewSQLiteStore(localDB))

	svcs := services.New(
		cfg,
		auth.NewPostgresService(remoteDB, cfg, log),
		objectstore.NewS3Store(cfg, log),
		docstore.NewPostgresStore(remoteDB),
		slot,
		services.NewMemoryNavigator(services.RouteDashboard),
		notify.NewLogNotifier(log),
		log,
	)

	return &App{
		Config:   cfg,
		Log:      log,
		Services: svcs,
		Slot:     slot,
		remoteDB: remoteDB,
		localDB:  localDB,
	}, nil
}

func openRemoteDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// RunWatcher blocks watching the staging directory, or returns immediately
// when no directory is configured.
func (a *App) RunWatcher(ctx context.Context) error {
	if a.Config.WatchDir == "" {
		return nil
	}
	w := services.NewWatcher(a.Services.Staging, a.Config.WatchDir, a.Config.WatchPattern, a.Log)
	return w.Run(ctx)
}

// Close releases both database handles.
func (a *App) Close() error {
	var first error
	if err := a.localDB.Close(); err != nil {
		first = err
	}
	if err := a.remoteDB.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
