// Package server wires configuration, the storage backend and the HTTP
// server together and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lovelab-app/lovelab/internal/logging"
	"github.com/lovelab-app/lovelab/internal/server/auth"
	"github.com/lovelab-app/lovelab/internal/server/config"
	"github.com/lovelab-app/lovelab/internal/server/httpapi"
	"github.com/lovelab-app/lovelab/internal/server/links"
	"github.com/lovelab-app/lovelab/internal/server/media"
	"github.com/lovelab-app/lovelab/internal/server/storage"
	"github.com/lovelab-app/lovelab/internal/server/suggestions"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  storage.Store
	http   *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	linkSvc := links.NewService(store, cfg.LinkTTL, cfg.StatsFallbackCount, logger)
	sugSvc := suggestions.NewService(store, logger)
	authMgr := auth.NewManager([]byte(cfg.SecretKey), cfg.AdminTokenValidity, cfg.AdminPassword)
	mediaSvc := media.NewService(media.Settings{
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		BaseEndpoint: cfg.S3BaseEndpoint,
	})

	httpServer := httpapi.NewServer(cfg.EndpointAddr, logger, linkSvc, sugSvc, authMgr, mediaSvc)

	return &App{config: cfg, logger: logger, store: store, http: httpServer}, nil
}

// openStore selects the backend from configuration: redis, then postgres,
// then badger. With none configured the app runs without persistence and
// saves degrade to embedded-token links on the client side.
func openStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (storage.Store, error) {
	switch {
	case cfg.RedisURL != "":
		logger.Info(ctx, "using redis store")
		return storage.NewRedisStore(cfg.RedisURL, cfg.Namespace, logger)
	case cfg.DatabaseDSN != "":
		logger.Info(ctx, "using postgres store")
		return storage.NewPostgresStore(ctx, cfg.DatabaseDSN)
	case cfg.BadgerPath != "":
		logger.Info(ctx, "using badger store", "path", cfg.BadgerPath)
		return storage.NewBadgerStore(cfg.BadgerPath, cfg.Namespace, logger)
	default:
		logger.Warn(ctx, "no store configured, link saving disabled")
		return nil, nil
	}
}

func (app *App) initSignalHandler(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancel()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)
	app.initSignalHandler(cancel)

	err := app.http.Run(ctx)

	if app.store != nil {
		if cerr := app.store.Close(); cerr != nil {
			app.logger.Error(ctx, "store close error", "error", cerr.Error())
		}
	}
	return err
}
