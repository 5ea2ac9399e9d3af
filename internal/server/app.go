// Package server initializes and runs the Streakkeeper API server.
// It connects storage, wires the services, handles graceful shutdown
// and starts the HTTP endpoint.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/streakkeeper/internal/logging"
	"github.com/dmitrijs2005/streakkeeper/internal/server/config"
	"github.com/dmitrijs2005/streakkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/streakkeeper/internal/server/services"
	"github.com/dmitrijs2005/streakkeeper/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  *storage.Store
	api    *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	jsonLogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(jsonLogger)

	store, err := storage.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(store.DB, store.Users, store.Invites, cfg)
	ts := services.NewTaskService(store.DB, store.Tasks, store.Users)
	is := services.NewInviteService(store.Invites)
	as := services.NewAvatarService(store.Users, cfg)

	api := httpapi.NewServer(cfg, logger, us, ts, is, as)

	return &App{config: cfg, logger: logger, store: store, api: api}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.api.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
