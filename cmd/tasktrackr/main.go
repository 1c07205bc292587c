package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/tasktrackr/app/tasktrackr"
	"github.com/dmitrymomot/tasktrackr/core/config"
	"github.com/dmitrymomot/tasktrackr/core/logger"
	"github.com/dmitrymomot/tasktrackr/middleware"
)

func main() {
	var cfg tasktrackr.Config
	config.MustLoad(&cfg)

	envOpt := logger.WithDevelopment(cfg.AppName)
	if cfg.IsProduction() {
		envOpt = logger.WithProduction(cfg.AppName)
	}
	log := logger.New(
		envOpt,
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithContextExtractors(middleware.RequestIDExtractor()),
	)

	if err := run(cfg, log); err != nil {
		log.Error("tasktrackr stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(cfg tasktrackr.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storeOpts, closeStores, err := tasktrackr.OpenStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	app, err := tasktrackr.New(cfg, append(storeOpts, tasktrackr.WithLogger(log))...)
	if err != nil {
		return err
	}

	log.Info("starting tasktrackr",
		logger.Component("main"),
		slog.String("addr", cfg.Server.Addr),
		slog.String("credential_store", cfg.CredentialStore),
		slog.String("session_store", cfg.SessionStore),
	)

	return app.Run(ctx)
}
