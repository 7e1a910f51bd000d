package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lighter/common/internal/app"
	"github.com/lighter/common/internal/pagination"
	"github.com/lighter/common/internal/shared/config"
	"github.com/lighter/common/internal/shared/database"
	"github.com/lighter/common/internal/shared/logger"
	"github.com/lighter/common/migrations"
)

func main() {
	// Bootstrap logger until the configured one is wired.
	boot := logger.New(&logger.Config{Level: "info", Format: "json", Output: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		boot.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	if err := pagination.Configure(cfg.Pagination); err != nil {
		boot.Error("invalid pagination config", logger.Err(err))
		os.Exit(1)
	}

	application, cleanup, err := app.InitializeApp(cfg)
	if err != nil {
		boot.Error("failed to initialize application", logger.Err(err))
		os.Exit(1)
	}
	defer cleanup()

	zl := application.ZapLogger

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database.URL(), migrations.FS, zl); err != nil {
			zl.Error("failed to migrate database", zap.Error(err))
			cleanup()
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      application.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zl.Info("starting server", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited")
}
