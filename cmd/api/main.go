package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"modelbench/internal"
	"modelbench/internal/config"
	"modelbench/internal/container"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Debug("no .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		internal.DefaultLogger.Error("configuration loading failed", "error", err)
		os.Exit(1)
	}

	level, _ := internal.ParseLogLevel(cfg.Log.Level)
	logger := internal.NewLogger(level, cfg.Log.Format, os.Stderr)

	c, err := container.New(cfg, logger)
	if err != nil {
		logger.Error("container initialization failed", "error", err)
		os.Exit(1)
	}
	server := c.Server()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(":" + cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}
		logger.Info("server stopped")
	}
}
