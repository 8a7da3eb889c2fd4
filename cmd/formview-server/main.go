package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-formview/internal/config"
	"github.com/goliatone/go-formview/internal/logging"
	"github.com/goliatone/go-formview/internal/server"
	"github.com/goliatone/go-formview/pkg/formview"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, !cfg.IsDevelopment())
	slog.SetDefault(logger)

	labels := formview.DefaultLabels()
	if cfg.LabelsFile != "" {
		labels, err = formview.LoadLabels(cfg.LabelsFile)
		if err != nil {
			return fmt.Errorf("loading labels: %w", err)
		}
		slog.Info("labels loaded", "path", cfg.LabelsFile)
	}

	var csrfKey []byte
	if cfg.SecretKey != "" {
		csrfKey = []byte(cfg.SecretKey)
	}

	srv, err := server.New(server.Options{
		Labels:          labels,
		Theme:           server.BrandTheme(cfg.ThemeBrand),
		SessionLifetime: cfg.SessionLifetime,
		Secure:          !cfg.IsDevelopment(),
		TrustedOrigins:  cfg.TrustedOrigins,
		CSRFKey:         csrfKey,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           srv.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
