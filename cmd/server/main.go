// Package main is the entry point for the citygraph server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookingmx/citygraph/internal/api"
	"github.com/bookingmx/citygraph/internal/api/handlers"
	"github.com/bookingmx/citygraph/internal/catalog"
	"github.com/bookingmx/citygraph/internal/config"
)

func main() {
	cfg := config.Load()

	slog.SetDefault(newLogger(cfg))
	for _, w := range cfg.Warnings {
		slog.Warn("configuration warning", "error", w)
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	cities := catalog.New()
	if err := cities.Load(cfg.CitiesFile); err != nil {
		slog.Error("failed to load city catalog", "file", cfg.CitiesFile, "error", err)
		os.Exit(1)
	}
	slog.Info("city catalog loaded", "file", cfg.CitiesFile, "cities", cities.Count())

	results := handlers.NewNearbyCache(cfg.CacheTTL)
	defer results.Close()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(cfg, cities, results),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("citygraph server starting",
			"port", cfg.Port,
			"env", cfg.Env,
			"url", "http://localhost:"+cfg.Port,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
