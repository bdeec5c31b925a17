// Package main is the entry point for the Whitebook dashboard server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dingeldeiner/whitebook/internal/cache"
	"github.com/dingeldeiner/whitebook/internal/config"
	"github.com/dingeldeiner/whitebook/internal/domain"
	"github.com/dingeldeiner/whitebook/internal/handler"
	"github.com/dingeldeiner/whitebook/internal/middleware"
	"github.com/dingeldeiner/whitebook/internal/repo"
	"github.com/dingeldeiner/whitebook/internal/service"
)

const serviceName = "whitebook"

func main() {
	// --- Config -----------------------------------------------------------
	// A .env file is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Store ------------------------------------------------------------
	// The repo opens one connection per load; nothing is dialled here.
	listings, err := repo.NewListingRepo(cfg.DBDriver, cfg.DSN())
	if err != nil {
		slog.Error("failed to configure listings store", "error", err)
		os.Exit(1)
	}
	slog.Info("listings store configured", "driver", cfg.DBDriver, "host", cfg.DBHost, "db", cfg.DBName)

	// --- Services ---------------------------------------------------------
	snapshots := cache.New[domain.Snapshot](cache.WithTTL(cfg.CacheTTL))
	loader := service.NewListingService(listings, snapshots, logger)
	dashboards := service.NewDashboardService(loader, logger)
	exports := service.NewExportService(loader)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → RateLimit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewRateLimitHandler(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.Mount("/", handler.Handler(handler.NewServer(dashboards, exports, logger)))

	// --- HTTP Server ------------------------------------------------------
	// A cold load plus three chart renders can take a while, so the write
	// timeout is generous.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(r, serviceName),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// SIGHUP drops every cached snapshot so the next request reloads the store.
	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	go func() {
		for range reload {
			loader.Invalidate()
			slog.Info("snapshot cache invalidated")
		}
	}()

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
