// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/portfolio-go/internal/auth"
	"github.com/olegiv/portfolio-go/internal/config"
	"github.com/olegiv/portfolio-go/internal/handler/api"
	"github.com/olegiv/portfolio-go/internal/middleware"
	"github.com/olegiv/portfolio-go/internal/scheduler"
	"github.com/olegiv/portfolio-go/internal/service"
	"github.com/olegiv/portfolio-go/internal/store"
	"github.com/olegiv/portfolio-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = ""
	appBuildTime = ""
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "portfolio - personal portfolio backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_JWT_SECRET      JWT signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_DB_PATH         SQLite snapshot path (default: ./data/portfolio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SERVER_PORT     Server port (default: 3001)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_FRONTEND_URL    Allowed CORS origin (default: http://localhost:5173)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_UPLOADS_DIR     Upload storage directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_DO_SEED         Import demo content on first start (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{
			Version:   appVersion,
			GitCommit: appGitCommit,
			BuildTime: appBuildTime,
		}
		_, _ = fmt.Printf("portfolio %s\n", info)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Open the store: in-memory database restored from the snapshot file
	slog.Info("initializing database", "path", cfg.DBPath)
	st, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("error closing store", "error", err)
		}
	}()
	slog.Info("database ready")

	// Ensure an admin account and default settings exist
	if err := st.Seed(context.Background(), store.SeedParams{
		AdminUsername: cfg.AdminUsername,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		DemoData:      cfg.DoSeed,
	}); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	// Background snapshot safety flush
	sched := scheduler.New(st, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()
	slog.Info("scheduler started")

	if err := os.MkdirAll(cfg.UploadsDir, 0o750); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	tokens := auth.NewTokenManager([]byte(cfg.JWTSecret), cfg.JWTExpiry)
	media := service.NewMediaService(st, cfg.UploadsDir, cfg.UploadMaxSize)
	apiHandler := api.NewHandler(st, media, tokens, logger)

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(cfg.FrontendURL))

	r.Mount("/api", apiHandler.Routes())

	// Serve uploaded images
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
