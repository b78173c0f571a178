// Package main is the entry point for the Devfolio server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devfolio/internal/catalog"
	"devfolio/internal/config"
	"devfolio/internal/database"
	"devfolio/internal/handlers"
	"devfolio/internal/middleware"
	"devfolio/internal/publish"
	"devfolio/internal/render"
	"devfolio/internal/router"
	"devfolio/internal/session"
	"devfolio/internal/storage"
	"devfolio/internal/store"
)

func main() {
	// Structured logger. Text output keeps local logs readable.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey, which backs admin sessions.
	valkeyAddr := net.JoinHostPort(cfg.ValkeyHost, cfg.ValkeyPort)
	valkeyClient, err := session.Connect(context.Background(), valkeyAddr, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark session cookies as Secure.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Initialize the HTML template renderer.
	renderer, err := render.New(cfg.SiteName, cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	roleStore := store.NewRoleStore(db)
	projectStore := store.NewProjectStore(db)
	categoryStore := store.NewCategoryStore(db)
	imageStore := store.NewProjectImageStore(db)
	contactStore := store.NewContactStore(db)

	// Connect to S3-compatible object storage. Optional: the site works
	// without it, with image uploads disabled.
	var storageClient *storage.Client
	if cfg.HasS3() {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"bucket", cfg.S3Bucket,
		)
	} else {
		slog.Warn("s3 storage not configured, image uploads disabled")
	}

	// The coordinator sequences multi-step admin mutations. A typed nil
	// client must not reach the interface field, so assign conditionally.
	var uploader publish.Uploader
	if storageClient != nil {
		uploader = storageClient
	}
	coordinator := publish.NewCoordinator(projectStore, imageStore, categoryStore, uploader, logger)

	// The catalog loader fetches projects and categories for public pages.
	loader := catalog.NewLoader(projectStore, categoryStore)

	// Rate limiter for the login and contact form endpoints.
	limiter := middleware.NewRateLimiter(10, time.Minute)
	defer limiter.Stop()

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(renderer, projectStore, categoryStore, imageStore, contactStore, coordinator)
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore, cfg.SiteName)
	publicHandlers := handlers.NewPublic(renderer, loader, projectStore, imageStore, contactStore, cfg.GalleryPageSize)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, roleStore, adminHandlers, authHandlers, publicHandlers, limiter)

	// Create the HTTP server with sensible timeouts. ReadTimeout is
	// generous because project image uploads arrive as multipart bodies.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
