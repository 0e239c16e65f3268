package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexstream/ott-server-go/internal/bootstrap"
	"github.com/nexstream/ott-server-go/internal/http/routes"
	"github.com/nexstream/ott-server-go/pkg/cache"
	"github.com/nexstream/ott-server-go/pkg/config"
	"github.com/nexstream/ott-server-go/pkg/database"
	"github.com/nexstream/ott-server-go/pkg/jobs"
	"github.com/nexstream/ott-server-go/pkg/logger"
	"github.com/nexstream/ott-server-go/pkg/metrics"
	"github.com/nexstream/ott-server-go/pkg/middleware"
	"github.com/nexstream/ott-server-go/pkg/request"
	"github.com/nexstream/ott-server-go/pkg/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(ctx, cfg.Database, appLogger)
	if err != nil {
		appLogger.Error("database connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := database.Close(db, appLogger); err != nil {
			appLogger.Error("database close failed", slog.String("error", err.Error()))
		}
	}()

	if err := bootstrap.ApplyDatabaseMigrations(db, cfg, appLogger); err != nil {
		appLogger.Error("migrations failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis listing cache. With no address configured the client silently
	// degrades to no-op operations and listings hit the database directly.
	cacheClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		appLogger.Error("redis connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cacheClient.Close()

	// Object storage for thumbnails and video masters.
	var storageClient *storage.Client
	if cfg.Storage.Zone != "" {
		storageClient = storage.NewClient(
			cfg.Storage.Zone,
			cfg.Storage.APIKey,
			cfg.Storage.BaseURL,
			cfg.Storage.CDNURL,
		)
	}

	// Signed playback URLs. Without a security key the stream endpoint
	// redirects to the raw source.
	var signer *storage.Signer
	if cfg.Stream.SecurityKey != "" {
		signer = storage.NewSigner(
			cfg.Stream.SecurityKey,
			cfg.Stream.DeliveryURL,
			cfg.Stream.ExpiresIn,
		)
	}

	// Background sweep for lapsed entitlements. Status is also reconciled
	// lazily on read; the sweep keeps listings and reports from drifting.
	scheduler := jobs.NewScheduler(appLogger)
	scheduler.AddJob(jobs.NewEntitlementExpirationJob(db, appLogger), 6*time.Hour)
	scheduler.Start()
	defer scheduler.Stop()

	router := gin.New()

	router.Use(middleware.Recovery(appLogger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestID())                        // Add request IDs for tracing
	router.Use(middleware.Compression(middleware.BestSpeed))  // Compress responses (gzip)
	router.Use(middleware.RequestLogger(appLogger))           // Log all requests
	router.Use(middleware.SecurityHeaders())                  // Add security headers
	router.Use(middleware.CacheControl())                     // Set cache headers
	router.Use(middleware.RequestSizeLimit(10 * 1024 * 1024)) // 10MB limit
	router.Use(metrics.Middleware())                          // Collect Prometheus metrics
	router.Use(request.Handler(appLogger))                    // Request context handler

	// Rate limiting (100 requests per minute per IP)
	rateLimiter := middleware.NewRateLimiter(100, time.Minute)
	router.Use(rateLimiter.Middleware())

	routes.Register(router, cfg, db, appLogger, cacheClient, signer, storageClient)

	srv := &http.Server{
		Addr:              cfg.ServerAddress(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		appLogger.Info("server starting",
			slog.String("addr", cfg.ServerAddress()),
			slog.String("env", cfg.Env),
			slog.String("log_level", cfg.LogLevel),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server listen failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	appLogger.Info("server started successfully")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", slog.String("error", err.Error()))
	} else {
		appLogger.Info("server stopped gracefully")
	}
}
