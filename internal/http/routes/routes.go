package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/auth"
	"github.com/nexstream/ott-server-go/internal/features/category"
	"github.com/nexstream/ott-server-go/internal/features/content"
	"github.com/nexstream/ott-server-go/internal/features/episode"
	"github.com/nexstream/ott-server-go/internal/features/payment"
	"github.com/nexstream/ott-server-go/internal/features/plan"
	"github.com/nexstream/ott-server-go/internal/features/starring"
	"github.com/nexstream/ott-server-go/internal/features/subscription"
	"github.com/nexstream/ott-server-go/internal/features/user"
	"github.com/nexstream/ott-server-go/internal/features/watchlist"
	"github.com/nexstream/ott-server-go/internal/middleware"
	"github.com/nexstream/ott-server-go/pkg/cache"
	"github.com/nexstream/ott-server-go/pkg/config"
	"github.com/nexstream/ott-server-go/pkg/health"
	"github.com/nexstream/ott-server-go/pkg/storage"
)

// Register wires all feature routes onto the engine.
func Register(engine *gin.Engine, cfg *config.Config, db *gorm.DB, logger *slog.Logger, cacheClient cache.Client, signer *storage.Signer, storageClient *storage.Client) {
	// Health check endpoints (no /api prefix for Kubernetes probes)
	healthHandler := health.NewHandler(db, cacheClient, logger)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/version", healthHandler.Version)

	// Metrics endpoint for Prometheus
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Database stats endpoint (protected in production)
	if !cfg.IsProduction() {
		engine.GET("/debug/db-stats", healthHandler.DBStats)
	}

	api := engine.Group("/api")

	// Initialize the shared middleware instance before building wrappers
	middleware.Initialize(db, cfg.JWTSecret, logger)

	requireAuth := middleware.RequireAuth()
	optionalAuth := middleware.OptionalAuth()

	auth.RegisterRoutes(api, db, logger, cfg)
	plan.RegisterRoutes(api, db, logger, requireAuth)
	category.RegisterRoutes(api, db, logger, requireAuth)
	user.RegisterRoutes(api, db, logger, requireAuth)
	subscription.RegisterRoutes(api, db, logger, requireAuth)
	payment.RegisterRoutes(api, db, logger, requireAuth)
	content.RegisterRoutes(api, db, logger, cacheClient, signer, storageClient, requireAuth, optionalAuth)
	episode.RegisterRoutes(api, db, logger, requireAuth)
	starring.RegisterRoutes(api, db, logger, requireAuth)
	watchlist.RegisterRoutes(api, db, logger, requireAuth)
}
