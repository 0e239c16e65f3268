package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/pkg/cache"
)

// Version information, typically set at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

const serviceName = "ott-server"

// Handler serves the liveness, readiness and version endpoints.
type Handler struct {
	db     *gorm.DB
	cache  cache.Client
	logger *slog.Logger
}

// NewHandler creates a health check handler. The cache client may be nil or
// disabled; a cache outage degrades readiness output but does not fail it,
// since listings fall back to direct queries.
func NewHandler(db *gorm.DB, cacheClient cache.Client, logger *slog.Logger) *Handler {
	return &Handler{
		db:     db,
		cache:  cacheClient,
		logger: logger,
	}
}

// HealthResponse is the body shared by the liveness and readiness probes.
type HealthResponse struct {
	Service   string            `json:"service"`
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Health is the liveness probe; it answers OK while the process runs.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Service:   serviceName,
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   Version,
	})
}

// Ready reports whether the service can take traffic. The database is
// required; the cache is reported but optional.
func (h *Handler) Ready(c *gin.Context) {
	checks := make(map[string]string)
	overallStatus := "ready"

	dbStatus := h.checkDatabase()
	checks["database"] = dbStatus
	if dbStatus != "ok" {
		overallStatus = "not_ready"
	}

	checks["cache"] = h.checkCache(c.Request.Context())

	statusCode := http.StatusOK
	if overallStatus != "ready" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Service:   serviceName,
		Status:    overallStatus,
		Timestamp: time.Now(),
		Version:   Version,
		Checks:    checks,
	})
}

// Version returns build information about the service.
func (h *Handler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":    serviceName,
		"version":    Version,
		"git_commit": GitCommit,
		"build_time": BuildTime,
	})
}

func (h *Handler) checkDatabase() string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err != nil {
		h.logger.Error("health check: failed to get database instance", slog.String("error", err.Error()))
		return "unavailable"
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		h.logger.Error("health check: database ping failed", slog.String("error", err.Error()))
		return "unhealthy"
	}

	return "ok"
}

func (h *Handler) checkCache(ctx context.Context) string {
	if h.cache == nil {
		return "disabled"
	}

	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if _, err := h.cache.Exists(probeCtx, "health:probe"); err != nil {
		h.logger.Warn("health check: cache probe failed", slog.String("error", err.Error()))
		return "degraded"
	}

	return "ok"
}

// DBStats returns database connection pool statistics.
func (h *Handler) DBStats(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get database instance",
		})
		return
	}

	stats := sqlDB.Stats()
	c.JSON(http.StatusOK, gin.H{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration":        stats.WaitDuration.String(),
		"max_idle_closed":      stats.MaxIdleClosed,
		"max_idle_time_closed": stats.MaxIdleTimeClosed,
		"max_lifetime_closed":  stats.MaxLifetimeClosed,
	})
}
