package episode

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires episode endpoints into the API group.
// Middleware is passed as parameters to avoid import cycles
func RegisterRoutes(api *gin.RouterGroup, db *gorm.DB, logger *slog.Logger, requireAuth gin.HandlerFunc) {
	handler := NewHandler(db, logger)

	episodes := api.Group("/episode")

	episodes.GET("/content/:contentId", handler.ListByContent)
	episodes.GET("/:episodeId", handler.GetByID)

	episodes.POST("", requireAuth, handler.Create)
	episodes.PATCH("/:episodeId", requireAuth, handler.Update)
	episodes.DELETE("/:episodeId", requireAuth, handler.Delete)
}
