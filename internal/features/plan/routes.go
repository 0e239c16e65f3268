package plan

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires premium plan endpoints into the API group.
// Middleware is passed as parameters to avoid import cycles
func RegisterRoutes(api *gin.RouterGroup, db *gorm.DB, logger *slog.Logger, requireAuth gin.HandlerFunc) {
	handler := NewHandler(db, logger)

	plans := api.Group("/premium")

	plans.GET("", handler.List)
	plans.GET("/:planId", handler.GetByID)

	plans.POST("", requireAuth, handler.Create)
	plans.PATCH("/:planId", requireAuth, handler.Update)
	plans.DELETE("/:planId", requireAuth, handler.Delete)
}
