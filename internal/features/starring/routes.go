package starring

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires starring endpoints into the API group.
// Middleware is passed as parameters to avoid import cycles
func RegisterRoutes(api *gin.RouterGroup, db *gorm.DB, logger *slog.Logger, requireAuth gin.HandlerFunc) {
	handler := NewHandler(db, logger)

	starrings := api.Group("/starring")

	starrings.GET("", handler.List)
	starrings.GET("/:starringId", handler.GetByID)

	starrings.POST("", requireAuth, handler.Create)
	starrings.PATCH("/:starringId", requireAuth, handler.Update)
	starrings.DELETE("/:starringId", requireAuth, handler.Delete)
}
