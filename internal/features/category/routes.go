package category

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires category endpoints into the API group.
// Middleware is passed as parameters to avoid import cycles
func RegisterRoutes(api *gin.RouterGroup, db *gorm.DB, logger *slog.Logger, requireAuth gin.HandlerFunc) {
	handler := NewHandler(db, logger)

	categories := api.Group("/movieCategory")

	categories.GET("", handler.List)
	categories.GET("/:categoryId", handler.GetByID)

	categories.POST("", requireAuth, handler.Create)
	categories.PATCH("/:categoryId", requireAuth, handler.Update)
	categories.DELETE("/:categoryId", requireAuth, handler.Delete)
}
