package watchlist

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires watchlist endpoints into the API group.
// Middleware is passed as parameters to avoid import cycles
func RegisterRoutes(api *gin.RouterGroup, db *gorm.DB, logger *slog.Logger, requireAuth gin.HandlerFunc) {
	handler := NewHandler(db, logger)

	items := api.Group("/watchlist")
	items.Use(requireAuth)

	items.GET("", handler.Get)
	items.POST("", handler.Add)
	items.DELETE("/:contentId", handler.Remove)
}
