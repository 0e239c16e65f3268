package subscription

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires subscription endpoints into the API group.
// Middleware is passed as parameters to avoid import cycles
func RegisterRoutes(api *gin.RouterGroup, db *gorm.DB, logger *slog.Logger, requireAuth gin.HandlerFunc) {
	handler := NewHandler(db, logger)

	subs := api.Group("/subscription")

	subs.POST("/subscribe", requireAuth, handler.Subscribe)
	subs.GET("/user/:userId", requireAuth, handler.GetUserWithPlanStatus)
}
