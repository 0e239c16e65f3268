package payment

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires payment endpoints into the API group.
// Middleware is passed as parameters to avoid import cycles
func RegisterRoutes(api *gin.RouterGroup, db *gorm.DB, logger *slog.Logger, requireAuth gin.HandlerFunc) {
	handler := NewHandler(db, logger)

	payments := api.Group("/payment")
	payments.Use(requireAuth)

	payments.POST("", handler.Create)
	payments.GET("", handler.List)
	payments.GET("/:paymentId", handler.GetByID)
	payments.PATCH("/:paymentId", handler.Update)
	payments.DELETE("/:paymentId", handler.Delete)
}
