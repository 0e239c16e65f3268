package user

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires user profile endpoints into the API group.
// Middleware is passed as parameters to avoid import cycles
func RegisterRoutes(api *gin.RouterGroup, db *gorm.DB, logger *slog.Logger, requireAuth gin.HandlerFunc) {
	handler := NewHandler(db, logger)

	users := api.Group("/user")

	users.GET("", requireAuth, handler.List)
	users.GET("/:userId", requireAuth, handler.GetByID)
	users.PATCH("/editProfile", requireAuth, handler.EditProfile)
	users.POST("/changePassword", requireAuth, handler.ChangePassword)
	users.DELETE("/:userId", requireAuth, handler.Delete)
}
