package auth

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/pkg/config"
)

// RegisterRoutes wires authentication endpoints into the API group.
func RegisterRoutes(api *gin.RouterGroup, db *gorm.DB, logger *slog.Logger, cfg *config.Config) {
	handler := NewHandler(db, logger, cfg)

	authGroup := api.Group("/auth")

	authGroup.POST("/register", handler.Register)
	authGroup.POST("/login", handler.Login)
	authGroup.POST("/logout", handler.Logout)
	authGroup.POST("/refresh", handler.RefreshToken)
}
