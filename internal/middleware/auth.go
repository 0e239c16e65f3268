package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/utils/jwt"
	"github.com/nexstream/ott-server-go/pkg/response"
	"github.com/nexstream/ott-server-go/pkg/types"
)

// Viewer represents the authenticated user in middleware context, carrying
// just the identity and entitlement columns the access gate needs.
type Viewer struct {
	ID           uuid.UUID        `gorm:"column:id;primaryKey"`
	Email        string           `gorm:"column:email"`
	FirstName    string           `gorm:"column:first_name"`
	LastName     string           `gorm:"column:last_name"`
	PlanID       *uuid.UUID       `gorm:"column:plan_id"`
	IsSubscribed bool             `gorm:"column:is_subscribed"`
	StartDate    *time.Time       `gorm:"column:start_date"`
	EndDate      *time.Time       `gorm:"column:end_date"`
	PlanStatus   types.PlanStatus `gorm:"column:plan_status"`
}

// TableName specifies the table name for the Viewer model.
func (Viewer) TableName() string {
	return "users"
}

// HasActiveEntitlement recomputes entitlement at access time. The cached
// plan_status column is never trusted here.
func (v *Viewer) HasActiveEntitlement(now time.Time) bool {
	if v == nil || !v.IsSubscribed || v.EndDate == nil {
		return false
	}
	return !now.After(*v.EndDate)
}

// Global instance to be initialized once at startup
var global *AuthMiddleware

// AuthMiddleware holds dependencies for authentication middleware
type AuthMiddleware struct {
	db        *gorm.DB
	jwtSecret string
	logger    *slog.Logger
}

// Initialize sets up the global middleware instance (call once at startup)
func Initialize(db *gorm.DB, jwtSecret string, logger *slog.Logger) {
	global = &AuthMiddleware{
		db:        db,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// RequireAuth validates the bearer token and loads the viewer into context.
// Requests without a valid identity are rejected with 401.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := m.ensureAuthenticated(c); !ok {
			return
		}
		c.Next()
	}
}

// OptionalAuth loads the viewer when a valid bearer token is present and
// continues anonymously otherwise. The premium gate downstream decides
// between 401 (no identity) and 403 (insufficient entitlement).
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := jwt.VerifyToken(token, m.jwtSecret)
		if err != nil || claims.UserID == uuid.Nil {
			c.Next()
			return
		}

		var viewer Viewer
		if err := m.db.WithContext(c.Request.Context()).
			Table("users").
			First(&viewer, "id = ?", claims.UserID).Error; err != nil {
			c.Next()
			return
		}

		viewerCopy := viewer
		c.Set("user", &viewerCopy)
		c.Set("userId", viewer.ID)
		c.Next()
	}
}

// Global convenience wrappers - use these in route files

// RequireAuth is the global version for authenticated routes.
func RequireAuth() gin.HandlerFunc {
	if global == nil {
		panic("middleware not initialized - call middleware.Initialize() first")
	}
	return global.RequireAuth()
}

// OptionalAuth is the global version for routes that serve both anonymous and
// authenticated viewers.
func OptionalAuth() gin.HandlerFunc {
	if global == nil {
		panic("middleware not initialized - call middleware.Initialize() first")
	}
	return global.OptionalAuth()
}

// GetViewerFromContext retrieves the authenticated viewer from the Gin context.
func GetViewerFromContext(c *gin.Context) (*Viewer, bool) {
	viewerVal, exists := c.Get("user")
	if !exists {
		return nil, false
	}

	if viewer, ok := viewerVal.(*Viewer); ok && viewer != nil {
		return viewer, true
	}

	if viewer, ok := viewerVal.(Viewer); ok {
		return &viewer, true
	}

	return nil, false
}

func (m *AuthMiddleware) ensureAuthenticated(c *gin.Context) (*Viewer, bool) {
	if viewer, ok := GetViewerFromContext(c); ok {
		return viewer, true
	}

	token := bearerToken(c)
	if token == "" {
		response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "No token provided", nil)
		c.Abort()
		return nil, false
	}

	claims, err := jwt.VerifyToken(token, m.jwtSecret)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Token expired", err)
		default:
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Invalid token", err)
		}
		c.Abort()
		return nil, false
	}

	if claims.UserID == uuid.Nil {
		response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "Invalid token payload", nil)
		c.Abort()
		return nil, false
	}

	var viewer Viewer
	if err := m.db.WithContext(c.Request.Context()).
		Table("users").
		First(&viewer, "id = ?", claims.UserID).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.ErrorWithLog(m.logger, c, http.StatusUnauthorized, "User not found", err)
		default:
			response.ErrorWithLog(m.logger, c, http.StatusInternalServerError, "Internal Server Error", err)
		}
		c.Abort()
		return nil, false
	}

	viewerCopy := viewer
	c.Set("user", &viewerCopy)
	c.Set("userId", viewer.ID)
	return &viewerCopy, true
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}
