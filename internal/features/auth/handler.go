package auth

import (
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/user"
	"github.com/nexstream/ott-server-go/pkg/config"
	"github.com/nexstream/ott-server-go/pkg/response"
	"github.com/nexstream/ott-server-go/pkg/types"
)

// Handler processes authentication HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
	cfg    *config.Config
}

// NewHandler constructs an auth handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger, cfg *config.Config) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
		cfg:    cfg,
	}
}

// Register creates a new viewer account.
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		FirstName string  `json:"firstName" binding:"required"`
		LastName  string  `json:"lastName" binding:"required"`
		Email     string  `json:"email" binding:"required,email"`
		Password  string  `json:"password" binding:"required"`
		Mobile    *string `json:"mobileNo"`
		Gender    *string `json:"gender"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid registration payload", err)
		return
	}

	input := RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Mobile:    req.Mobile,
		Password:  req.Password,
	}
	if req.Gender != nil {
		gender := types.Gender(*req.Gender)
		input.Gender = &gender
	}

	authResp, err := Register(h.db, input, h.getTokenConfig())
	if err != nil {
		h.respondError(c, err, "registration failed")
		return
	}

	response.Created(c, authResp, "Registration successful")
}

// Login authenticates a user and returns JWT tokens.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email      string  `json:"email" binding:"required"`
		Password   string  `json:"password" binding:"required"`
		DeviceID   *string `json:"deviceId"`
		DeviceName *string `json:"deviceName"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid login payload", err)
		return
	}

	authResp, err := Login(h.db, LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		DeviceID:   req.DeviceID,
		DeviceName: req.DeviceName,
	}, h.getTokenConfig())
	if err != nil {
		h.respondError(c, err, "login failed")
		return
	}

	response.Success(c, http.StatusOK, authResp, "Login successful", nil)
}

// Logout clears the user's refresh token.
func (h *Handler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "no access token provided", nil)
		return
	}

	if err := Logout(h.db, ExtractToken(authHeader), h.getTokenConfig()); err != nil {
		h.respondError(c, err, "logout failed")
		return
	}

	response.Success(c, http.StatusOK, true, "Logout successful", nil)
}

// RefreshToken exchanges a refresh token for a new token pair.
func (h *Handler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "refresh token is required", err)
		return
	}

	tokenPair, err := RefreshAccessToken(h.db, req.RefreshToken, h.getTokenConfig())
	if err != nil {
		h.respondError(c, err, "token refresh failed")
		return
	}

	response.Success(c, http.StatusOK, tokenPair, "", nil)
}

func (h *Handler) getTokenConfig() TokenConfig {
	return TokenConfig{
		JWTSecret:          h.cfg.JWTSecret,
		JWTRefreshSecret:   h.cfg.JWTRefreshSecret,
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid email or password"
	case errors.Is(err, ErrMissingFields):
		status = http.StatusBadRequest
		message = "Missing required fields"
	case errors.Is(err, ErrInvalidEmail):
		status = http.StatusBadRequest
		message = "Invalid email format"
	case errors.Is(err, user.ErrWeakPassword):
		status = http.StatusBadRequest
		message = "Password must be at least 8 characters long"
	case errors.Is(err, user.ErrEmailTaken):
		status = http.StatusConflict
		message = "An account with this email already exists"
	case errors.Is(err, ErrInvalidToken):
		status = http.StatusUnauthorized
		message = "Invalid or expired token"
	case errors.Is(err, user.ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found"
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
