package user

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/pkg/pagination"
	"github.com/nexstream/ott-server-go/pkg/request"
	"github.com/nexstream/ott-server-go/pkg/response"
	"github.com/nexstream/ott-server-go/pkg/types"
)

// Handler processes user profile HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a user handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// List returns users with keyword filtering and pagination.
func (h *Handler) List(c *gin.Context) {
	params := pagination.Extract(c)
	keyword := c.Query("keyword")

	users, total, err := List(h.db, keyword, params)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to list users", err)
		return
	}

	response.Success(c, http.StatusOK, users, "", pagination.MetadataFrom(total, params))
}

// GetByID fetches a single user profile.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	usr, err := GetWithPlan(h.db, id)
	if err != nil {
		h.respondError(c, err, "failed to load user")
		return
	}

	// Profiles carry entitlement state; keep them out of shared caches.
	response.SuccessNoCache(c, http.StatusOK, usr, "")
}

// EditProfile updates the authenticated user's own profile.
func (h *Handler) EditProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	body := map[string]interface{}{}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid profile payload", err)
		return
	}

	input := UpdateInput{}

	if value, ok := body["firstName"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "firstName must be a string", err)
			return
		}
		input.FirstName = &str
	}

	if value, ok := body["lastName"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "lastName must be a string", err)
			return
		}
		input.LastName = &str
	}

	if value, ok := body["mobileNo"]; ok {
		input.MobileProvided = true
		if value != nil {
			str, err := request.ReadString(value)
			if err != nil {
				response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "mobileNo must be a string", err)
				return
			}
			input.Mobile = &str
		}
	}

	if value, ok := body["gender"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "gender must be a string", err)
			return
		}
		g := types.Gender(str)
		if g != types.GenderMale && g != types.GenderFemale && g != types.GenderOther {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "gender must be Male, Female or Other", nil)
			return
		}
		input.Gender = &g
	}

	if value, ok := body["image"]; ok {
		input.ImageProvided = true
		if value != nil {
			str, err := request.ReadString(value)
			if err != nil {
				response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "image must be a string", err)
				return
			}
			input.Image = &str
		}
	}

	usr, err := Update(h.db, userID, input)
	if err != nil {
		h.respondError(c, err, "failed to update profile")
		return
	}

	response.Success(c, http.StatusOK, usr, "Profile updated successfully", nil)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// ChangePassword rotates the authenticated user's password.
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid password payload", err)
		return
	}

	if err := ChangePassword(h.db, userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.respondError(c, err, "failed to change password")
		return
	}

	response.Success(c, http.StatusOK, true, "Password changed successfully", nil)
}

// Delete removes a user account.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	if err := Delete(h.db, id); err != nil {
		h.respondError(c, err, "failed to delete user")
		return
	}

	response.Success(c, http.StatusOK, true, "Account deleted successfully", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found."
	case errors.Is(err, ErrEmailTaken):
		status = http.StatusConflict
		message = "Email already registered."
	case errors.Is(err, ErrInvalidCredentials):
		status = http.StatusBadRequest
		message = "Current password is incorrect."
	case errors.Is(err, ErrWeakPassword), errors.Is(err, ErrMissingFields):
		status = http.StatusBadRequest
		message = err.Error()
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("userId")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
