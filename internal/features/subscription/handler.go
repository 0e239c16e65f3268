package subscription

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/plan"
	"github.com/nexstream/ott-server-go/internal/features/user"
	"github.com/nexstream/ott-server-go/pkg/response"
)

// Handler processes subscription HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a subscription handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

type subscribeRequest struct {
	UserID string `json:"userId" binding:"required"`
	PlanID string `json:"planId" binding:"required"`
}

// Subscribe assigns a premium plan to a user.
func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "userId and planId are required", err)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid userId or planId", err)
		return
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid userId or planId", err)
		return
	}

	usr, err := Subscribe(h.db, userID, planID)
	if err != nil {
		h.respondError(c, err, "failed to assign plan")
		return
	}

	response.Success(c, http.StatusOK, usr, "Plan assigned successfully", nil)
}

// GetUserWithPlanStatus returns a user with the plan populated and the
// entitlement status reconciled against the end date.
func (h *Handler) GetUserWithPlanStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	usr, err := GetUserWithPlanStatus(h.db, id)
	if err != nil {
		h.respondError(c, err, "failed to load user plan status")
		return
	}

	response.Success(c, http.StatusOK, usr, "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, plan.ErrPlanNotFound):
		status = http.StatusNotFound
		message = "Plan not found."
	case errors.Is(err, user.ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
