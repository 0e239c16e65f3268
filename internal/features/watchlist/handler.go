package watchlist

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/content"
	"github.com/nexstream/ott-server-go/pkg/response"
)

// Handler processes watchlist HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a watchlist handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Get returns the authenticated user's watchlist.
func (h *Handler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	items, err := Get(h.db, userID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load watchlist", err)
		return
	}

	response.Success(c, http.StatusOK, items, "", nil)
}

type addRequest struct {
	ContentID string `json:"contentId" binding:"required"`
}

// Add saves a content to the authenticated user's watchlist.
func (h *Handler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "ContentId is a required field.", err)
		return
	}

	contentID, err := uuid.Parse(req.ContentID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid content ID format.", err)
		return
	}

	item, err := Add(h.db, userID, contentID)
	if err != nil {
		h.respondError(c, err, "failed to add to watchlist")
		return
	}

	response.Created(c, item, "Added to watchlist")
}

// Remove deletes a content from the authenticated user's watchlist.
func (h *Handler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	contentID, err := uuid.Parse(c.Param("contentId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid content ID.", err)
		return
	}

	if err := Remove(h.db, userID, contentID); err != nil {
		h.respondError(c, err, "failed to remove from watchlist")
		return
	}

	response.Success(c, http.StatusOK, true, "Removed from watchlist", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, content.ErrContentNotFound):
		status = http.StatusNotFound
		message = "Content not found."
	case errors.Is(err, ErrAlreadyInWatchlist):
		status = http.StatusConflict
		message = "Already in watchlist."
	case errors.Is(err, ErrNotInWatchlist):
		status = http.StatusNotFound
		message = "Content is not in the watchlist."
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
