package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nexstream/ott-server-go/pkg/response"
)

type ratingRequest struct {
	Rating int `json:"rating" binding:"required"`
}

// Rate records the authenticated user's rating for a content.
func (h *Handler) Rate(c *gin.Context) {
	contentID, userID, ok := h.engagementIDs(c)
	if !ok {
		return
	}

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Rating is a required field.", err)
		return
	}

	item, err := Rate(h.db, contentID, userID, req.Rating)
	if err != nil {
		h.respondError(c, err, "failed to rate content")
		return
	}

	response.Created(c, item, "Rating added successfully")
}

// UpdateRating replaces the authenticated user's rating.
func (h *Handler) UpdateRating(c *gin.Context) {
	contentID, userID, ok := h.engagementIDs(c)
	if !ok {
		return
	}

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Rating is a required field.", err)
		return
	}

	item, err := UpdateRating(h.db, contentID, userID, req.Rating)
	if err != nil {
		h.respondError(c, err, "failed to update rating")
		return
	}

	response.Success(c, http.StatusOK, item, "Rating updated successfully", nil)
}

// DeleteRating removes the authenticated user's rating.
func (h *Handler) DeleteRating(c *gin.Context) {
	contentID, userID, ok := h.engagementIDs(c)
	if !ok {
		return
	}

	item, err := DeleteRating(h.db, contentID, userID)
	if err != nil {
		h.respondError(c, err, "failed to delete rating")
		return
	}

	response.Success(c, http.StatusOK, item, "Rating deleted successfully", nil)
}

// RatingDetails returns the rating summary for a content.
func (h *Handler) RatingDetails(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("contentId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid content ID.", err)
		return
	}

	details, err := GetRatingDetails(h.db, contentID)
	if err != nil {
		h.respondError(c, err, "failed to load rating details")
		return
	}

	response.Success(c, http.StatusOK, details, "", nil)
}

// RecordView marks a content as viewed by the authenticated user.
func (h *Handler) RecordView(c *gin.Context) {
	contentID, userID, ok := h.engagementIDs(c)
	if !ok {
		return
	}

	item, err := RecordView(h.db, contentID, userID)
	if err != nil {
		h.respondError(c, err, "failed to record view")
		return
	}

	response.Success(c, http.StatusOK, item, "View recorded", nil)
}

// WatchAgain returns the authenticated user's recently viewed contents.
func (h *Handler) WatchAgain(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	contents, err := WatchAgain(h.db, userID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load watch history", err)
		return
	}

	response.Success(c, http.StatusOK, sanitize(contents), "", nil)
}

// Recommended serves the per-user recommendation rail. The payload depends
// on the viewer's watchlist, so it skips the shared listing cache.
func (h *Handler) Recommended(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	contents, err := Recommended(h.db, userID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to build recommendations", err)
		return
	}

	response.SuccessNoCache(c, http.StatusOK, sanitize(contents), "")
}

func (h *Handler) engagementIDs(c *gin.Context) (contentID, userID uuid.UUID, ok bool) {
	contentID, err := uuid.Parse(c.Param("contentId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid content ID.", err)
		return uuid.Nil, uuid.Nil, false
	}

	userID, found := h.currentUserID(c)
	if !found {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
		return uuid.Nil, uuid.Nil, false
	}

	return contentID, userID, true
}

func (h *Handler) currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("userId")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
