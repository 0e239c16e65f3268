package episode

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/content"
	"github.com/nexstream/ott-server-go/pkg/request"
	"github.com/nexstream/ott-server-go/pkg/response"
)

// Handler processes episode HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs an episode handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// ListByContent returns the episodes of one content in watch order.
func (h *Handler) ListByContent(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("contentId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid content ID.", err)
		return
	}

	episodes, err := ListByContent(h.db, contentID)
	if err != nil {
		h.respondError(c, err, "failed to list episodes")
		return
	}

	response.Success(c, http.StatusOK, episodes, "", nil)
}

// GetByID fetches a single episode.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("episodeId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid episode ID.", err)
		return
	}

	ep, err := Get(h.db, id)
	if err != nil {
		h.respondError(c, err, "failed to load episode")
		return
	}

	response.Success(c, http.StatusOK, ep, "", nil)
}

type createRequest struct {
	ContentID   string  `json:"contentId" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	SeasonNo    int     `json:"seasonNo" binding:"required"`
	EpisodeNo   int     `json:"episodeNo" binding:"required"`
	Description *string `json:"description"`
	Duration    *int    `json:"duration"`
	Thumbnail   *string `json:"thumbnail"`
	Video       *string `json:"video"`
}

// Create adds a new episode under an existing content.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "ContentId, title, seasonNo and episodeNo are required fields.", err)
		return
	}

	contentID, err := uuid.Parse(req.ContentID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid content ID format.", err)
		return
	}

	ep, err := Create(h.db, CreateInput{
		ContentID:   contentID,
		Title:       req.Title,
		SeasonNo:    req.SeasonNo,
		EpisodeNo:   req.EpisodeNo,
		Description: req.Description,
		Duration:    req.Duration,
		Thumbnail:   req.Thumbnail,
		Video:       req.Video,
	})
	if err != nil {
		h.respondError(c, err, "failed to create episode")
		return
	}

	response.Created(c, ep, "Episode created successfully")
}

// Update applies a partial update to an episode.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("episodeId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid episode ID.", err)
		return
	}

	body := map[string]interface{}{}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid episode payload", err)
		return
	}

	input := UpdateInput{}

	if value, ok := body["title"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "title must be a string", err)
			return
		}
		input.Title = &str
	}

	if value, ok := body["seasonNo"]; ok {
		val, err := request.ReadInt(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "seasonNo must be an integer", err)
			return
		}
		input.SeasonNo = &val
	}

	if value, ok := body["episodeNo"]; ok {
		val, err := request.ReadInt(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "episodeNo must be an integer", err)
			return
		}
		input.EpisodeNo = &val
	}

	if value, ok := body["description"]; ok && value != nil {
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "description must be a string", err)
			return
		}
		input.Description = &str
	}

	if value, ok := body["duration"]; ok && value != nil {
		val, err := request.ReadInt(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "duration must be an integer", err)
			return
		}
		input.Duration = &val
	}

	if value, ok := body["thumbnail"]; ok && value != nil {
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "thumbnail must be a string", err)
			return
		}
		input.Thumbnail = &str
	}

	if value, ok := body["video"]; ok && value != nil {
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "video must be a string", err)
			return
		}
		input.Video = &str
	}

	ep, err := Update(h.db, id, input)
	if err != nil {
		h.respondError(c, err, "failed to update episode")
		return
	}

	response.Success(c, http.StatusOK, ep, "Episode updated successfully", nil)
}

// Delete removes an episode.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("episodeId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid episode ID.", err)
		return
	}

	if err := Delete(h.db, id); err != nil {
		h.respondError(c, err, "failed to delete episode")
		return
	}

	response.Success(c, http.StatusOK, true, "Episode deleted successfully", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrEpisodeNotFound):
		status = http.StatusNotFound
		message = "Episode not found."
	case errors.Is(err, content.ErrContentNotFound):
		status = http.StatusNotFound
		message = "Content not found."
	case errors.Is(err, ErrEpisodeTitleTaken), errors.Is(err, ErrEpisodeNumberTaken):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, ErrMissingFields):
		status = http.StatusBadRequest
		message = err.Error()
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
