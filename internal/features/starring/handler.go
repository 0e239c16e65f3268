package starring

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

// Handler processes cast member HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a starring handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// List returns all cast members.
func (h *Handler) List(c *gin.Context) {
	starrings, err := List(h.db)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to list starrings", err)
		return
	}

	response.Success(c, http.StatusOK, starrings, "", nil)
}

// GetByID fetches a single cast member.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("starringId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid starring ID.", err)
		return
	}

	star, err := Get(h.db, id)
	if err != nil {
		h.respondError(c, err, "failed to load starring")
		return
	}

	response.Success(c, http.StatusOK, star, "", nil)
}

type createRequest struct {
	Name      string  `json:"name" binding:"required"`
	Image     *string `json:"image"`
	ContentID *string `json:"contentId"`
}

// Create inserts a new cast member.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Name is a required field.", err)
		return
	}

	input := CreateInput{Name: req.Name, Image: req.Image}
	if req.ContentID != nil {
		contentID, err := uuid.Parse(*req.ContentID)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid content ID format.", err)
			return
		}
		input.ContentID = &contentID
	}

	star, err := Create(h.db, input)
	if err != nil {
		h.respondError(c, err, "failed to create starring")
		return
	}

	response.Created(c, star, "Starring created successfully")
}

// Update modifies a cast member. addContentId and removeContentId edit the
// appearance list.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("starringId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid starring ID.", err)
		return
	}

	body := map[string]interface{}{}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid starring payload", err)
		return
	}

	input := UpdateInput{}

	if value, ok := body["name"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "name must be a string", err)
			return
		}
		input.Name = &str
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

	for _, field := range []struct {
		key  string
		dest **uuid.UUID
	}{
		{"addContentId", &input.AddContentID},
		{"removeContentId", &input.RemoveContentID},
	} {
		value, ok := body[field.key]
		if !ok || value == nil {
			continue
		}
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, field.key+" must be a string", err)
			return
		}
		contentID, err := uuid.Parse(str)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid content ID format.", err)
			return
		}
		*field.dest = &contentID
	}

	star, err := Update(h.db, id, input)
	if err != nil {
		h.respondError(c, err, "failed to update starring")
		return
	}

	response.Success(c, http.StatusOK, star, "Starring updated successfully", nil)
}

// Delete removes a cast member.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("starringId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid starring ID.", err)
		return
	}

	if err := Delete(h.db, id); err != nil {
		h.respondError(c, err, "failed to delete starring")
		return
	}

	response.Success(c, http.StatusOK, true, "Starring deleted", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrStarringNotFound):
		status = http.StatusNotFound
		message = "Starring not found."
	case errors.Is(err, content.ErrContentNotFound):
		status = http.StatusNotFound
		message = "Content not found."
	case errors.Is(err, ErrNameTaken):
		status = http.StatusConflict
		message = "Starring with this name already exists."
	case errors.Is(err, ErrMissingName):
		status = http.StatusBadRequest
		message = err.Error()
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
