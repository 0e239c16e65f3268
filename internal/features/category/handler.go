package category

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/pkg/request"
	"github.com/nexstream/ott-server-go/pkg/response"
)

// Handler processes category HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a category handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// List returns all categories.
func (h *Handler) List(c *gin.Context) {
	categories, err := List(h.db)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to list categories", err)
		return
	}

	response.Success(c, http.StatusOK, categories, "", nil)
}

type createRequest struct {
	Name        string  `json:"name" binding:"required"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
	IsPremium   *bool   `json:"isPremium"`
}

// Create inserts a new category.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid category payload", err)
		return
	}

	cat, err := Create(h.db, CreateInput{
		Name:        req.Name,
		Image:       req.Image,
		Description: req.Description,
		IsPremium:   req.IsPremium,
	})
	if err != nil {
		h.respondError(c, err, "failed to create category")
		return
	}

	response.Created(c, cat, "")
}

// GetByID fetches a single category.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid category id", err)
		return
	}

	cat, err := Get(h.db, id)
	if err != nil {
		h.respondError(c, err, "failed to load category")
		return
	}

	response.Success(c, http.StatusOK, cat, "", nil)
}

// Update modifies an existing category.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid category id", err)
		return
	}

	body := map[string]interface{}{}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid category payload", err)
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

	if value, ok := body["description"]; ok {
		input.DescriptionProvided = true
		if value != nil {
			str, err := request.ReadString(value)
			if err != nil {
				response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "description must be a string", err)
				return
			}
			input.Description = &str
		}
	}

	if value, ok := body["isPremium"]; ok {
		val, err := request.ReadBool(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "isPremium must be boolean", err)
			return
		}
		input.IsPremium = &val
	}

	cat, err := Update(h.db, id, input)
	if err != nil {
		h.respondError(c, err, "failed to update category")
		return
	}

	response.Success(c, http.StatusOK, cat, "Category updated successfully", nil)
}

// Delete removes a category.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid category id", err)
		return
	}

	if err := Delete(h.db, id); err != nil {
		h.respondError(c, err, "failed to delete category")
		return
	}

	response.Success(c, http.StatusOK, true, "Category deleted", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrCategoryNotFound):
		status = http.StatusNotFound
		message = "Category not found."
	case errors.Is(err, ErrCategoryNameTaken):
		status = http.StatusConflict
		message = "Category name already exists."
	case errors.Is(err, ErrMissingName):
		status = http.StatusBadRequest
		message = err.Error()
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
