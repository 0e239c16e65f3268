package plan

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/pkg/request"
	"github.com/nexstream/ott-server-go/pkg/response"
	"github.com/nexstream/ott-server-go/pkg/types"
)

// Handler processes premium plan HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a plan handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// List returns all plans. Anonymous clients only see active ones.
func (h *Handler) List(c *gin.Context) {
	activeOnly := c.Query("all") != "true"

	plans, err := List(h.db, activeOnly)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to list plans", err)
		return
	}

	response.Success(c, http.StatusOK, plans, "", nil)
}

type createRequest struct {
	Type          string  `json:"type" binding:"required"`
	Price         float64 `json:"price" binding:"required"`
	Duration      string  `json:"duration" binding:"required"`
	Content       string  `json:"content" binding:"required"`
	Devices       string  `json:"devices" binding:"required"`
	CancelAnytime string  `json:"cancelAnytime" binding:"required"`
	AdFree        string  `json:"adFree" binding:"required"`
	FamilySharing string  `json:"familySharing" binding:"required"`
	Active        *bool   `json:"isActive"`
}

// Create inserts a new plan.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid plan payload", err)
		return
	}

	p, err := Create(h.db, CreateInput{
		Type:          req.Type,
		Price:         types.NewMoney(req.Price),
		Duration:      types.PlanDuration(req.Duration),
		Content:       req.Content,
		Devices:       req.Devices,
		CancelAnytime: req.CancelAnytime,
		AdFree:        req.AdFree,
		FamilySharing: req.FamilySharing,
		Active:        req.Active,
	})
	if err != nil {
		h.respondError(c, err, "failed to create plan")
		return
	}

	response.Created(c, p, "")
}

// GetByID fetches a single plan.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("planId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid plan id", err)
		return
	}

	p, err := Get(h.db, id)
	if err != nil {
		h.respondError(c, err, "failed to load plan")
		return
	}

	response.Success(c, http.StatusOK, p, "", nil)
}

// Update modifies an existing plan.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("planId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid plan id", err)
		return
	}

	body := map[string]interface{}{}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid plan payload", err)
		return
	}

	input := UpdateInput{}

	if value, ok := body["type"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "type must be a string", err)
			return
		}
		input.Type = &str
	}

	if value, ok := body["price"]; ok {
		val, err := request.ReadFloat(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "price must be a number", err)
			return
		}
		m := types.NewMoney(val)
		input.Price = &m
	}

	if value, ok := body["duration"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "duration must be a string", err)
			return
		}
		d := types.PlanDuration(str)
		input.Duration = &d
	}

	for field, target := range map[string]**string{
		"content":       &input.Content,
		"devices":       &input.Devices,
		"cancelAnytime": &input.CancelAnytime,
		"adFree":        &input.AdFree,
		"familySharing": &input.FamilySharing,
	} {
		if value, ok := body[field]; ok {
			str, err := request.ReadString(value)
			if err != nil {
				response.ErrorWithLog(h.logger, c, http.StatusBadRequest, field+" must be a string", err)
				return
			}
			*target = &str
		}
	}

	if value, ok := body["isActive"]; ok {
		val, err := request.ReadBool(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "isActive must be boolean", err)
			return
		}
		input.Active = &val
	}

	p, err := Update(h.db, id, input)
	if err != nil {
		h.respondError(c, err, "failed to update plan")
		return
	}

	response.Success(c, http.StatusOK, p, "", nil)
}

// Delete removes a plan.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("planId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid plan id", err)
		return
	}

	if err := Delete(h.db, id); err != nil {
		h.respondError(c, err, "failed to delete plan")
		return
	}

	response.Success(c, http.StatusOK, true, "Premium plan deleted successfully", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrPlanNotFound):
		status = http.StatusNotFound
		message = "Premium plan not found."
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrNegativePrice):
		status = http.StatusBadRequest
		message = err.Error()
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
