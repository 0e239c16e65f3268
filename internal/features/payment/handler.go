package payment

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
	"github.com/nexstream/ott-server-go/pkg/types"
)

// Handler processes payment HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a payment handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

type createRequest struct {
	PaymentMethodType string  `json:"paymentMethodType" binding:"required"`
	CardNumber        *string `json:"cardNumber"`
	CardHolderName    *string `json:"cardHolderName"`
	ExpiryDate        *string `json:"expiryDate"`
	CVV               *string `json:"cvv"`
	UPIID             *string `json:"upiId"`
	PlanID            string  `json:"planId" binding:"required"`
}

// Create records a payment and grants the purchased entitlement.
func (h *Handler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Payment method type and planId are required fields.", err)
		return
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid Plan ID format.", err)
		return
	}

	result, err := Create(h.db, CreateInput{
		UserID:            userID,
		PlanID:            planID,
		PaymentMethodType: types.PaymentMethodType(req.PaymentMethodType),
		CardNumber:        req.CardNumber,
		CardHolderName:    req.CardHolderName,
		ExpiryDate:        req.ExpiryDate,
		CVV:               req.CVV,
		UPIID:             req.UPIID,
	})
	if err != nil {
		h.respondError(c, err, "failed to record payment")
		return
	}

	response.Created(c, result, "Payment and subscription created successfully")
}

// List returns all payment records.
func (h *Handler) List(c *gin.Context) {
	payments, err := List(h.db)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to list payments", err)
		return
	}

	response.Success(c, http.StatusOK, payments, "", nil)
}

// GetByID fetches a single payment record.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid Payment ID.", err)
		return
	}

	pay, err := Get(h.db, id)
	if err != nil {
		h.respondError(c, err, "failed to load payment")
		return
	}

	response.Success(c, http.StatusOK, pay, "", nil)
}

type updateRequest struct {
	PaymentMethodType *string `json:"paymentMethodType"`
	CardNumber        *string `json:"cardNumber"`
	CardHolderName    *string `json:"cardHolderName"`
	ExpiryDate        *string `json:"expiryDate"`
	CVV               *string `json:"cvv"`
	UPIID             *string `json:"upiId"`
	PlanID            *string `json:"planId"`
}

// Update applies a partial update to a payment record.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid Payment ID format.", err)
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid payment payload", err)
		return
	}

	input := UpdateInput{
		CardNumber:     req.CardNumber,
		CardHolderName: req.CardHolderName,
		ExpiryDate:     req.ExpiryDate,
		CVV:            req.CVV,
		UPIID:          req.UPIID,
	}

	if req.PaymentMethodType != nil {
		method := types.PaymentMethodType(*req.PaymentMethodType)
		input.PaymentMethodType = &method
	}

	if req.PlanID != nil {
		planID, err := uuid.Parse(*req.PlanID)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid Plan ID format.", err)
			return
		}
		input.PlanID = &planID
	}

	pay, err := Update(h.db, id, input)
	if err != nil {
		h.respondError(c, err, "failed to update payment")
		return
	}

	response.Success(c, http.StatusOK, pay, "", nil)
}

// Delete removes a payment record.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid Payment ID format.", err)
		return
	}

	if err := Delete(h.db, id); err != nil {
		h.respondError(c, err, "failed to delete payment")
		return
	}

	response.Success(c, http.StatusOK, true, "Payment record deleted successfully.", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrPaymentNotFound):
		status = http.StatusNotFound
		message = "Payment record not found."
	case errors.Is(err, plan.ErrPlanNotFound):
		status = http.StatusNotFound
		message = "Premium plan not found."
	case errors.Is(err, user.ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found."
	case errors.Is(err, ErrInvalidMethod),
		errors.Is(err, ErrCardFieldsRequired),
		errors.Is(err, ErrCardFieldsNotAllowed),
		errors.Is(err, ErrUPIRequired),
		errors.Is(err, ErrUPINotAllowed),
		errors.Is(err, ErrInvalidUPI),
		errors.Is(err, ErrInvalidPlanDuration):
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
