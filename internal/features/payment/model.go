package payment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/plan"
	"github.com/nexstream/ott-server-go/internal/features/subscription"
	"github.com/nexstream/ott-server-go/internal/features/user"
	"github.com/nexstream/ott-server-go/pkg/types"
	"github.com/nexstream/ott-server-go/pkg/validation"
)

// Payment records a completed purchase. Plan name and price are snapshotted
// at purchase time so later plan edits do not rewrite payment history.
type Payment struct {
	types.BaseModel

	UserID            uuid.UUID               `gorm:"type:uuid;not null;column:user_id;index" json:"userId"`
	PlanID            *uuid.UUID              `gorm:"type:uuid;column:plan_id" json:"planId,omitempty"`
	PaymentMethodType types.PaymentMethodType `gorm:"type:varchar(20);not null;column:payment_method_type" json:"paymentMethodType"`
	CardNumber        *string                 `gorm:"type:varchar(30);column:card_number" json:"cardNumber,omitempty"`
	CardHolderName    *string                 `gorm:"type:varchar(100);column:card_holder_name" json:"cardHolderName,omitempty"`
	ExpiryDate        *string                 `gorm:"type:varchar(10);column:expiry_date" json:"expiryDate,omitempty"`
	CVV               *string                 `gorm:"type:varchar(6);column:cvv" json:"cvv,omitempty"`
	UPIID             *string                 `gorm:"type:varchar(100);column:upi_id" json:"upiId,omitempty"`
	PlanName          string                  `gorm:"type:varchar(80);not null;column:plan_name" json:"planName"`
	Price             types.Money             `gorm:"type:numeric(10,2);not null" json:"price"`
	Discount          types.Money             `gorm:"type:numeric(10,2);not null;default:0" json:"discount"`
	PlatformFee       types.Money             `gorm:"type:numeric(10,2);not null;default:0;column:platform_fee" json:"platformFee"`
	Total             types.Money             `gorm:"type:numeric(10,2);not null" json:"total"`
}

// TableName overrides the default table name.
func (Payment) TableName() string { return "payments" }

// CreateInput carries data for recording a payment.
type CreateInput struct {
	UserID            uuid.UUID
	PlanID            uuid.UUID
	PaymentMethodType types.PaymentMethodType
	CardNumber        *string
	CardHolderName    *string
	ExpiryDate        *string
	CVV               *string
	UPIID             *string
}

// UpdateInput captures mutable payment fields. Switching the payment method
// clears the previous method's columns so a row never carries both sets.
type UpdateInput struct {
	PaymentMethodType *types.PaymentMethodType
	CardNumber        *string
	CardHolderName    *string
	ExpiryDate        *string
	CVV               *string
	UPIID             *string
	PlanID            *uuid.UUID
}

// Result couples the stored payment with the entitlement granted alongside it.
type Result struct {
	Payment      Payment    `json:"payment"`
	PlanID       *uuid.UUID `json:"planId"`
	EndDate      *time.Time `json:"endDate"`
	PlanStatus   string     `json:"planStatus"`
	IsSubscribed bool       `json:"isSubscribed"`
}

func validateMethodFields(method types.PaymentMethodType, input CreateInput) error {
	switch method {
	case types.PaymentMethodCreditCard:
		if isBlank(input.CardNumber) || isBlank(input.CardHolderName) || isBlank(input.ExpiryDate) || isBlank(input.CVV) {
			return ErrCardFieldsRequired
		}
		if !isBlank(input.UPIID) {
			return ErrUPINotAllowed
		}
	case types.PaymentMethodUPI:
		if isBlank(input.UPIID) {
			return ErrUPIRequired
		}
		if !isBlank(input.CardNumber) || !isBlank(input.CardHolderName) || !isBlank(input.ExpiryDate) || !isBlank(input.CVV) {
			return ErrCardFieldsNotAllowed
		}
		if _, err := validation.NormalizeUPIHandle(*input.UPIID); err != nil {
			return ErrInvalidUPI
		}
	default:
		return ErrInvalidMethod
	}
	return nil
}

// Create validates the method-specific fields, snapshots the plan pricing and
// grants the entitlement. The payment insert and the user entitlement update
// run in a single transaction so they commit or roll back together.
func Create(db *gorm.DB, input CreateInput) (Result, error) {
	if err := validateMethodFields(input.PaymentMethodType, input); err != nil {
		return Result{}, err
	}

	p, err := plan.Get(db, input.PlanID)
	if err != nil {
		return Result{}, err
	}

	startDate := time.Now()
	endDate := subscription.ComputeEndDate(startDate, p.Duration)
	if endDate == nil {
		// The payment path is stricter than subscribe: money changed hands,
		// so an unsellable duration is rejected outright.
		return Result{}, ErrInvalidPlanDuration
	}

	usr, err := user.Get(db, input.UserID)
	if err != nil {
		return Result{}, err
	}

	upiID := trimPtr(input.UPIID)
	if upiID != nil {
		normalized, err := validation.NormalizeUPIHandle(*upiID)
		if err != nil {
			return Result{}, ErrInvalidUPI
		}
		upiID = &normalized
	}

	discount := types.NewMoney(0)
	platformFee := types.NewMoney(1)
	total := p.Price.Sub(discount).Add(platformFee)

	planID := p.ID
	pay := Payment{
		UserID:            usr.ID,
		PlanID:            &planID,
		PaymentMethodType: input.PaymentMethodType,
		CardNumber:        trimPtr(input.CardNumber),
		CardHolderName:    trimPtr(input.CardHolderName),
		ExpiryDate:        trimPtr(input.ExpiryDate),
		CVV:               trimPtr(input.CVV),
		UPIID:             upiID,
		PlanName:          p.Type,
		Price:             p.Price,
		Discount:          discount,
		PlatformFee:       platformFee,
		Total:             total,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pay).Error; err != nil {
			return err
		}

		entitlement := map[string]interface{}{
			"plan_id":       planID,
			"start_date":    startDate,
			"end_date":      *endDate,
			"plan_status":   types.PlanStatusActive,
			"is_subscribed": true,
		}
		return tx.Model(&user.User{}).Where("id = ?", usr.ID).Updates(entitlement).Error
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Payment:      pay,
		PlanID:       &planID,
		EndDate:      endDate,
		PlanStatus:   string(types.PlanStatusActive),
		IsSubscribed: true,
	}, nil
}

// List returns all payment records, newest first.
func List(db *gorm.DB) ([]Payment, error) {
	var payments []Payment
	if err := db.Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Get retrieves a payment record by ID.
func Get(db *gorm.DB, id uuid.UUID) (Payment, error) {
	var pay Payment
	if err := db.First(&pay, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return pay, ErrPaymentNotFound
		}
		return pay, err
	}
	return pay, nil
}

// Update applies a partial update preserving the one-method invariant.
func Update(db *gorm.DB, id uuid.UUID, input UpdateInput) (Payment, error) {
	pay, err := Get(db, id)
	if err != nil {
		return pay, err
	}

	// Re-derive snapshot fields when the plan reference changes, or refresh
	// them from the currently linked plan.
	var currentPlan *plan.Plan
	if input.PlanID != nil {
		p, err := plan.Get(db, *input.PlanID)
		if err != nil {
			return pay, err
		}
		currentPlan = &p
	} else if pay.PlanID != nil {
		if p, err := plan.Get(db, *pay.PlanID); err == nil {
			currentPlan = &p
		}
	}

	method := pay.PaymentMethodType
	if input.PaymentMethodType != nil {
		method = *input.PaymentMethodType
	}

	updates := map[string]interface{}{
		"payment_method_type": method,
	}

	switch method {
	case types.PaymentMethodCreditCard:
		if !isBlank(input.UPIID) {
			return pay, ErrUPINotAllowed
		}
		updates["upi_id"] = nil
		if input.CardNumber != nil {
			updates["card_number"] = strings.TrimSpace(*input.CardNumber)
		}
		if input.CardHolderName != nil {
			updates["card_holder_name"] = strings.TrimSpace(*input.CardHolderName)
		}
		if input.ExpiryDate != nil {
			updates["expiry_date"] = strings.TrimSpace(*input.ExpiryDate)
		}
		if input.CVV != nil {
			updates["cvv"] = strings.TrimSpace(*input.CVV)
		}
	case types.PaymentMethodUPI:
		if !isBlank(input.CardNumber) || !isBlank(input.CardHolderName) || !isBlank(input.ExpiryDate) || !isBlank(input.CVV) {
			return pay, ErrCardFieldsNotAllowed
		}
		updates["card_number"] = nil
		updates["card_holder_name"] = nil
		updates["expiry_date"] = nil
		updates["cvv"] = nil
		if input.UPIID != nil {
			normalized, err := validation.NormalizeUPIHandle(*input.UPIID)
			if err != nil {
				return pay, ErrInvalidUPI
			}
			updates["upi_id"] = normalized
		}
	default:
		return pay, ErrInvalidMethod
	}

	if input.PlanID != nil {
		updates["plan_id"] = *input.PlanID
	}

	if currentPlan != nil {
		discount := types.NewMoney(0)
		platformFee := types.NewMoney(1)
		updates["plan_name"] = currentPlan.Type
		updates["price"] = currentPlan.Price
		updates["discount"] = discount
		updates["platform_fee"] = platformFee
		updates["total"] = currentPlan.Price.Sub(discount).Add(platformFee)
	}

	if err := db.Model(&Payment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return pay, err
	}

	return Get(db, id)
}

// Delete removes a payment record.
func Delete(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&Payment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
