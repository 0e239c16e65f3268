package plan

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/pkg/types"
)

// Plan represents a premium subscription plan.
type Plan struct {
	types.BaseModel

	Type          string             `gorm:"type:varchar(80);not null" json:"type"`
	Price         types.Money        `gorm:"type:numeric(10,2);not null" json:"price"`
	Duration      types.PlanDuration `gorm:"type:varchar(20);not null" json:"duration"`
	Content       string             `gorm:"type:varchar(255)" json:"content"`
	Devices       string             `gorm:"type:varchar(255)" json:"devices"`
	CancelAnytime string             `gorm:"type:varchar(255);column:cancel_anytime" json:"cancelAnytime"`
	AdFree        string             `gorm:"type:varchar(255);column:ad_free" json:"adFree"`
	FamilySharing string             `gorm:"type:varchar(255);column:family_sharing" json:"familySharing"`
	Active        bool               `gorm:"type:boolean;not null;default:true;column:is_active" json:"isActive"`
}

// TableName overrides the default table name.
func (Plan) TableName() string { return "plans" }

// CreateInput carries data for creating a new plan.
type CreateInput struct {
	Type          string
	Price         types.Money
	Duration      types.PlanDuration
	Content       string
	Devices       string
	CancelAnytime string
	AdFree        string
	FamilySharing string
	Active        *bool
}

// UpdateInput captures mutable plan fields.
type UpdateInput struct {
	Type          *string
	Price         *types.Money
	Duration      *types.PlanDuration
	Content       *string
	Devices       *string
	CancelAnytime *string
	AdFree        *string
	FamilySharing *string
	Active        *bool
}

// List queries all plans, optionally filtering by active status.
func List(db *gorm.DB, activeOnly bool) ([]Plan, error) {
	query := db.Model(&Plan{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var plans []Plan
	if err := query.Order("created_at DESC").Find(&plans).Error; err != nil {
		return nil, err
	}

	return plans, nil
}

// Get retrieves a plan by ID.
func Get(db *gorm.DB, id uuid.UUID) (Plan, error) {
	var p Plan
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return p, ErrPlanNotFound
		}
		return p, err
	}
	return p, nil
}

// Create inserts a new plan. Every descriptor field is required, matching the
// catalog contract the mobile clients render verbatim.
func Create(db *gorm.DB, input CreateInput) (Plan, error) {
	if strings.TrimSpace(input.Type) == "" ||
		strings.TrimSpace(input.Content) == "" ||
		strings.TrimSpace(input.Devices) == "" ||
		strings.TrimSpace(input.CancelAnytime) == "" ||
		strings.TrimSpace(input.AdFree) == "" ||
		strings.TrimSpace(input.FamilySharing) == "" ||
		input.Duration == "" {
		return Plan{}, ErrMissingFields
	}

	if input.Price.IsNegative() {
		return Plan{}, ErrNegativePrice
	}

	p := Plan{
		Type:          strings.TrimSpace(input.Type),
		Price:         input.Price,
		Duration:      input.Duration,
		Content:       strings.TrimSpace(input.Content),
		Devices:       strings.TrimSpace(input.Devices),
		CancelAnytime: strings.TrimSpace(input.CancelAnytime),
		AdFree:        strings.TrimSpace(input.AdFree),
		FamilySharing: strings.TrimSpace(input.FamilySharing),
		Active:        true,
	}

	if input.Active != nil {
		p.Active = *input.Active
	}

	if err := db.Create(&p).Error; err != nil {
		return p, err
	}

	return p, nil
}

// Update modifies an existing plan.
func Update(db *gorm.DB, id uuid.UUID, input UpdateInput) (Plan, error) {
	p, err := Get(db, id)
	if err != nil {
		return p, err
	}

	updates := map[string]interface{}{}

	if input.Type != nil {
		trimmed := strings.TrimSpace(*input.Type)
		if trimmed == "" {
			return p, ErrMissingFields
		}
		updates["type"] = trimmed
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return p, ErrNegativePrice
		}
		updates["price"] = *input.Price
	}
	if input.Duration != nil {
		updates["duration"] = *input.Duration
	}
	if input.Content != nil {
		updates["content"] = strings.TrimSpace(*input.Content)
	}
	if input.Devices != nil {
		updates["devices"] = strings.TrimSpace(*input.Devices)
	}
	if input.CancelAnytime != nil {
		updates["cancel_anytime"] = strings.TrimSpace(*input.CancelAnytime)
	}
	if input.AdFree != nil {
		updates["ad_free"] = strings.TrimSpace(*input.AdFree)
	}
	if input.FamilySharing != nil {
		updates["family_sharing"] = strings.TrimSpace(*input.FamilySharing)
	}
	if input.Active != nil {
		updates["is_active"] = *input.Active
	}

	if len(updates) > 0 {
		if err := db.Model(&Plan{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return p, err
		}
	}

	return Get(db, id)
}

// Delete removes a plan.
func Delete(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&Plan{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}
