package category

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/pkg/types"
)

// Category represents a content category. The IsPremium flag is the single
// source of the premium gate decision for every content row under it.
type Category struct {
	types.BaseModel

	Name        string  `gorm:"type:varchar(80);not null;uniqueIndex" json:"name"`
	Image       *string `gorm:"type:varchar(500)" json:"image,omitempty"`
	Description *string `gorm:"type:varchar(1000)" json:"description,omitempty"`
	IsPremium   bool    `gorm:"type:boolean;not null;default:false;column:is_premium" json:"isPremium"`
}

// TableName overrides the default table name.
func (Category) TableName() string { return "categories" }

// CreateInput carries data for creating a new category.
type CreateInput struct {
	Name        string
	Image       *string
	Description *string
	IsPremium   *bool
}

// UpdateInput captures mutable category fields.
type UpdateInput struct {
	Name                *string
	Image               *string
	ImageProvided       bool
	Description         *string
	DescriptionProvided bool
	IsPremium           *bool
}

// List queries all categories.
func List(db *gorm.DB) ([]Category, error) {
	var categories []Category
	if err := db.Order("created_at DESC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Get retrieves a category by ID.
func Get(db *gorm.DB, id uuid.UUID) (Category, error) {
	var cat Category
	if err := db.First(&cat, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return cat, ErrCategoryNotFound
		}
		return cat, err
	}
	return cat, nil
}

// Create inserts a new category.
func Create(db *gorm.DB, input CreateInput) (Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Category{}, ErrMissingName
	}

	cat := Category{
		Name:        name,
		Image:       trimStringPtr(input.Image),
		Description: trimStringPtr(input.Description),
	}

	if input.IsPremium != nil {
		cat.IsPremium = *input.IsPremium
	}

	if err := db.Create(&cat).Error; err != nil {
		if isUniqueViolation(err) {
			return cat, ErrCategoryNameTaken
		}
		return cat, err
	}

	return cat, nil
}

// Update modifies an existing category.
func Update(db *gorm.DB, id uuid.UUID, input UpdateInput) (Category, error) {
	cat, err := Get(db, id)
	if err != nil {
		return cat, err
	}

	updates := map[string]interface{}{}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return cat, ErrMissingName
		}
		updates["name"] = trimmed
	}

	if input.ImageProvided {
		if input.Image == nil {
			updates["image"] = nil
		} else {
			updates["image"] = strings.TrimSpace(*input.Image)
		}
	}

	if input.DescriptionProvided {
		if input.Description == nil {
			updates["description"] = nil
		} else {
			updates["description"] = strings.TrimSpace(*input.Description)
		}
	}

	if input.IsPremium != nil {
		updates["is_premium"] = *input.IsPremium
	}

	if len(updates) > 0 {
		if err := db.Model(&Category{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return cat, ErrCategoryNameTaken
			}
			return cat, err
		}
	}

	return Get(db, id)
}

// Delete removes a category.
func Delete(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "idx_categories_name")
}

func trimStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
