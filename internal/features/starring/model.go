package starring

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/content"
	"github.com/nexstream/ott-server-go/pkg/types"
)

// Starring is a cast member. ContentIDs carries the catalog entries the
// person appears in; the array holds each ID at most once.
type Starring struct {
	types.BaseModel

	Name       string         `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Image      *string        `gorm:"type:varchar(500)" json:"image,omitempty"`
	ContentIDs pq.StringArray `gorm:"type:text[];column:content_ids" json:"contentIds"`
}

// TableName overrides the default table name.
func (Starring) TableName() string { return "starrings" }

// CreateInput carries data for creating a cast member.
type CreateInput struct {
	Name      string
	Image     *string
	ContentID *uuid.UUID
}

// UpdateInput captures mutable cast member fields. AddContentID and
// RemoveContentID edit the appearance list.
type UpdateInput struct {
	Name            *string
	Image           *string
	ImageProvided   bool
	AddContentID    *uuid.UUID
	RemoveContentID *uuid.UUID
}

// appendContentID adds an ID to the appearance list unless it is already
// present.
func appendContentID(ids pq.StringArray, id uuid.UUID) pq.StringArray {
	value := id.String()
	for _, existing := range ids {
		if existing == value {
			return ids
		}
	}
	return append(ids, value)
}

// removeContentID drops an ID from the appearance list. Unknown IDs are a
// no-op.
func removeContentID(ids pq.StringArray, id uuid.UUID) pq.StringArray {
	value := id.String()
	result := make(pq.StringArray, 0, len(ids))
	for _, existing := range ids {
		if existing == value {
			continue
		}
		result = append(result, existing)
	}
	return result
}

// List queries all cast members.
func List(db *gorm.DB) ([]Starring, error) {
	var starrings []Starring
	if err := db.Order("created_at DESC").Find(&starrings).Error; err != nil {
		return nil, err
	}
	return starrings, nil
}

// Get retrieves a cast member by ID.
func Get(db *gorm.DB, id uuid.UUID) (Starring, error) {
	var star Starring
	if err := db.First(&star, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return star, ErrStarringNotFound
		}
		return star, err
	}
	return star, nil
}

// Create inserts a new cast member, optionally linked to one content.
func Create(db *gorm.DB, input CreateInput) (Starring, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Starring{}, ErrMissingName
	}

	var count int64
	if err := db.Model(&Starring{}).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Count(&count).Error; err != nil {
		return Starring{}, err
	}
	if count > 0 {
		return Starring{}, ErrNameTaken
	}

	star := Starring{Name: name, Image: input.Image, ContentIDs: pq.StringArray{}}
	if input.ContentID != nil {
		if _, err := content.Get(db, *input.ContentID); err != nil {
			return Starring{}, err
		}
		star.ContentIDs = appendContentID(star.ContentIDs, *input.ContentID)
	}

	if err := db.Create(&star).Error; err != nil {
		if strings.Contains(err.Error(), "idx_starrings_name") {
			return star, ErrNameTaken
		}
		return star, err
	}

	return star, nil
}

// Update modifies a cast member and edits its appearance list.
func Update(db *gorm.DB, id uuid.UUID, input UpdateInput) (Starring, error) {
	star, err := Get(db, id)
	if err != nil {
		return star, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return star, ErrMissingName
		}
		star.Name = name
	}

	if input.ImageProvided {
		star.Image = input.Image
	}

	if input.AddContentID != nil {
		if _, err := content.Get(db, *input.AddContentID); err != nil {
			return star, err
		}
		star.ContentIDs = appendContentID(star.ContentIDs, *input.AddContentID)
	}

	if input.RemoveContentID != nil {
		star.ContentIDs = removeContentID(star.ContentIDs, *input.RemoveContentID)
	}

	if err := db.Save(&star).Error; err != nil {
		if strings.Contains(err.Error(), "idx_starrings_name") {
			return star, ErrNameTaken
		}
		return star, err
	}

	return star, nil
}

// Delete removes a cast member.
func Delete(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&Starring{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStarringNotFound
	}
	return nil
}
