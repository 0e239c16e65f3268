package content

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/category"
	"github.com/nexstream/ott-server-go/pkg/types"
)

// Content represents a movie or webseries in the catalog. Rating and
// ViewCount are aggregate caches maintained in the same transaction as the
// side-table mutations that change them.
type Content struct {
	types.BaseModel

	Title             string            `gorm:"type:varchar(200);not null;uniqueIndex" json:"title"`
	Thumbnail         *string           `gorm:"type:varchar(500)" json:"thumbnail,omitempty"`
	BgImage           *string           `gorm:"type:varchar(500);column:bg_image" json:"bgImage,omitempty"`
	Video             *string           `gorm:"type:varchar(500)" json:"video,omitempty"`
	ReleaseYear       *int              `gorm:"type:int;column:release_year" json:"releaseYear,omitempty"`
	Duration          *int              `gorm:"type:int" json:"duration,omitempty"`
	CategoryID        uuid.UUID         `gorm:"type:uuid;not null;column:category_id;index" json:"categoryId"`
	Languages         pq.StringArray    `gorm:"type:text[]" json:"languages"`
	Description       string            `gorm:"type:varchar(2000)" json:"description"`
	Genre             *string           `gorm:"type:varchar(100)" json:"genre,omitempty"`
	ContentDescriptor *string           `gorm:"type:varchar(200);column:content_descriptor" json:"contentDescriptor,omitempty"`
	Director          *string           `gorm:"type:varchar(100)" json:"director,omitempty"`
	LongDescription   *string           `gorm:"type:text;column:long_description" json:"longDescription,omitempty"`
	Type              types.ContentType `gorm:"type:varchar(20);not null" json:"type"`
	Rating            float64           `gorm:"type:numeric(3,2);not null;default:0" json:"rating"`
	ViewCount         int64             `gorm:"type:bigint;not null;default:0;column:view_count" json:"views"`

	// Relations
	Category *category.Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName overrides the default table name.
func (Content) TableName() string { return "contents" }

// ContentRating is one user's rating of one content row. The unique composite
// index makes the at-most-one-rating rule a storage invariant.
type ContentRating struct {
	types.BaseModel

	ContentID uuid.UUID `gorm:"type:uuid;not null;column:content_id;uniqueIndex:idx_content_ratings_content_user,priority:1" json:"contentId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;column:user_id;uniqueIndex:idx_content_ratings_content_user,priority:2" json:"userId"`
	Rating    int       `gorm:"type:int;not null" json:"rating"`
}

// TableName overrides the default table name.
func (ContentRating) TableName() string { return "content_ratings" }

// ContentView records that a user has viewed a content at least once.
// Distinct-viewer counting falls out of the unique pair.
type ContentView struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContentID uuid.UUID `gorm:"type:uuid;not null;column:content_id;uniqueIndex:idx_content_views_content_user,priority:1" json:"contentId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;column:user_id;uniqueIndex:idx_content_views_content_user,priority:2" json:"userId"`
	ViewedAt  time.Time `gorm:"type:timestamptz;not null;column:viewed_at;index" json:"viewedAt"`
}

// TableName overrides the default table name.
func (ContentView) TableName() string { return "content_views" }

// CreateInput carries data for creating catalog content.
type CreateInput struct {
	Title             string
	Thumbnail         *string
	BgImage           *string
	Video             *string
	ReleaseYear       *int
	Duration          *int
	CategoryID        uuid.UUID
	Languages         []string
	Description       string
	Genre             *string
	ContentDescriptor *string
	Director          *string
	LongDescription   *string
	Type              types.ContentType
}

// UpdateInput captures mutable content fields.
type UpdateInput struct {
	Title             *string
	Thumbnail         *string
	BgImage           *string
	Video             *string
	ReleaseYear       *int
	Duration          *int
	CategoryID        *uuid.UUID
	Languages         []string
	LanguagesProvided bool
	Description       *string
	Genre             *string
	ContentDescriptor *string
	Director          *string
	LongDescription   *string
	Type              *types.ContentType
}

// List returns all catalog content with categories resolved.
func List(db *gorm.DB) ([]Content, error) {
	var contents []Content
	if err := db.Preload("Category").Order("created_at DESC").Find(&contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}

// Get retrieves a content row by ID with its category resolved.
func Get(db *gorm.DB, id uuid.UUID) (Content, error) {
	var item Content
	if err := db.Preload("Category").First(&item, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return item, ErrContentNotFound
		}
		return item, err
	}
	return item, nil
}

// Create inserts new catalog content after validating the category reference
// and the unique title.
func Create(db *gorm.DB, input CreateInput) (Content, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || input.Description == "" || len(input.Languages) == 0 {
		return Content{}, ErrMissingFields
	}

	if input.Type != types.ContentTypeMovie && input.Type != types.ContentTypeWebseries {
		return Content{}, ErrInvalidType
	}

	if _, err := category.Get(db, input.CategoryID); err != nil {
		return Content{}, err
	}

	item := Content{
		Title:             title,
		Thumbnail:         input.Thumbnail,
		BgImage:           input.BgImage,
		Video:             input.Video,
		ReleaseYear:       input.ReleaseYear,
		Duration:          input.Duration,
		CategoryID:        input.CategoryID,
		Languages:         pq.StringArray(input.Languages),
		Description:       strings.TrimSpace(input.Description),
		Genre:             input.Genre,
		ContentDescriptor: input.ContentDescriptor,
		Director:          input.Director,
		LongDescription:   input.LongDescription,
		Type:              input.Type,
	}

	if err := db.Create(&item).Error; err != nil {
		if isTitleViolation(err) {
			return item, ErrTitleTaken
		}
		return item, err
	}

	return Get(db, item.ID)
}

// Update modifies existing catalog content.
func Update(db *gorm.DB, id uuid.UUID, input UpdateInput) (Content, error) {
	item, err := Get(db, id)
	if err != nil {
		return item, err
	}

	updates := map[string]interface{}{}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return item, ErrMissingFields
		}
		updates["title"] = trimmed
	}
	if input.Thumbnail != nil {
		updates["thumbnail"] = *input.Thumbnail
	}
	if input.BgImage != nil {
		updates["bg_image"] = *input.BgImage
	}
	if input.Video != nil {
		updates["video"] = *input.Video
	}
	if input.ReleaseYear != nil {
		updates["release_year"] = *input.ReleaseYear
	}
	if input.Duration != nil {
		updates["duration"] = *input.Duration
	}
	if input.CategoryID != nil {
		if _, err := category.Get(db, *input.CategoryID); err != nil {
			return item, err
		}
		updates["category_id"] = *input.CategoryID
	}
	if input.LanguagesProvided {
		updates["languages"] = pq.StringArray(input.Languages)
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Genre != nil {
		updates["genre"] = *input.Genre
	}
	if input.ContentDescriptor != nil {
		updates["content_descriptor"] = *input.ContentDescriptor
	}
	if input.Director != nil {
		updates["director"] = *input.Director
	}
	if input.LongDescription != nil {
		updates["long_description"] = *input.LongDescription
	}
	if input.Type != nil {
		if *input.Type != types.ContentTypeMovie && *input.Type != types.ContentTypeWebseries {
			return item, ErrInvalidType
		}
		updates["type"] = *input.Type
	}

	if len(updates) > 0 {
		if err := db.Model(&Content{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			if isTitleViolation(err) {
				return item, ErrTitleTaken
			}
			return item, err
		}
	}

	return Get(db, id)
}

// Delete removes content together with its rating and view side tables.
// Storage object cleanup is the caller's responsibility (best effort).
func Delete(db *gorm.DB, id uuid.UUID) (Content, error) {
	item, err := Get(db, id)
	if err != nil {
		return item, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&ContentRating{}, "content_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&ContentView{}, "content_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Content{}, "id = ?", id).Error
	})
	if err != nil {
		return item, err
	}

	return item, nil
}

func isTitleViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "idx_contents_title")
}
