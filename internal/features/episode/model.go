package episode

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/content"
	"github.com/nexstream/ott-server-go/pkg/types"
)

// Episode is one episode of a webseries. Uniqueness is enforced per parent
// content both on the title (case-insensitive) and on the season/episode
// number pair.
type Episode struct {
	types.BaseModel

	ContentID   uuid.UUID `gorm:"type:uuid;not null;column:content_id;index;uniqueIndex:idx_episodes_content_season_episode,priority:1" json:"contentId"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	SeasonNo    int       `gorm:"type:int;not null;column:season_no;uniqueIndex:idx_episodes_content_season_episode,priority:2" json:"seasonNo"`
	EpisodeNo   int       `gorm:"type:int;not null;column:episode_no;uniqueIndex:idx_episodes_content_season_episode,priority:3" json:"episodeNo"`
	Description *string   `gorm:"type:varchar(2000)" json:"description,omitempty"`
	Duration    *int      `gorm:"type:int" json:"duration,omitempty"`
	Thumbnail   *string   `gorm:"type:varchar(500)" json:"thumbnail,omitempty"`
	Video       *string   `gorm:"type:varchar(500)" json:"video,omitempty"`
}

// TableName overrides the default table name.
func (Episode) TableName() string { return "episodes" }

// CreateInput carries data for creating an episode.
type CreateInput struct {
	ContentID   uuid.UUID
	Title       string
	SeasonNo    int
	EpisodeNo   int
	Description *string
	Duration    *int
	Thumbnail   *string
	Video       *string
}

// UpdateInput captures mutable episode fields.
type UpdateInput struct {
	Title       *string
	SeasonNo    *int
	EpisodeNo   *int
	Description *string
	Duration    *int
	Thumbnail   *string
	Video       *string
}

// ListByContent returns the episodes of one content in watch order.
func ListByContent(db *gorm.DB, contentID uuid.UUID) ([]Episode, error) {
	if _, err := content.Get(db, contentID); err != nil {
		return nil, err
	}

	var episodes []Episode
	err := db.Where("content_id = ?", contentID).
		Order("season_no ASC").Order("episode_no ASC").
		Find(&episodes).Error
	if err != nil {
		return nil, err
	}
	return episodes, nil
}

// Get retrieves an episode by ID.
func Get(db *gorm.DB, id uuid.UUID) (Episode, error) {
	var ep Episode
	if err := db.First(&ep, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ep, ErrEpisodeNotFound
		}
		return ep, err
	}
	return ep, nil
}

// Create adds an episode under an existing content after checking both
// uniqueness rules.
func Create(db *gorm.DB, input CreateInput) (Episode, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || input.SeasonNo < 1 || input.EpisodeNo < 1 {
		return Episode{}, ErrMissingFields
	}

	if _, err := content.Get(db, input.ContentID); err != nil {
		return Episode{}, err
	}

	if err := checkUniqueness(db, input.ContentID, title, input.SeasonNo, input.EpisodeNo, uuid.Nil); err != nil {
		return Episode{}, err
	}

	ep := Episode{
		ContentID:   input.ContentID,
		Title:       title,
		SeasonNo:    input.SeasonNo,
		EpisodeNo:   input.EpisodeNo,
		Description: input.Description,
		Duration:    input.Duration,
		Thumbnail:   input.Thumbnail,
		Video:       input.Video,
	}

	if err := db.Create(&ep).Error; err != nil {
		if isNumberViolation(err) {
			return ep, ErrEpisodeNumberTaken
		}
		return ep, err
	}

	return ep, nil
}

// Update modifies an episode, re-validating uniqueness when the title or the
// numbering changes.
func Update(db *gorm.DB, id uuid.UUID, input UpdateInput) (Episode, error) {
	ep, err := Get(db, id)
	if err != nil {
		return ep, err
	}

	title := ep.Title
	seasonNo := ep.SeasonNo
	episodeNo := ep.EpisodeNo

	updates := map[string]interface{}{}

	if input.Title != nil {
		title = strings.TrimSpace(*input.Title)
		if title == "" {
			return ep, ErrMissingFields
		}
		updates["title"] = title
	}
	if input.SeasonNo != nil {
		if *input.SeasonNo < 1 {
			return ep, ErrMissingFields
		}
		seasonNo = *input.SeasonNo
		updates["season_no"] = seasonNo
	}
	if input.EpisodeNo != nil {
		if *input.EpisodeNo < 1 {
			return ep, ErrMissingFields
		}
		episodeNo = *input.EpisodeNo
		updates["episode_no"] = episodeNo
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Duration != nil {
		updates["duration"] = *input.Duration
	}
	if input.Thumbnail != nil {
		updates["thumbnail"] = *input.Thumbnail
	}
	if input.Video != nil {
		updates["video"] = *input.Video
	}

	if len(updates) > 0 {
		if err := checkUniqueness(db, ep.ContentID, title, seasonNo, episodeNo, ep.ID); err != nil {
			return ep, err
		}
		if err := db.Model(&Episode{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			if isNumberViolation(err) {
				return ep, ErrEpisodeNumberTaken
			}
			return ep, err
		}
	}

	return Get(db, id)
}

// Delete removes an episode.
func Delete(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&Episode{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEpisodeNotFound
	}
	return nil
}

// checkUniqueness enforces both per-content uniqueness rules. The title check
// is case-insensitive and cannot be expressed as a plain unique index, so it
// runs as a query; excludeID skips the row being updated.
func checkUniqueness(db *gorm.DB, contentID uuid.UUID, title string, seasonNo, episodeNo int, excludeID uuid.UUID) error {
	var count int64

	query := db.Model(&Episode{}).
		Where("content_id = ? AND LOWER(title) = LOWER(?)", contentID, title)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEpisodeTitleTaken
	}

	query = db.Model(&Episode{}).
		Where("content_id = ? AND season_no = ? AND episode_no = ?", contentID, seasonNo, episodeNo)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEpisodeNumberTaken
	}

	return nil
}

func isNumberViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "idx_episodes_content_season_episode")
}
