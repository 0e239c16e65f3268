package watchlist

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/content"
	"github.com/nexstream/ott-server-go/pkg/types"
)

// WatchlistItem is one saved content on a user's watchlist. The unique pair
// keeps the list duplicate-free at the storage level.
type WatchlistItem struct {
	types.BaseModel

	UserID    uuid.UUID `gorm:"type:uuid;not null;column:user_id;uniqueIndex:idx_watchlist_user_content,priority:1" json:"userId"`
	ContentID uuid.UUID `gorm:"type:uuid;not null;column:content_id;uniqueIndex:idx_watchlist_user_content,priority:2" json:"contentId"`

	// Relations
	Content *content.Content `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}

// TableName overrides the default table name.
func (WatchlistItem) TableName() string { return "watchlist_items" }

// Get returns the user's watchlist with contents resolved, newest saves first.
func Get(db *gorm.DB, userID uuid.UUID) ([]WatchlistItem, error) {
	var items []WatchlistItem
	err := db.Where("user_id = ?", userID).
		Preload("Content.Category").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Add puts a content on the user's watchlist. Saving the same content twice
// is a conflict, not a silent no-op, so clients can reflect the state.
func Add(db *gorm.DB, userID, contentID uuid.UUID) (WatchlistItem, error) {
	if _, err := content.Get(db, contentID); err != nil {
		return WatchlistItem{}, err
	}

	var count int64
	if err := db.Model(&WatchlistItem{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Count(&count).Error; err != nil {
		return WatchlistItem{}, err
	}
	if count > 0 {
		return WatchlistItem{}, ErrAlreadyInWatchlist
	}

	item := WatchlistItem{UserID: userID, ContentID: contentID}
	if err := db.Create(&item).Error; err != nil {
		return item, err
	}

	if err := db.Preload("Content.Category").First(&item, "id = ?", item.ID).Error; err != nil {
		return item, err
	}
	return item, nil
}

// Remove takes a content off the user's watchlist.
func Remove(db *gorm.DB, userID, contentID uuid.UUID) error {
	result := db.Delete(&WatchlistItem{}, "user_id = ? AND content_id = ?", userID, contentID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotInWatchlist
	}
	return nil
}
