package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordView marks content as viewed by a user. The unique (content, user)
// pair makes repeat views no-ops at the database level, so the aggregate
// counter is only bumped when the insert actually landed a row.
func RecordView(db *gorm.DB, contentID, userID uuid.UUID) (Content, error) {
	if _, err := Get(db, contentID); err != nil {
		return Content{}, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		view := ContentView{ContentID: contentID, UserID: userID, ViewedAt: time.Now()}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&view)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		return tx.Model(&Content{}).
			Where("id = ?", contentID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	})
	if err != nil {
		return Content{}, err
	}

	return Get(db, contentID)
}

// WatchAgain returns the contents a user has viewed, most recently viewed
// first, capped at twenty entries.
func WatchAgain(db *gorm.DB, userID uuid.UUID) ([]Content, error) {
	var contents []Content
	err := db.
		Joins("JOIN content_views ON content_views.content_id = contents.id").
		Where("content_views.user_id = ?", userID).
		Order("content_views.viewed_at DESC").
		Limit(20).
		Preload("Category").
		Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}
