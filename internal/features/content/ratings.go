package content

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RatingDetails summarizes all ratings for one content row.
type RatingDetails struct {
	ContentID    uuid.UUID       `json:"contentId"`
	Average      float64         `json:"average"`
	Count        int64           `json:"count"`
	Distribution map[int]int64   `json:"distribution"`
	Recent       []ContentRating `json:"recent"`
}

// AverageRating computes the mean of raw rating values rounded to two
// decimal places. An empty slice averages to zero.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*100) / 100
}

// duplicateRatingOutcome maps the result of the existing-rating lookup to
// the at-most-one-rating rule: a found row is a conflict, a missing row
// clears the insert, anything else propagates.
func duplicateRatingOutcome(lookupErr error) error {
	if lookupErr == nil {
		return ErrAlreadyRated
	}
	if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
		return nil
	}
	return lookupErr
}

// Rate records a user's rating. Each user rates a content at most once;
// a second attempt is rejected rather than silently overwritten. The
// content's aggregate average is recomputed in the same transaction.
func Rate(db *gorm.DB, contentID, userID uuid.UUID, rating int) (Content, error) {
	if rating < 1 || rating > 5 {
		return Content{}, ErrInvalidRating
	}

	if _, err := Get(db, contentID); err != nil {
		return Content{}, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing ContentRating
		lookupErr := tx.First(&existing, "content_id = ? AND user_id = ?", contentID, userID).Error
		if err := duplicateRatingOutcome(lookupErr); err != nil {
			return err
		}

		if err := tx.Create(&ContentRating{ContentID: contentID, UserID: userID, Rating: rating}).Error; err != nil {
			return err
		}

		return refreshAverage(tx, contentID)
	})
	if err != nil {
		return Content{}, err
	}

	return Get(db, contentID)
}

// UpdateRating replaces a user's existing rating and recomputes the average.
func UpdateRating(db *gorm.DB, contentID, userID uuid.UUID, rating int) (Content, error) {
	if rating < 1 || rating > 5 {
		return Content{}, ErrInvalidRating
	}

	if _, err := Get(db, contentID); err != nil {
		return Content{}, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ContentRating{}).
			Where("content_id = ? AND user_id = ?", contentID, userID).
			Update("rating", rating)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRatingNotFound
		}

		return refreshAverage(tx, contentID)
	})
	if err != nil {
		return Content{}, err
	}

	return Get(db, contentID)
}

// DeleteRating removes a user's rating and recomputes the average. With no
// ratings left the aggregate falls back to zero.
func DeleteRating(db *gorm.DB, contentID, userID uuid.UUID) (Content, error) {
	if _, err := Get(db, contentID); err != nil {
		return Content{}, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&ContentRating{}, "content_id = ? AND user_id = ?", contentID, userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRatingNotFound
		}

		return refreshAverage(tx, contentID)
	})
	if err != nil {
		return Content{}, err
	}

	return Get(db, contentID)
}

// GetRatingDetails returns the average, total count, per-star distribution
// and the five most recent ratings.
func GetRatingDetails(db *gorm.DB, contentID uuid.UUID) (RatingDetails, error) {
	item, err := Get(db, contentID)
	if err != nil {
		return RatingDetails{}, err
	}

	details := RatingDetails{
		ContentID:    contentID,
		Average:      item.Rating,
		Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	type bucket struct {
		Rating int
		Total  int64
	}
	var buckets []bucket
	err = db.Model(&ContentRating{}).
		Select("rating, COUNT(*) AS total").
		Where("content_id = ?", contentID).
		Group("rating").
		Scan(&buckets).Error
	if err != nil {
		return details, err
	}

	for _, b := range buckets {
		details.Distribution[b.Rating] = b.Total
		details.Count += b.Total
	}

	err = db.Where("content_id = ?", contentID).
		Order("created_at DESC").
		Limit(5).
		Find(&details.Recent).Error
	if err != nil {
		return details, err
	}

	return details, nil
}

func refreshAverage(tx *gorm.DB, contentID uuid.UUID) error {
	var ratings []int
	if err := tx.Model(&ContentRating{}).Where("content_id = ?", contentID).Pluck("rating", &ratings).Error; err != nil {
		return err
	}

	return tx.Model(&Content{}).
		Where("id = ?", contentID).
		Updates(map[string]interface{}{"rating": AverageRating(ratings), "updated_at": time.Now()}).Error
}
