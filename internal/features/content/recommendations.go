package content

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const recommendationLimit = 10

// preferenceSets collects the distinct genres and category IDs of the
// contents a user has saved. Rows without a genre contribute only their
// category.
func preferenceSets(contents []Content) ([]string, []uuid.UUID) {
	genreSeen := map[string]bool{}
	categorySeen := map[uuid.UUID]bool{}
	var genres []string
	var categories []uuid.UUID

	for _, item := range contents {
		if item.Genre != nil && *item.Genre != "" && !genreSeen[*item.Genre] {
			genreSeen[*item.Genre] = true
			genres = append(genres, *item.Genre)
		}
		if item.CategoryID != uuid.Nil && !categorySeen[item.CategoryID] {
			categorySeen[item.CategoryID] = true
			categories = append(categories, item.CategoryID)
		}
	}

	return genres, categories
}

// fillToLimit merges preference matches with popular fallbacks, keeping the
// match order, dropping duplicates, and capping the result.
func fillToLimit(matched, popular []Content, limit int) []Content {
	seen := map[uuid.UUID]bool{}
	result := make([]Content, 0, limit)

	for _, list := range [][]Content{matched, popular} {
		for _, item := range list {
			if len(result) == limit {
				return result
			}
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			result = append(result, item)
		}
	}

	return result
}

func popularExcluding(db *gorm.DB, exclude []uuid.UUID, limit int) ([]Content, error) {
	query := baseListing(db)
	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}

	var contents []Content
	err := query.
		Order("rating DESC").Order("view_count DESC").
		Limit(limit).
		Find(&contents).Error
	return contents, err
}

// Recommended builds a per-user rail from watchlist preferences: contents
// sharing a genre or category with anything the user saved, excluding the
// saved titles themselves, best rated first. A user with an empty watchlist
// gets the popular rail, and thin matches are topped up with popular titles
// until the rail holds ten entries.
func Recommended(db *gorm.DB, userID uuid.UUID) ([]Content, error) {
	var savedIDs []uuid.UUID
	err := db.Table("watchlist_items").
		Where("user_id = ?", userID).
		Pluck("content_id", &savedIDs).Error
	if err != nil {
		return nil, err
	}

	if len(savedIDs) == 0 {
		return popularExcluding(db, nil, recommendationLimit)
	}

	var saved []Content
	if err := db.Where("id IN ?", savedIDs).Find(&saved).Error; err != nil {
		return nil, err
	}

	genres, categories := preferenceSets(saved)
	if len(genres) == 0 && len(categories) == 0 {
		return popularExcluding(db, savedIDs, recommendationLimit)
	}

	query := baseListing(db).Where("id NOT IN ?", savedIDs)
	switch {
	case len(genres) > 0 && len(categories) > 0:
		query = query.Where("genre IN ? OR category_id IN ?", genres, categories)
	case len(genres) > 0:
		query = query.Where("genre IN ?", genres)
	default:
		query = query.Where("category_id IN ?", categories)
	}

	var matched []Content
	err = query.
		Order("rating DESC").Order("view_count DESC").
		Limit(recommendationLimit).
		Find(&matched).Error
	if err != nil {
		return nil, err
	}

	if len(matched) >= recommendationLimit {
		return matched, nil
	}

	exclude := savedIDs
	for _, item := range matched {
		exclude = append(exclude, item.ID)
	}

	popular, err := popularExcluding(db, exclude, recommendationLimit-len(matched))
	if err != nil {
		return nil, err
	}

	return fillToLimit(matched, popular, recommendationLimit), nil
}
