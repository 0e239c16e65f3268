package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/category"
	"github.com/nexstream/ott-server-go/pkg/types"
)

// GenreGroup buckets contents sharing a genre label.
type GenreGroup struct {
	Genre    string    `json:"genre"`
	Contents []Content `json:"contents"`
}

// CategoryGroup buckets the most popular contents of one category.
type CategoryGroup struct {
	Category category.Category `json:"category"`
	Contents []Content         `json:"contents"`
}

func baseListing(db *gorm.DB) *gorm.DB {
	return db.Model(&Content{}).Preload("Category")
}

// TrendingMovies returns the ten most viewed movies, ties broken by rating.
func TrendingMovies(db *gorm.DB) ([]Content, error) {
	var contents []Content
	err := baseListing(db).
		Where("type = ?", types.ContentTypeMovie).
		Order("view_count DESC").Order("rating DESC").
		Limit(10).
		Find(&contents).Error
	return contents, err
}

// PopularSeries returns the ten most viewed webseries, ties broken by rating.
func PopularSeries(db *gorm.DB) ([]Content, error) {
	var contents []Content
	err := baseListing(db).
		Where("type = ?", types.ContentTypeWebseries).
		Order("view_count DESC").Order("rating DESC").
		Limit(10).
		Find(&contents).Error
	return contents, err
}

// PopularMovies returns the twenty best rated movies, ties broken by views.
func PopularMovies(db *gorm.DB) ([]Content, error) {
	var contents []Content
	err := baseListing(db).
		Where("type = ?", types.ContentTypeMovie).
		Order("rating DESC").Order("view_count DESC").
		Limit(20).
		Find(&contents).Error
	return contents, err
}

// TopThisWeek returns the ten most viewed contents added within the last
// seven days.
func TopThisWeek(db *gorm.DB) ([]Content, error) {
	var contents []Content
	cutoff := time.Now().AddDate(0, 0, -7)
	err := baseListing(db).
		Where("created_at >= ?", cutoff).
		Order("view_count DESC").Order("rating DESC").
		Limit(10).
		Find(&contents).Error
	return contents, err
}

// TopTen returns the ten most viewed contents across both types.
func TopTen(db *gorm.DB) ([]Content, error) {
	var contents []Content
	err := baseListing(db).
		Order("view_count DESC").Order("rating DESC").
		Limit(10).
		Find(&contents).Error
	return contents, err
}

// TopRated returns the full catalog ordered by rating.
func TopRated(db *gorm.DB) ([]Content, error) {
	var contents []Content
	err := baseListing(db).
		Order("rating DESC").
		Find(&contents).Error
	return contents, err
}

// LatestFive returns the five most recently added contents.
func LatestFive(db *gorm.DB) ([]Content, error) {
	var contents []Content
	err := baseListing(db).
		Order("created_at DESC").
		Limit(5).
		Find(&contents).Error
	return contents, err
}

// GroupedByGenre partitions the catalog by genre label. Rows without a genre
// are skipped. Group order follows the first appearance of each genre in a
// rating-ordered scan, so stronger genres surface first.
func GroupedByGenre(db *gorm.DB) ([]GenreGroup, error) {
	var contents []Content
	err := baseListing(db).
		Order("rating DESC").Order("view_count DESC").
		Find(&contents).Error
	if err != nil {
		return nil, err
	}

	index := map[string]int{}
	var groups []GenreGroup
	for _, item := range contents {
		if item.Genre == nil || *item.Genre == "" {
			continue
		}
		genre := *item.Genre
		pos, ok := index[genre]
		if !ok {
			pos = len(groups)
			index[genre] = pos
			groups = append(groups, GenreGroup{Genre: genre})
		}
		groups[pos].Contents = append(groups[pos].Contents, item)
	}
	return groups, nil
}

// PopularByCategory returns, per category, its ten best rated contents.
// Categories with no content are omitted.
func PopularByCategory(db *gorm.DB) ([]CategoryGroup, error) {
	categories, err := category.List(db)
	if err != nil {
		return nil, err
	}

	var groups []CategoryGroup
	for _, cat := range categories {
		var contents []Content
		err := baseListing(db).
			Where("category_id = ?", cat.ID).
			Order("rating DESC").Order("view_count DESC").
			Limit(10).
			Find(&contents).Error
		if err != nil {
			return nil, err
		}
		if len(contents) == 0 {
			continue
		}
		groups = append(groups, CategoryGroup{Category: cat, Contents: contents})
	}
	return groups, nil
}

// ByCategory lists all contents in one category, best rated first.
func ByCategory(db *gorm.DB, categoryID uuid.UUID) ([]Content, error) {
	if _, err := category.Get(db, categoryID); err != nil {
		return nil, err
	}

	var contents []Content
	err := baseListing(db).
		Where("category_id = ?", categoryID).
		Order("rating DESC").Order("view_count DESC").
		Find(&contents).Error
	return contents, err
}
