package bootstrap

import (
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/pkg/database/migrations"
)

func init() {
	migrations.Register("enable-uuid-extension", func(db *gorm.DB) error {
		return db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error
	})

	// The rating and view_count columns on contents are caches over the
	// content_ratings and content_views tables; rebuild them from the
	// source rows.
	migrations.Register("rebuild-content-aggregates", func(db *gorm.DB) error {
		if err := db.Exec(`
			UPDATE contents SET view_count = v.total
			FROM (SELECT content_id, COUNT(*) AS total FROM content_views GROUP BY content_id) v
			WHERE contents.id = v.content_id`).Error; err != nil {
			return err
		}
		return db.Exec(`
			UPDATE contents SET rating = r.avg_rating
			FROM (SELECT content_id, ROUND(AVG(rating)::numeric, 2) AS avg_rating FROM content_ratings GROUP BY content_id) r
			WHERE contents.id = r.content_id`).Error
	})
}
