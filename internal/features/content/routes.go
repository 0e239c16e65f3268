package content

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/pkg/cache"
	"github.com/nexstream/ott-server-go/pkg/storage"
)

// RegisterRoutes wires content endpoints into the API group.
// Middleware is passed as parameters to avoid import cycles
func RegisterRoutes(api *gin.RouterGroup, db *gorm.DB, logger *slog.Logger, cacheClient cache.Client, signer *storage.Signer, store *storage.Client, requireAuth, optionalAuth gin.HandlerFunc) {
	handler := NewHandler(db, logger, cacheClient, signer, store)

	contents := api.Group("/content")

	// Catalog browsing. The premium gate runs inside the handlers, so these
	// only need the viewer attached when a token is present.
	contents.GET("", optionalAuth, handler.List)
	contents.GET("/listings/trending", handler.Trending)
	contents.GET("/listings/popularSeries", handler.PopularSeries)
	contents.GET("/listings/popularMovies", handler.PopularMovies)
	contents.GET("/listings/topThisWeek", handler.TopThisWeek)
	contents.GET("/listings/top10", handler.TopTen)
	contents.GET("/listings/topRated", handler.TopRated)
	contents.GET("/listings/latest", handler.LatestFive)
	contents.GET("/listings/genres", handler.GroupedByGenre)
	contents.GET("/listings/popularByCategory", handler.PopularByCategory)
	contents.GET("/listings/recommended", requireAuth, handler.Recommended)
	contents.GET("/category/:categoryId", handler.ByCategory)
	contents.GET("/watchAgain", requireAuth, handler.WatchAgain)
	contents.GET("/:contentId", optionalAuth, handler.GetByID)
	contents.GET("/streamVideo/:contentId", optionalAuth, handler.StreamVideo)

	// Ratings and views
	contents.GET("/:contentId/rating", handler.RatingDetails)
	contents.POST("/:contentId/rating", requireAuth, handler.Rate)
	contents.PATCH("/:contentId/rating", requireAuth, handler.UpdateRating)
	contents.DELETE("/:contentId/rating", requireAuth, handler.DeleteRating)
	contents.POST("/:contentId/view", requireAuth, handler.RecordView)

	// Catalog management
	contents.POST("", requireAuth, handler.Create)
	contents.PATCH("/:contentId", requireAuth, handler.Update)
	contents.DELETE("/:contentId", requireAuth, handler.Delete)
}
