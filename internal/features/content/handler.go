package content

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/category"
	"github.com/nexstream/ott-server-go/internal/middleware"
	"github.com/nexstream/ott-server-go/pkg/cache"
	"github.com/nexstream/ott-server-go/pkg/request"
	"github.com/nexstream/ott-server-go/pkg/response"
	"github.com/nexstream/ott-server-go/pkg/storage"
	"github.com/nexstream/ott-server-go/pkg/types"
)

const listingTTL = 60 * time.Second

// Listing cache keys. Kept in one place so mutations can invalidate the
// whole family at once.
var listingKeys = []string{
	"content:listings:trending",
	"content:listings:popular-series",
	"content:listings:popular-movies",
	"content:listings:top-week",
	"content:listings:top10",
	"content:listings:top-rated",
	"content:listings:latest",
	"content:listings:genres",
	"content:listings:by-category",
}

// Handler processes content HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
	cache  cache.Client
	signer *storage.Signer
	store  *storage.Client
}

// NewHandler constructs a content handler instance. The signer and store may
// be nil when streaming/storage is not configured; the affected endpoints
// degrade gracefully.
func NewHandler(db *gorm.DB, logger *slog.Logger, cacheClient cache.Client, signer *storage.Signer, store *storage.Client) *Handler {
	return &Handler{db: db, logger: logger, cache: cacheClient, signer: signer, store: store}
}

func (h *Handler) access(c *gin.Context) *Access {
	viewer, ok := middleware.GetViewerFromContext(c)
	if !ok {
		return nil
	}
	return &Access{
		UserID:   viewer.ID,
		Entitled: viewer.HasActiveEntitlement(time.Now()),
	}
}

// sanitize replaces raw video URLs with the in-app stream reference on
// listing responses so storage URLs never leave the service.
func sanitize(contents []Content) []Content {
	for i := range contents {
		if contents[i].Video != nil {
			path := streamPathFor(contents[i].ID)
			contents[i].Video = &path
		}
	}
	return contents
}

// List returns the whole catalog.
func (h *Handler) List(c *gin.Context) {
	contents, err := List(h.db)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to list content", err)
		return
	}

	response.Success(c, http.StatusOK, sanitize(contents), "", nil)
}

// GetByID returns one content row, applying the premium gate.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("contentId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid content ID.", err)
		return
	}

	item, err := GetForViewer(h.db, id, h.access(c))
	if err != nil {
		h.respondError(c, err, "failed to load content")
		return
	}

	response.Success(c, http.StatusOK, item, "", nil)
}

// StreamVideo re-checks the premium gate and redirects to a short-lived
// signed playback URL.
func (h *Handler) StreamVideo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("contentId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid content ID.", err)
		return
	}

	source, err := StreamSource(h.db, id, h.access(c))
	if err != nil {
		h.respondError(c, err, "failed to resolve video source")
		return
	}

	if h.signer == nil {
		c.Redirect(http.StatusFound, source)
		return
	}

	videoPath := source
	if h.store != nil {
		videoPath = h.store.ExtractRelativePath(source)
	}

	signed, err := h.signer.SignedPlaybackURL(videoPath)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to sign playback URL", err)
		return
	}

	c.Redirect(http.StatusFound, signed)
}

type createRequest struct {
	Title             string   `json:"title" binding:"required"`
	Thumbnail         *string  `json:"thumbnail"`
	BgImage           *string  `json:"bgImage"`
	Video             *string  `json:"video"`
	ReleaseYear       *int     `json:"releaseYear"`
	Duration          *int     `json:"duration"`
	CategoryID        string   `json:"categoryId" binding:"required"`
	Languages         []string `json:"languages" binding:"required"`
	Description       string   `json:"description" binding:"required"`
	Genre             *string  `json:"genre"`
	ContentDescriptor *string  `json:"contentDescriptor"`
	Director          *string  `json:"director"`
	LongDescription   *string  `json:"longDescription"`
	Type              string   `json:"type" binding:"required"`
}

// Create adds new catalog content.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Title, description, languages, categoryId and type are required fields.", err)
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid category ID format.", err)
		return
	}

	item, err := Create(h.db, CreateInput{
		Title:             req.Title,
		Thumbnail:         req.Thumbnail,
		BgImage:           req.BgImage,
		Video:             req.Video,
		ReleaseYear:       req.ReleaseYear,
		Duration:          req.Duration,
		CategoryID:        categoryID,
		Languages:         req.Languages,
		Description:       req.Description,
		Genre:             req.Genre,
		ContentDescriptor: req.ContentDescriptor,
		Director:          req.Director,
		LongDescription:   req.LongDescription,
		Type:              types.ContentType(req.Type),
	})
	if err != nil {
		h.respondError(c, err, "failed to create content")
		return
	}

	h.invalidateListings(c)
	response.Created(c, item, "Content created successfully")
}

// Update applies a partial update to catalog content.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("contentId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid content ID.", err)
		return
	}

	body := map[string]interface{}{}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid content payload", err)
		return
	}

	input := UpdateInput{}

	if value, ok := body["title"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "title must be a string", err)
			return
		}
		input.Title = &str
	}

	stringFields := []struct {
		key  string
		dest **string
	}{
		{"thumbnail", &input.Thumbnail},
		{"bgImage", &input.BgImage},
		{"video", &input.Video},
		{"description", &input.Description},
		{"genre", &input.Genre},
		{"contentDescriptor", &input.ContentDescriptor},
		{"director", &input.Director},
		{"longDescription", &input.LongDescription},
	}
	for _, field := range stringFields {
		value, ok := body[field.key]
		if !ok || value == nil {
			continue
		}
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, field.key+" must be a string", err)
			return
		}
		*field.dest = &str
	}

	if value, ok := body["releaseYear"]; ok && value != nil {
		val, err := request.ReadInt(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "releaseYear must be an integer", err)
			return
		}
		input.ReleaseYear = &val
	}

	if value, ok := body["duration"]; ok && value != nil {
		val, err := request.ReadInt(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "duration must be an integer", err)
			return
		}
		input.Duration = &val
	}

	if value, ok := body["languages"]; ok {
		input.LanguagesProvided = true
		languages, err := request.ReadStringSlice(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "languages must be an array of strings", err)
			return
		}
		input.Languages = languages
	}

	if value, ok := body["categoryId"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "categoryId must be a string", err)
			return
		}
		categoryID, err := uuid.Parse(str)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid category ID format.", err)
			return
		}
		input.CategoryID = &categoryID
	}

	if value, ok := body["type"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "type must be a string", err)
			return
		}
		contentType := types.ContentType(str)
		input.Type = &contentType
	}

	item, err := Update(h.db, id, input)
	if err != nil {
		h.respondError(c, err, "failed to update content")
		return
	}

	h.invalidateListings(c)
	response.Success(c, http.StatusOK, item, "Content updated successfully", nil)
}

// Delete removes catalog content. Storage objects are cleaned up best effort;
// a storage failure is logged but never blocks the catalog delete.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("contentId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid content ID.", err)
		return
	}

	item, err := Delete(h.db, id)
	if err != nil {
		h.respondError(c, err, "failed to delete content")
		return
	}

	if h.store != nil {
		for _, asset := range []*string{item.Video, item.Thumbnail, item.BgImage} {
			if asset == nil || *asset == "" {
				continue
			}
			if err := h.store.DeleteFile(c.Request.Context(), h.store.ExtractRelativePath(*asset)); err != nil {
				h.logger.Warn("failed to delete storage object", "contentId", id, "error", err)
			}
		}
	}

	h.invalidateListings(c)
	response.Success(c, http.StatusOK, true, "Content deleted successfully", nil)
}

// ByCategory lists all content for one category.
func (h *Handler) ByCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid category ID.", err)
		return
	}

	contents, err := ByCategory(h.db, categoryID)
	if err != nil {
		h.respondError(c, err, "failed to list content by category")
		return
	}

	response.Success(c, http.StatusOK, sanitize(contents), "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrContentNotFound):
		status = http.StatusNotFound
		message = "Content not found."
	case errors.Is(err, category.ErrCategoryNotFound):
		status = http.StatusNotFound
		message = "Category not found."
	case errors.Is(err, ErrLoginRequired):
		status = http.StatusUnauthorized
		message = "Please login to access premium content"
	case errors.Is(err, ErrSubscriptionRequired):
		status = http.StatusForbidden
		message = "Please subscribe to access premium content"
	case errors.Is(err, ErrTitleTaken):
		status = http.StatusConflict
		message = "Content with this title already exists."
	case errors.Is(err, ErrAlreadyRated):
		status = http.StatusConflict
		message = "You have already rated this content."
	case errors.Is(err, ErrRatingNotFound):
		status = http.StatusNotFound
		message = "Rating not found."
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrInvalidType),
		errors.Is(err, ErrInvalidRating):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, ErrNoVideo):
		status = http.StatusNotFound
		message = "No video available for this content."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}

// cachedListing serves a listing from cache when possible, otherwise runs
// the query and stores the result. Cache errors degrade to direct queries.
func (h *Handler) cachedListing(c *gin.Context, key string, fetch func() (interface{}, error)) {
	maxAge := int(listingTTL.Seconds())

	if h.cache != nil {
		if raw, err := h.cache.Get(c.Request.Context(), key); err == nil && raw != "" {
			var payload json.RawMessage
			if json.Unmarshal([]byte(raw), &payload) == nil {
				response.SuccessWithCache(c, http.StatusOK, payload, "", maxAge)
				return
			}
		}
	}

	data, err := fetch()
	if err != nil {
		h.respondError(c, err, "failed to build listing")
		return
	}

	if h.cache != nil {
		if encoded, err := json.Marshal(data); err == nil {
			if err := h.cache.Set(c.Request.Context(), key, string(encoded), listingTTL); err != nil {
				h.logger.Debug("listing cache write failed", "key", key, "error", err)
			}
		}
	}

	response.SuccessWithCache(c, http.StatusOK, data, "", maxAge)
}

func (h *Handler) invalidateListings(c *gin.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Delete(c.Request.Context(), listingKeys...); err != nil {
		h.logger.Debug("listing cache invalidation failed", "error", err)
	}
}

// Trending serves the trending movies rail.
func (h *Handler) Trending(c *gin.Context) {
	h.cachedListing(c, "content:listings:trending", func() (interface{}, error) {
		contents, err := TrendingMovies(h.db)
		return sanitize(contents), err
	})
}

// PopularSeries serves the popular webseries rail.
func (h *Handler) PopularSeries(c *gin.Context) {
	h.cachedListing(c, "content:listings:popular-series", func() (interface{}, error) {
		contents, err := PopularSeries(h.db)
		return sanitize(contents), err
	})
}

// PopularMovies serves the popular movies rail.
func (h *Handler) PopularMovies(c *gin.Context) {
	h.cachedListing(c, "content:listings:popular-movies", func() (interface{}, error) {
		contents, err := PopularMovies(h.db)
		return sanitize(contents), err
	})
}

// TopThisWeek serves the most viewed recent additions.
func (h *Handler) TopThisWeek(c *gin.Context) {
	h.cachedListing(c, "content:listings:top-week", func() (interface{}, error) {
		contents, err := TopThisWeek(h.db)
		return sanitize(contents), err
	})
}

// TopTen serves the overall top ten rail.
func (h *Handler) TopTen(c *gin.Context) {
	h.cachedListing(c, "content:listings:top10", func() (interface{}, error) {
		contents, err := TopTen(h.db)
		return sanitize(contents), err
	})
}

// TopRated serves the full catalog ordered by rating.
func (h *Handler) TopRated(c *gin.Context) {
	h.cachedListing(c, "content:listings:top-rated", func() (interface{}, error) {
		contents, err := TopRated(h.db)
		return sanitize(contents), err
	})
}

// LatestFive serves the five newest additions.
func (h *Handler) LatestFive(c *gin.Context) {
	h.cachedListing(c, "content:listings:latest", func() (interface{}, error) {
		contents, err := LatestFive(h.db)
		return sanitize(contents), err
	})
}

// GroupedByGenre serves the catalog bucketed by genre.
func (h *Handler) GroupedByGenre(c *gin.Context) {
	h.cachedListing(c, "content:listings:genres", func() (interface{}, error) {
		groups, err := GroupedByGenre(h.db)
		if err != nil {
			return nil, err
		}
		for i := range groups {
			groups[i].Contents = sanitize(groups[i].Contents)
		}
		return groups, nil
	})
}

// PopularByCategory serves the per-category popularity rails.
func (h *Handler) PopularByCategory(c *gin.Context) {
	h.cachedListing(c, "content:listings:by-category", func() (interface{}, error) {
		groups, err := PopularByCategory(h.db)
		if err != nil {
			return nil, err
		}
		for i := range groups {
			groups[i].Contents = sanitize(groups[i].Contents)
		}
		return groups, nil
	})
}
