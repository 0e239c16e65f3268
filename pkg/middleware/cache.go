package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// CacheControl sets default cache headers by request path. API responses are
// uncacheable unless a handler overrides the header (the listing rails do).
func CacheControl() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if strings.HasPrefix(path, "/api") {
			c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
		}

		if isStaticAsset(path) {
			c.Header("Cache-Control", "public, max-age=31536000") // 1 year
		}

		c.Next()
	}
}

var staticExtensions = []string{".css", ".js", ".jpg", ".jpeg", ".png", ".webp", ".gif", ".svg", ".ico", ".woff", ".woff2"}

func isStaticAsset(path string) bool {
	for _, ext := range staticExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
