package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// Compression levels
const (
	DefaultCompression = gzip.DefaultCompression
	BestSpeed          = gzip.BestSpeed
	BestCompression    = gzip.BestCompression
)

// gzipWriter wraps a gzip.Writer with the ResponseWriter interface
type gzipWriter struct {
	gin.ResponseWriter
	writer *gzip.Writer
}

func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.writer.Write([]byte(s))
}

func (g *gzipWriter) Write(data []byte) (int, error) {
	return g.writer.Write(data)
}

func (g *gzipWriter) WriteHeader(code int) {
	g.Header().Del("Content-Length")
	g.ResponseWriter.WriteHeader(code)
}

// Compression returns a middleware that compresses responses with gzip at
// the given level. Writers are pooled per middleware instance.
func Compression(level int) gin.HandlerFunc {
	pool := sync.Pool{
		New: func() interface{} {
			gz, _ := gzip.NewWriterLevel(io.Discard, level)
			return gz
		},
	}

	return func(c *gin.Context) {
		if !shouldCompress(c.Request) {
			c.Next()
			return
		}

		gz := pool.Get().(*gzip.Writer)
		defer pool.Put(gz)

		gz.Reset(c.Writer)
		defer gz.Close()

		c.Header("Content-Encoding", "gzip")
		c.Header("Vary", "Accept-Encoding")

		c.Writer = &gzipWriter{
			ResponseWriter: c.Writer,
			writer:         gz,
		}

		c.Next()
	}
}

// mediaSuffixes are already-compressed formats that gain nothing from gzip.
var mediaSuffixes = []string{".m3u8", ".ts", ".mp4", ".webm", ".jpg", ".jpeg", ".png", ".webp"}

// shouldCompress determines if the request should be compressed
func shouldCompress(req *http.Request) bool {
	if !strings.Contains(req.Header.Get("Accept-Encoding"), "gzip") {
		return false
	}

	// Don't compress WebSocket connections
	if strings.Contains(strings.ToLower(req.Header.Get("Connection")), "upgrade") {
		return false
	}

	// Stream redirects and media payloads stay uncompressed
	if strings.Contains(req.URL.Path, "/streamVideo/") {
		return false
	}
	for _, suffix := range mediaSuffixes {
		if strings.HasSuffix(req.URL.Path, suffix) {
			return false
		}
	}

	contentType := req.Header.Get("Content-Type")
	compressibleTypes := []string{
		"text/",
		"application/json",
		"application/javascript",
		"application/xml",
		"application/x-www-form-urlencoded",
	}

	for _, ct := range compressibleTypes {
		if strings.Contains(contentType, ct) {
			return true
		}
	}

	// Default to compression for empty content type (JSON responses)
	return contentType == ""
}
