package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return Extract(c)
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{
			name:  "defaults",
			query: "",
			want:  Params{Page: 1, Limit: 20, Skip: 0},
		},
		{
			name:  "explicit page and limit",
			query: "page=3&limit=10",
			want:  Params{Page: 3, Limit: 10, Skip: 20},
		},
		{
			name:  "limit capped at maximum",
			query: "limit=500",
			want:  Params{Page: 1, Limit: 100, Skip: 0},
		},
		{
			name:  "negative values fall back to defaults",
			query: "page=-2&limit=-5",
			want:  Params{Page: 1, Limit: 20, Skip: 0},
		},
		{
			name:  "garbage values fall back to defaults",
			query: "page=abc&limit=xyz",
			want:  Params{Page: 1, Limit: 20, Skip: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := paramsFor(t, tt.query); got != tt.want {
				t.Errorf("Extract() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMetadataFrom(t *testing.T) {
	meta := MetadataFrom(45, Params{Page: 2, Limit: 20})

	if meta.TotalItems != 45 {
		t.Errorf("TotalItems = %d, want 45", meta.TotalItems)
	}
	if meta.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", meta.TotalPages)
	}
	if !meta.HasNextPage {
		t.Error("HasNextPage = false, want true")
	}
	if !meta.HasPrevPage {
		t.Error("HasPrevPage = false, want true")
	}
}

func TestMetadataFromLastPage(t *testing.T) {
	meta := MetadataFrom(40, Params{Page: 2, Limit: 20})

	if meta.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", meta.TotalPages)
	}
	if meta.HasNextPage {
		t.Error("HasNextPage = true, want false")
	}
}

func TestMetadataFromEmpty(t *testing.T) {
	meta := MetadataFrom(0, Params{Page: 1, Limit: 20})

	if meta.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", meta.TotalPages)
	}
	if meta.HasNextPage || meta.HasPrevPage {
		t.Error("empty result should have no next or previous page")
	}
}
