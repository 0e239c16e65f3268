package content

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/nexstream/ott-server-go/internal/features/category"
)

func TestGateCheck(t *testing.T) {
	free := Content{Category: &category.Category{IsPremium: false}}
	premium := Content{Category: &category.Category{IsPremium: true}}

	tests := []struct {
		name    string
		item    Content
		access  *Access
		wantErr error
	}{
		{
			name:   "free content for anonymous viewer",
			item:   free,
			access: nil,
		},
		{
			name:   "free content for expired subscriber",
			item:   free,
			access: &Access{UserID: uuid.New(), Entitled: false},
		},
		{
			name:    "premium content for anonymous viewer",
			item:    premium,
			access:  nil,
			wantErr: ErrLoginRequired,
		},
		{
			name:    "premium content without active entitlement",
			item:    premium,
			access:  &Access{UserID: uuid.New(), Entitled: false},
			wantErr: ErrSubscriptionRequired,
		},
		{
			name:   "premium content with active entitlement",
			item:   premium,
			access: &Access{UserID: uuid.New(), Entitled: true},
		},
		{
			name:   "content without a category is open",
			item:   Content{},
			access: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := gateCheck(tt.item, tt.access); !errors.Is(err, tt.wantErr) {
				t.Errorf("gateCheck() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStreamPathFor(t *testing.T) {
	id := uuid.MustParse("7e6b9a51-0c3f-4f7e-9a51-0c3f4f7e9a51")

	want := "/api/content/streamVideo/7e6b9a51-0c3f-4f7e-9a51-0c3f4f7e9a51"
	if got := streamPathFor(id); got != want {
		t.Errorf("streamPathFor() = %q, want %q", got, want)
	}
}

func TestSanitizeReplacesVideoURLs(t *testing.T) {
	raw := "https://storage.example.com/videos/abc/playlist.m3u8"
	contents := sanitize([]Content{
		{Video: &raw},
		{Video: nil},
	})

	if contents[0].Video == nil || *contents[0].Video == raw {
		t.Error("sanitize() should replace the raw storage URL")
	}
	if contents[0].Video != nil && *contents[0].Video != streamPathFor(contents[0].ID) {
		t.Errorf("sanitize() = %q, want the in-app stream reference", *contents[0].Video)
	}
	if contents[1].Video != nil {
		t.Error("sanitize() should leave contents without video untouched")
	}
}
