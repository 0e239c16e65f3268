package content

import (
	"testing"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func contentWith(id uuid.UUID, genre *string, categoryID uuid.UUID) Content {
	item := Content{Genre: genre, CategoryID: categoryID}
	item.ID = id
	return item
}

func TestPreferenceSets(t *testing.T) {
	action := uuid.New()
	drama := uuid.New()

	saved := []Content{
		contentWith(uuid.New(), strPtr("Action"), action),
		contentWith(uuid.New(), strPtr("Action"), action),
		contentWith(uuid.New(), nil, drama),
		contentWith(uuid.New(), strPtr("Thriller"), drama),
	}

	genres, categories := preferenceSets(saved)

	if len(genres) != 2 || genres[0] != "Action" || genres[1] != "Thriller" {
		t.Errorf("genres = %v, want [Action Thriller]", genres)
	}
	if len(categories) != 2 || categories[0] != action || categories[1] != drama {
		t.Errorf("categories = %v, want [%s %s]", categories, action, drama)
	}
}

func TestPreferenceSetsEmptyWatchlist(t *testing.T) {
	genres, categories := preferenceSets(nil)
	if len(genres) != 0 || len(categories) != 0 {
		t.Errorf("preferenceSets(nil) = %v, %v, want empty sets", genres, categories)
	}
}

func TestFillToLimit(t *testing.T) {
	cat := uuid.New()
	a := contentWith(uuid.New(), nil, cat)
	b := contentWith(uuid.New(), nil, cat)
	c := contentWith(uuid.New(), nil, cat)
	d := contentWith(uuid.New(), nil, cat)

	tests := []struct {
		name    string
		matched []Content
		popular []Content
		limit   int
		wantIDs []uuid.UUID
	}{
		{
			name:    "matches come first",
			matched: []Content{a, b},
			popular: []Content{c, d},
			limit:   4,
			wantIDs: []uuid.UUID{a.ID, b.ID, c.ID, d.ID},
		},
		{
			name:    "duplicates between lists collapse",
			matched: []Content{a, b},
			popular: []Content{b, c},
			limit:   4,
			wantIDs: []uuid.UUID{a.ID, b.ID, c.ID},
		},
		{
			name:    "limit caps the rail",
			matched: []Content{a, b, c},
			popular: []Content{d},
			limit:   2,
			wantIDs: []uuid.UUID{a.ID, b.ID},
		},
		{
			name:    "no matches falls through to popular",
			matched: nil,
			popular: []Content{c, a},
			limit:   4,
			wantIDs: []uuid.UUID{c.ID, a.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fillToLimit(tt.matched, tt.popular, tt.limit)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("fillToLimit() returned %d entries, want %d", len(got), len(tt.wantIDs))
			}
			for i := range got {
				if got[i].ID != tt.wantIDs[i] {
					t.Errorf("entry %d = %s, want %s", i, got[i].ID, tt.wantIDs[i])
				}
			}
		})
	}
}
