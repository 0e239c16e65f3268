package content

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Access describes the requesting viewer for premium gating. A nil *Access
// means an anonymous request.
type Access struct {
	UserID   uuid.UUID
	Entitled bool
}

// streamPathFor is the stable in-app reference handed out instead of the raw
// storage URL. The stream endpoint re-checks the gate before redirecting.
func streamPathFor(id uuid.UUID) string {
	return fmt.Sprintf("/api/content/streamVideo/%s", id)
}

// IsPremium reports whether the content sits behind the subscription gate.
// Premium is a property of the category, not the content row itself.
func (c Content) IsPremium() bool {
	return c.Category != nil && c.Category.IsPremium
}

// gateCheck decides access to one content row. Free content is open to
// anyone. Premium content requires an authenticated viewer with an active
// entitlement; the two failure modes stay distinguishable so handlers can
// answer 401 versus 403.
func gateCheck(item Content, access *Access) error {
	if !item.IsPremium() {
		return nil
	}
	if access == nil {
		return ErrLoginRequired
	}
	if !access.Entitled {
		return ErrSubscriptionRequired
	}
	return nil
}

// GetForViewer loads a content row and applies the premium gate. The raw
// video URL is never exposed, callers get the in-app stream reference
// instead.
func GetForViewer(db *gorm.DB, id uuid.UUID, access *Access) (Content, error) {
	item, err := Get(db, id)
	if err != nil {
		return item, err
	}

	if err := gateCheck(item, access); err != nil {
		return Content{}, err
	}

	if item.Video != nil {
		path := streamPathFor(item.ID)
		item.Video = &path
	}

	return item, nil
}

// StreamSource applies the same gate as GetForViewer but returns the raw
// video URL for the redirect handler to sign.
func StreamSource(db *gorm.DB, id uuid.UUID, access *Access) (string, error) {
	item, err := Get(db, id)
	if err != nil {
		return "", err
	}

	if err := gateCheck(item, access); err != nil {
		return "", err
	}

	if item.Video == nil || *item.Video == "" {
		return "", ErrNoVideo
	}

	return *item.Video, nil
}
