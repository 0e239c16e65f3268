package storage

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"path"
	"strings"
	"time"
)

// Signer generates tokenized playback URLs. The raw storage URL of a video is
// never handed to clients; playback always goes through a signed delivery URL
// that expires.
type Signer struct {
	securityKey string
	deliveryURL string
	expiresIn   int
	now         func() time.Time
}

// NewSigner creates a playback URL signer.
func NewSigner(securityKey, deliveryURL string, expiresIn int) *Signer {
	return &Signer{
		securityKey: securityKey,
		deliveryURL: deliveryURL,
		expiresIn:   expiresIn,
		now:         time.Now,
	}
}

// SignedPlaybackURL builds a signed delivery URL for a video path. A path
// without a file extension is treated as an HLS package root and gets
// /playlist.m3u8 appended; a path naming a file is signed as-is.
func (s *Signer) SignedPlaybackURL(videoPath string) (string, error) {
	if strings.TrimSpace(videoPath) == "" {
		return "", fmt.Errorf("videoPath is required")
	}
	if strings.TrimSpace(s.securityKey) == "" || strings.TrimSpace(s.deliveryURL) == "" {
		return "", fmt.Errorf("stream signing configuration is missing")
	}

	delivery := strings.TrimSpace(s.deliveryURL)
	if !strings.HasPrefix(delivery, "http://") && !strings.HasPrefix(delivery, "https://") {
		delivery = "https://" + delivery
	}

	expiresIn := s.expiresIn
	if expiresIn <= 0 {
		expiresIn = 3600
	}

	expiration := s.now().Unix() + int64(expiresIn)
	urlPath := "/" + strings.Trim(videoPath, "/")
	if path.Ext(urlPath) == "" {
		urlPath += "/playlist.m3u8"
	}

	stringToSign := fmt.Sprintf("%s%s%d", s.securityKey, urlPath, expiration)
	hash := sha256.Sum256([]byte(stringToSign))
	token := base64.StdEncoding.EncodeToString(hash[:])
	token = strings.NewReplacer("+", "-", "/", "_", "=", "").Replace(token)

	return fmt.Sprintf("%s%s?token=%s&expires=%d", strings.TrimRight(delivery, "/"), urlPath, token, expiration), nil
}
