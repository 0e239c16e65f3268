package storage

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"
)

func fixedSigner(expiresIn int) *Signer {
	s := NewSigner("test-security-key", "vz-example.b-cdn.net", expiresIn)
	s.now = func() time.Time { return time.Unix(1_700_000_000, 0) }
	return s
}

func TestSignedPlaybackURL(t *testing.T) {
	s := fixedSigner(3600)

	got, err := s.SignedPlaybackURL("videos/abc123")
	if err != nil {
		t.Fatalf("SignedPlaybackURL() error = %v", err)
	}

	parsed, err := url.Parse(got)
	if err != nil {
		t.Fatalf("signed URL does not parse: %v", err)
	}

	if parsed.Scheme != "https" || parsed.Host != "vz-example.b-cdn.net" {
		t.Errorf("unexpected base URL: %s", got)
	}
	if parsed.Path != "/videos/abc123/playlist.m3u8" {
		t.Errorf("path = %s, want /videos/abc123/playlist.m3u8", parsed.Path)
	}
	if parsed.Query().Get("expires") != "1700003600" {
		t.Errorf("expires = %s, want 1700003600", parsed.Query().Get("expires"))
	}

	// Token must match the sha256 of key + path + expiration, URL-safe encoded.
	stringToSign := fmt.Sprintf("%s%s%d", "test-security-key", "/videos/abc123/playlist.m3u8", int64(1700003600))
	hash := sha256.Sum256([]byte(stringToSign))
	wantToken := strings.NewReplacer("+", "-", "/", "_", "=", "").
		Replace(base64.StdEncoding.EncodeToString(hash[:]))
	if parsed.Query().Get("token") != wantToken {
		t.Errorf("token = %s, want %s", parsed.Query().Get("token"), wantToken)
	}
}

func TestSignedPlaybackURLFileAsset(t *testing.T) {
	s := fixedSigner(3600)

	// A path naming a file must be signed as-is, never extended with a
	// playlist segment.
	got, err := s.SignedPlaybackURL("videos/abc123/master.mp4")
	if err != nil {
		t.Fatalf("SignedPlaybackURL() error = %v", err)
	}

	parsed, err := url.Parse(got)
	if err != nil {
		t.Fatalf("signed URL does not parse: %v", err)
	}

	if parsed.Path != "/videos/abc123/master.mp4" {
		t.Errorf("path = %s, want /videos/abc123/master.mp4", parsed.Path)
	}

	stringToSign := fmt.Sprintf("%s%s%d", "test-security-key", "/videos/abc123/master.mp4", int64(1700003600))
	hash := sha256.Sum256([]byte(stringToSign))
	wantToken := strings.NewReplacer("+", "-", "/", "_", "=", "").
		Replace(base64.StdEncoding.EncodeToString(hash[:]))
	if parsed.Query().Get("token") != wantToken {
		t.Errorf("token = %s, want %s", parsed.Query().Get("token"), wantToken)
	}
}

func TestSignedPlaybackURLTokenIsURLSafe(t *testing.T) {
	s := fixedSigner(3600)

	got, err := s.SignedPlaybackURL("videos/abc123")
	if err != nil {
		t.Fatalf("SignedPlaybackURL() error = %v", err)
	}

	token := mustQuery(t, got, "token")
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("token contains non URL-safe characters: %s", token)
	}
}

func TestSignedPlaybackURLDefaultsExpiry(t *testing.T) {
	s := fixedSigner(0)

	got, err := s.SignedPlaybackURL("videos/abc123")
	if err != nil {
		t.Fatalf("SignedPlaybackURL() error = %v", err)
	}

	if mustQuery(t, got, "expires") != "1700003600" {
		t.Errorf("expires = %s, want default one hour", mustQuery(t, got, "expires"))
	}
}

func TestSignedPlaybackURLValidation(t *testing.T) {
	s := fixedSigner(3600)
	if _, err := s.SignedPlaybackURL("  "); err == nil {
		t.Error("expected error for empty video path")
	}

	unconfigured := NewSigner("", "", 3600)
	if _, err := unconfigured.SignedPlaybackURL("videos/abc123"); err == nil {
		t.Error("expected error for missing signing configuration")
	}
}

func TestExtractRelativePath(t *testing.T) {
	c := NewClient("zone", "key", "https://storage.example.com", "cdn.example.com")

	tests := []struct {
		in   string
		want string
	}{
		{"https://cdn.example.com/videos/abc123/master.mp4", "videos/abc123/master.mp4"},
		{"videos/abc123/master.mp4", "videos/abc123/master.mp4"},
		{"https://other-cdn.example.com/videos/abc123/master.mp4", "https://other-cdn.example.com/videos/abc123/master.mp4"},
	}

	for _, tt := range tests {
		if got := c.ExtractRelativePath(tt.in); got != tt.want {
			t.Errorf("ExtractRelativePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func mustQuery(t *testing.T, rawURL, key string) string {
	t.Helper()
	parsed, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("URL does not parse: %v", err)
	}
	return parsed.Query().Get(key)
}
