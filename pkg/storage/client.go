package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client handles the object storage collaborator. Thumbnails, poster art and
// raw video files are uploaded here before content records reference them.
type Client struct {
	zoneName   string
	apiKey     string
	baseURL    string
	cdnURL     string
	httpClient *http.Client
}

// NewClient creates a new object storage client.
func NewClient(zoneName, apiKey, baseURL, cdnURL string) *Client {
	return &Client{
		zoneName: zoneName,
		apiKey:   apiKey,
		baseURL:  baseURL,
		cdnURL:   cdnURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// UploadBuffer uploads a byte buffer to the storage zone.
func (c *Client) UploadBuffer(ctx context.Context, buffer []byte, remotePath, contentType string) (string, error) {
	return c.UploadStream(ctx, remotePath, bytes.NewReader(buffer), contentType)
}

// UploadStream uploads a file from an io.Reader to the storage zone and
// returns the public CDN URL.
func (c *Client) UploadStream(ctx context.Context, remotePath string, reader io.Reader, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url := fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.baseURL, "/"), c.zoneName, strings.TrimLeft(remotePath, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, reader)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("AccessKey", c.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", "OTT-Server-Go/1.0.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("storage error: status=%d, body=%s", resp.StatusCode, string(bodyBytes))
	}

	return c.PublicURL(remotePath), nil
}

// DeleteFile deletes a file from the storage zone.
func (c *Client) DeleteFile(ctx context.Context, remotePath string) error {
	url := fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.baseURL, "/"), c.zoneName, strings.TrimLeft(remotePath, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("AccessKey", c.apiKey)
	req.Header.Set("User-Agent", "OTT-Server-Go/1.0.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage error: status=%d, body=%s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

// PublicURL constructs the public CDN URL for a stored file.
func (c *Client) PublicURL(remotePath string) string {
	return fmt.Sprintf("https://%s/%s", strings.TrimRight(c.cdnURL, "/"), strings.TrimLeft(remotePath, "/"))
}

// ExtractRelativePath extracts the relative storage path from a full CDN URL.
// Returns the input unchanged when it does not carry the CDN prefix.
func (c *Client) ExtractRelativePath(cdnURL string) string {
	prefix := fmt.Sprintf("https://%s/", strings.TrimRight(c.cdnURL, "/"))
	if strings.HasPrefix(cdnURL, prefix) {
		return strings.TrimPrefix(cdnURL, prefix)
	}
	return cdnURL
}

// UploadInfo contains the details needed for direct client-side uploads.
type UploadInfo struct {
	URL         string            `json:"url"`
	RemotePath  string            `json:"remotePath"`
	ExpiresAt   time.Time         `json:"expiresAt"`
	ContentType string            `json:"contentType"`
	Method      string            `json:"method"`
	Headers     map[string]string `json:"headers"`
}

// GenerateUploadURL generates a signed upload URL so clients can push large
// video files straight to the storage zone without proxying through the API.
func (c *Client) GenerateUploadURL(remotePath, contentType string, expiresIn time.Duration) *UploadInfo {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	expiresAt := time.Now().Add(expiresIn)
	expiration := expiresAt.Unix()

	// Signature format: SHA256(zoneName + apiKey + expiration + remotePath)
	signatureString := fmt.Sprintf("%s%s%d%s", c.zoneName, c.apiKey, expiration, remotePath)
	hash := sha256.Sum256([]byte(signatureString))
	signature := fmt.Sprintf("%x", hash[:])

	uploadURL := fmt.Sprintf("%s/%s/%s?signature=%s&expires=%d",
		strings.TrimRight(c.baseURL, "/"), c.zoneName, strings.TrimLeft(remotePath, "/"), signature, expiration)

	return &UploadInfo{
		URL:         uploadURL,
		RemotePath:  remotePath,
		ExpiresAt:   expiresAt,
		ContentType: contentType,
		Method:      "PUT",
		Headers: map[string]string{
			"Content-Type": contentType,
		},
	}
}
