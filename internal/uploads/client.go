// internal/uploads/client.go
package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

// AttachmentBucket is the object-storage bucket citizen attachments land in.
const AttachmentBucket = "foi-attachments"

const defaultTimeout = 30 * time.Second

// Uploader pushes a file to external object storage and returns its public
// URL. Intake treats upload failures as non-fatal.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// Client calls the hosted upload function: multipart form {file, bucket}
// with a bearer authorization header. Unauthenticated callers fall back to
// the anon token, matching what the function expects from the public form.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("copy file content: %w", err)
	}
	if err := writer.WriteField("bucket", AttachmentBucket); err != nil {
		return "", fmt.Errorf("write bucket field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	token := c.token
	if token == "" {
		token = "anon"
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		utils.Logger.WithField("status", resp.StatusCode).Warn("Upload function rejected attachment")
		return "", fmt.Errorf("upload function returned status %d", resp.StatusCode)
	}

	var result struct {
		PublicURL string `json:"publicUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return result.PublicURL, nil
}
