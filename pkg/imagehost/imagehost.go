package imagehost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

const uploadEndpoint = "https://api.imgbb.com/1/upload"

// ClientInterface defines the contract for hosting an uploaded image.
type ClientInterface interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

// Client relays multipart image uploads to the imgbb API and returns the
// hosted URL. Keeping the relay server-side means the API key never ships
// to the browser.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// uploadResponse mirrors the host's `{success, data:{url}}` payload.
type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("image", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	endpoint := uploadEndpoint + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		return "", fmt.Errorf("imagehost.Upload: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("imagehost.Upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("imagehost.Upload: host returned status %d", resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("imagehost.Upload: decode response: %w", err)
	}
	if !out.Success || out.Data.URL == "" {
		return "", fmt.Errorf("imagehost.Upload: host reported failure")
	}
	return out.Data.URL, nil
}
