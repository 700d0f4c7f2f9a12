package imagehost

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(status int, respBody string, captured **http.Request) *Client {
	c := NewClient("test-key")
	c.httpClient = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if captured != nil {
				*captured = req
			}
			// Drain the multipart body the way a real server would.
			if req.Body != nil {
				io.Copy(io.Discard, req.Body)
				req.Body.Close()
			}
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(strings.NewReader(respBody)),
				Header:     http.Header{},
			}, nil
		}),
	}
	return c
}

func TestUploadReturnsHostedURL(t *testing.T) {
	var captured *http.Request
	c := newTestClient(http.StatusOK, `{"success":true,"data":{"url":"https://i.ibb.co/abc/photo.png"}}`, &captured)

	url, err := c.Upload(context.Background(), "photo.png", strings.NewReader("fake-image-bytes"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if url != "https://i.ibb.co/abc/photo.png" {
		t.Errorf("Upload url = %s; want hosted url", url)
	}
	if captured.URL.Query().Get("key") != "test-key" {
		t.Errorf("request key = %s; want test-key", captured.URL.Query().Get("key"))
	}
	if ct := captured.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data") {
		t.Errorf("Content-Type = %s; want multipart/form-data", ct)
	}
}

func TestUploadHostFailure(t *testing.T) {
	c := newTestClient(http.StatusOK, `{"success":false}`, nil)
	if _, err := c.Upload(context.Background(), "photo.png", strings.NewReader("x")); err == nil {
		t.Fatal("Upload expected error when host reports failure")
	}
}

func TestUploadBadStatus(t *testing.T) {
	c := newTestClient(http.StatusBadRequest, `{}`, nil)
	if _, err := c.Upload(context.Background(), "photo.png", strings.NewReader("x")); err == nil {
		t.Fatal("Upload expected error on non-200 status")
	}
}
