// Package genimage calls the external generative-image endpoint. The
// endpoint is opaque: the client forwards the request and propagates
// failure with whatever diagnostic detail the upstream provided.
package genimage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultHTTPTimeout = 60 * time.Second

// UpstreamError is a failure reported by the generative endpoint.
type UpstreamError struct {
	Status  int
	Message string
	Details string
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return ""
	}
	if e.Details != "" {
		return fmt.Sprintf("image generation failed: %s (%s)", e.Message, e.Details)
	}
	if e.Message != "" {
		return fmt.Sprintf("image generation failed: %s", e.Message)
	}
	return fmt.Sprintf("image generation failed: status %d", e.Status)
}

type generateRequest struct {
	Text        string `json:"text"`
	ImageBase64 string `json:"imageBase64,omitempty"`
}

type generateResponse struct {
	ImageURL string `json:"imageUrl"`
	Error    string `json:"error,omitempty"`
	Details  string `json:"details,omitempty"`
}

// Client is an HTTP client for the generative-image endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client for the given endpoint URL. An empty
// endpoint returns nil, meaning generation is not configured.
func NewClient(endpoint string) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Configured reports whether a generation endpoint is set.
func (c *Client) Configured() bool {
	return c != nil && c.endpoint != ""
}

// Generate requests an illustration for text, optionally conditioned
// on a base64-encoded avatar frame, and returns the image URL.
func (c *Client) Generate(ctx context.Context, text, imageBase64 string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("image generation endpoint is not configured")
	}

	payload, err := json.Marshal(generateRequest{Text: text, ImageBase64: imageBase64})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	var body generateResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode >= 400 {
		upstreamErr := &UpstreamError{Status: resp.StatusCode}
		if decodeErr == nil {
			upstreamErr.Message = body.Error
			upstreamErr.Details = body.Details
		}
		return "", upstreamErr
	}
	if decodeErr != nil {
		return "", &UpstreamError{Status: resp.StatusCode, Message: "invalid response from image endpoint"}
	}
	if body.ImageURL == "" {
		return "", &UpstreamError{Status: resp.StatusCode, Message: "image endpoint returned no imageUrl"}
	}

	return body.ImageURL, nil
}
