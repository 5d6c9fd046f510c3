package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	httpTimeoutEnvKey  = "ENIKI_HTTP_TIMEOUT"
)

// Client is a simple HTTP client for the eniki API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeoutFromEnv()},
	}
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) GetInfo(ctx context.Context) (InfoResponse, error) {
	var resp InfoResponse
	err := c.do(ctx, http.MethodGet, "/v1/info", nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateEntry(ctx context.Context, req EntryCreateRequest) (EntryResponse, error) {
	var resp EntryResponse
	err := c.do(ctx, http.MethodPost, "/v1/entries", nil, req, &resp)
	return resp, err
}

func (c *Client) ListEntries(ctx context.Context) ([]EntryResponse, error) {
	var resp []EntryResponse
	err := c.do(ctx, http.MethodGet, "/v1/entries", nil, nil, &resp)
	return resp, err
}

func (c *Client) GetEntry(ctx context.Context, id string) (EntryResponse, error) {
	var resp EntryResponse
	err := c.do(ctx, http.MethodGet, "/v1/entries/"+url.PathEscape(id), nil, nil, &resp)
	return resp, err
}

func (c *Client) RegenerateImage(ctx context.Context, id string, req EntryRegenImageRequest) (EntryResponse, error) {
	var resp EntryResponse
	err := c.do(ctx, http.MethodPost, "/v1/entries/"+url.PathEscape(id)+"/image", nil, req, &resp)
	return resp, err
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/entries/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ClearEntries(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/v1/entries", nil, nil, nil)
}

func (c *Client) GetAvatar(ctx context.Context) (AvatarResponse, error) {
	var resp AvatarResponse
	err := c.do(ctx, http.MethodGet, "/v1/avatar", nil, nil, &resp)
	return resp, err
}

// UploadAvatar sends avatar media as a multipart form. fileType is the
// media kind ("gif" or "mp4"); name is the user-chosen display name.
func (c *Client) UploadAvatar(ctx context.Context, media io.Reader, name, fileType string) (AvatarUploadResponse, error) {
	var resp AvatarUploadResponse

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", name)
	if err != nil {
		return resp, err
	}
	if _, err := io.Copy(part, media); err != nil {
		return resp, err
	}
	if err := form.WriteField("name", name); err != nil {
		return resp, err
	}
	if err := form.WriteField("fileType", fileType); err != nil {
		return resp, err
	}
	if err := form.Close(); err != nil {
		return resp, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/avatar", &body)
	if err != nil {
		return resp, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	httpResp, err := c.http.Do(req)
	if err != nil {
		return resp, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 400 {
		return resp, decodeError(httpResp)
	}
	err = json.NewDecoder(httpResp.Body).Decode(&resp)
	return resp, err
}

func (c *Client) DeleteAvatar(ctx context.Context, fileName string) (AvatarDeleteResponse, error) {
	var resp AvatarDeleteResponse
	query := url.Values{}
	if fileName != "" {
		query.Set("fileName", fileName)
	}
	err := c.do(ctx, http.MethodDelete, "/v1/avatar", query, nil, &resp)
	return resp, err
}

// Export streams NDJSON export to a writer.
func (c *Client) Export(ctx context.Context, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/export", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

// Import sends an import request.
func (c *Client) Import(ctx context.Context, req ImportRequest) (ImportResponse, error) {
	var resp ImportResponse
	err := c.do(ctx, http.MethodPost, "/v1/import", nil, req, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		apiErr.Message = errResp.Error
		apiErr.Code = errResp.Code
		apiErr.ErrorCode = errResp.ErrorCode
		return apiErr
	}
	apiErr.Message = fmt.Sprintf("api error: %s", resp.Status)
	return apiErr
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
