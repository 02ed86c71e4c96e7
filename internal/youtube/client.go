package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	defaultTimeout = 15 * time.Second

	// Uploaded metadata keeps the fixed People & Blogs category.
	updateCategoryID = "22"

	commentPageSize = "100"
)

// ErrAPIKeyMissing reports that the server-held API key is absent. The key is
// checked per call, not at construction, so the proxy can start without one.
var ErrAPIKeyMissing = errors.New("youtube: api key not configured")

// UpstreamError carries a non-success response from the video platform.
// Message is the upstream-reported error text and may be empty.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("youtube: upstream returned %d", e.StatusCode)
	}
	return fmt.Sprintf("youtube: upstream returned %d: %s", e.StatusCode, e.Message)
}

// Config describes a Client. Every field is optional except that calls made
// without an APIKey fail with ErrAPIKeyMissing.
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client issues authenticated requests against the YouTube Data API and
// returns raw JSON payloads for verbatim pass-through.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a Client, applying defaults for the base URL, HTTP client
// and logger.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Configured reports whether the server-held API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// FetchVideo retrieves snippet, statistics and status for one video.
func (c *Client) FetchVideo(ctx context.Context, videoID string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrAPIKeyMissing
	}
	params := url.Values{}
	params.Set("part", "snippet,statistics,status")
	params.Set("id", videoID)
	params.Set("key", c.apiKey)
	return c.do(ctx, http.MethodGet, "/videos", params, "", nil)
}

// FetchCommentThreads retrieves top-level comment threads with replies.
func (c *Client) FetchCommentThreads(ctx context.Context, videoID string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrAPIKeyMissing
	}
	params := url.Values{}
	params.Set("part", "snippet,replies")
	params.Set("videoId", videoID)
	params.Set("maxResults", commentPageSize)
	params.Set("order", "relevance")
	params.Set("key", c.apiKey)
	return c.do(ctx, http.MethodGet, "/commentThreads", params, "", nil)
}

// InsertComment creates a top-level comment as the owner of accessToken.
func (c *Client) InsertComment(ctx context.Context, accessToken, videoID, text string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrAPIKeyMissing
	}
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("key", c.apiKey)
	body := map[string]any{
		"snippet": map[string]any{
			"videoId": videoID,
			"topLevelComment": map[string]any{
				"snippet": map[string]any{
					"textOriginal": text,
				},
			},
		},
	}
	return c.do(ctx, http.MethodPost, "/commentThreads", params, accessToken, body)
}

// DeleteComment removes one comment as the owner of accessToken.
func (c *Client) DeleteComment(ctx context.Context, accessToken, commentID string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrAPIKeyMissing
	}
	params := url.Values{}
	params.Set("id", commentID)
	params.Set("key", c.apiKey)
	return c.do(ctx, http.MethodDelete, "/comments", params, accessToken, nil)
}

// UpdateVideo replaces a video's title and description. The category stays
// fixed so the snippet update never reclassifies the video.
func (c *Client) UpdateVideo(ctx context.Context, accessToken, videoID, title, description string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrAPIKeyMissing
	}
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("key", c.apiKey)
	body := map[string]any{
		"id": videoID,
		"snippet": map[string]any{
			"title":       title,
			"description": description,
			"categoryId":  updateCategoryID,
		},
	}
	return c.do(ctx, http.MethodPut, "/videos", params, accessToken, body)
}

// RateVideo applies a like, dislike or none rating for the owner of accessToken.
func (c *Client) RateVideo(ctx context.Context, accessToken, videoID, rating string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrAPIKeyMissing
	}
	params := url.Values{}
	params.Set("id", videoID)
	params.Set("rating", rating)
	params.Set("key", c.apiKey)
	return c.do(ctx, http.MethodPost, "/videos/rate", params, accessToken, nil)
}

type upstreamErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, accessToken string, body any) (json.RawMessage, error) {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parse upstream url: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	c.logger.Debug("youtube request", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var parsed upstreamErrorBody
		if err := json.Unmarshal(payload, &parsed); err != nil {
			c.logger.Debug("unparseable upstream error body", zap.Int("status", resp.StatusCode))
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: parsed.Error.Message}
	}

	// Delete and rate calls answer 204 with no body; normalize so the
	// proxy always emits valid JSON.
	if len(bytes.TrimSpace(payload)) == 0 {
		return json.RawMessage("{}"), nil
	}
	return json.RawMessage(payload), nil
}
