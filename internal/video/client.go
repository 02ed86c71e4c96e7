package video

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

const defaultTimeout = 15 * time.Second

var (
	// ErrProxyUnreachable marks a transport failure: the proxy endpoint never
	// produced an HTTP response. Read paths fall back to demo data on it.
	ErrProxyUnreachable = errors.New("video: proxy unreachable")
	// ErrVideoNotFound reports a details response carrying no video.
	ErrVideoNotFound = errors.New("video: video not found")

	errMissingEndpoint = errors.New("video: proxy endpoint required")
)

// ProxyError carries the proxy's error envelope once an HTTP response was
// received. Message may be empty when the body was not the envelope.
type ProxyError struct {
	StatusCode int
	Message    string
}

func (e *ProxyError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("video: proxy returned %d", e.StatusCode)
	}
	return fmt.Sprintf("video: proxy returned %d: %s", e.StatusCode, e.Message)
}

// ClientConfig describes a Client. AnonKey is the static bearer for the
// proxy boundary; upstream OAuth tokens travel in request bodies only.
type ClientConfig struct {
	Endpoint   string
	AnonKey    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client is the typed wrapper panels use to reach the proxy. Reads keep the
// dashboard populated in a disconnected environment; mutations never fall
// back and propagate their failures.
type Client struct {
	endpoint   string
	anonKey    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg ClientConfig) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errMissingEndpoint
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
		endpoint:   endpoint,
		anonKey:    strings.TrimSpace(cfg.AnonKey),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// VideoDetails fetches the snapshot for one video. A transport failure is
// answered with the demo snapshot instead of an error.
func (c *Client) VideoDetails(ctx context.Context, videoID string) (Snapshot, error) {
	query := url.Values{}
	query.Set("action", "video-details")
	query.Set("videoId", videoID)

	payload, err := c.call(ctx, http.MethodGet, query, nil)
	if err != nil {
		if errors.Is(err, ErrProxyUnreachable) {
			c.logger.Warn("proxy unreachable, serving demo video details",
				zap.String("video_id", videoID), zap.Error(err))
			return DemoSnapshot(videoID), nil
		}
		return Snapshot{}, err
	}

	var decoded videoListResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return Snapshot{}, fmt.Errorf("decode video details: %w", err)
	}
	if len(decoded.Items) == 0 {
		return Snapshot{}, ErrVideoNotFound
	}
	return snapshotFromResource(decoded.Items[0]), nil
}

// Comments fetches the top-level comment threads for one video. A transport
// failure is answered with the demo comments instead of an error.
func (c *Client) Comments(ctx context.Context, videoID string) ([]Comment, error) {
	query := url.Values{}
	query.Set("action", "comments")
	query.Set("videoId", videoID)

	payload, err := c.call(ctx, http.MethodGet, query, nil)
	if err != nil {
		if errors.Is(err, ErrProxyUnreachable) {
			c.logger.Warn("proxy unreachable, serving demo comments",
				zap.String("video_id", videoID), zap.Error(err))
			return DemoComments(), nil
		}
		return nil, err
	}

	var decoded commentThreadListResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	comments := make([]Comment, 0, len(decoded.Items))
	for _, thread := range decoded.Items {
		comments = append(comments, commentFromThread(thread))
	}
	return comments, nil
}

// PostComment creates a top-level comment through the proxy and returns the
// confirmed comment.
func (c *Client) PostComment(ctx context.Context, accessToken, videoID, text string) (Comment, error) {
	query := url.Values{}
	query.Set("action", "post-comment")
	query.Set("videoId", videoID)
	body := map[string]any{"accessToken": accessToken, "text": text}

	payload, err := c.call(ctx, http.MethodPost, query, body)
	if err != nil {
		return Comment{}, err
	}

	var decoded commentThreadResource
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return Comment{}, fmt.Errorf("decode posted comment: %w", err)
	}
	return commentFromThread(decoded), nil
}

// DeleteComment removes one comment through the proxy.
func (c *Client) DeleteComment(ctx context.Context, accessToken, commentID string) error {
	query := url.Values{}
	query.Set("action", "delete-comment")
	query.Set("commentId", commentID)
	body := map[string]any{"accessToken": accessToken}

	_, err := c.call(ctx, http.MethodDelete, query, body)
	return err
}

// UpdateVideo replaces a video's title and description through the proxy.
func (c *Client) UpdateVideo(ctx context.Context, accessToken, videoID, title, description string) error {
	query := url.Values{}
	query.Set("action", "update-video")
	query.Set("videoId", videoID)
	body := map[string]any{"accessToken": accessToken, "title": title, "description": description}

	_, err := c.call(ctx, http.MethodPut, query, body)
	return err
}

// RateVideo applies a rating through the proxy.
func (c *Client) RateVideo(ctx context.Context, accessToken, videoID, rating string) error {
	query := url.Values{}
	query.Set("action", "rate-video")
	query.Set("videoId", videoID)
	body := map[string]any{"accessToken": accessToken, "rating": rating}

	_, err := c.call(ctx, http.MethodPost, query, body)
	return err
}

type proxyErrorEnvelope struct {
	Error string `json:"error"`
}

func (c *Client) call(ctx context.Context, method string, query url.Values, body any) ([]byte, error) {
	endpoint, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse proxy endpoint: %w", err)
	}
	endpoint.RawQuery = query.Encode()

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
	if c.anonKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProxyUnreachable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read proxy response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var envelope proxyErrorEnvelope
		if err := json.Unmarshal(payload, &envelope); err != nil {
			c.logger.Debug("proxy error body not an envelope", zap.Int("status", resp.StatusCode))
		}
		return nil, &ProxyError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(envelope.Error)}
	}
	return payload, nil
}
