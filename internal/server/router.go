package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProxyRoute is the single HTTP entry point for dashboard actions.
const ProxyRoute = "/api/youtube-proxy"

var errMissingUpstreamClient = errors.New("upstream client dependency required")

// UpstreamClient is the video platform surface the proxy translates to.
type UpstreamClient interface {
	Configured() bool
	FetchVideo(ctx context.Context, videoID string) (json.RawMessage, error)
	FetchCommentThreads(ctx context.Context, videoID string) (json.RawMessage, error)
	InsertComment(ctx context.Context, accessToken, videoID, text string) (json.RawMessage, error)
	DeleteComment(ctx context.Context, accessToken, commentID string) (json.RawMessage, error)
	UpdateVideo(ctx context.Context, accessToken, videoID, title, description string) (json.RawMessage, error)
	RateVideo(ctx context.Context, accessToken, videoID, rating string) (json.RawMessage, error)
}

type Dependencies struct {
	Upstream UpstreamClient
	Logger   *zap.Logger
}

func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.Upstream == nil {
		return nil, errMissingUpstreamClient
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	handler := &httpHandler{
		upstream: deps.Upstream,
		logger:   logger,
	}

	router.Any(ProxyRoute, handler.handleProxy)

	return router, nil
}

type httpHandler struct {
	upstream UpstreamClient
	logger   *zap.Logger
}

// handleProxy dispatches the action tag over the closed set of dashboard
// actions. Preflight answers first, then the configuration guard, so an
// unconfigured deployment never issues an outbound call.
func (h *httpHandler) handleProxy(c *gin.Context) {
	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	if !h.upstream.Configured() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "YouTube API key not configured"})
		return
	}

	action := c.Query("action")
	switch action {
	case "video-details":
		h.handleVideoDetails(c)
	case "comments":
		h.handleComments(c)
	case "post-comment":
		h.handlePostComment(c)
	case "delete-comment":
		h.handleDeleteComment(c)
	case "update-video":
		h.handleUpdateVideo(c)
	case "rate-video":
		h.handleRateVideo(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	}
}
