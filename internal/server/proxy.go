package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/youtube"
)

type postCommentPayload struct {
	AccessToken string `json:"accessToken"`
	Text        string `json:"text"`
}

type deleteCommentPayload struct {
	AccessToken string `json:"accessToken"`
}

type updateVideoPayload struct {
	AccessToken string `json:"accessToken"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type rateVideoPayload struct {
	AccessToken string `json:"accessToken"`
	Rating      string `json:"rating"`
}

func (h *httpHandler) handleVideoDetails(c *gin.Context) {
	videoID := c.Query("videoId")
	if videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
		return
	}

	payload, err := h.upstream.FetchVideo(c.Request.Context(), videoID)
	if err != nil {
		h.respondUpstreamError(c, "video-details", err, "Failed to fetch video details")
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

func (h *httpHandler) handleComments(c *gin.Context) {
	videoID := c.Query("videoId")
	if videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
		return
	}

	payload, err := h.upstream.FetchCommentThreads(c.Request.Context(), videoID)
	if err != nil {
		h.respondUpstreamError(c, "comments", err, "Failed to fetch comments")
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

func (h *httpHandler) handlePostComment(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusBadRequest, gin.H{"error": "POST method required"})
		return
	}
	videoID := c.Query("videoId")
	if videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
		return
	}
	var request postCommentPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	payload, err := h.upstream.InsertComment(c.Request.Context(), request.AccessToken, videoID, request.Text)
	if err != nil {
		h.respondUpstreamError(c, "post-comment", err, "Failed to post comment")
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

func (h *httpHandler) handleDeleteComment(c *gin.Context) {
	if c.Request.Method != http.MethodDelete {
		c.JSON(http.StatusBadRequest, gin.H{"error": "DELETE method required"})
		return
	}
	commentID := c.Query("commentId")
	if commentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment ID is required"})
		return
	}
	var request deleteCommentPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	payload, err := h.upstream.DeleteComment(c.Request.Context(), request.AccessToken, commentID)
	if err != nil {
		h.respondUpstreamError(c, "delete-comment", err, "Failed to delete comment")
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

func (h *httpHandler) handleUpdateVideo(c *gin.Context) {
	if c.Request.Method != http.MethodPut {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PUT method required"})
		return
	}
	videoID := c.Query("videoId")
	if videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
		return
	}
	var request updateVideoPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	payload, err := h.upstream.UpdateVideo(c.Request.Context(), request.AccessToken, videoID, request.Title, request.Description)
	if err != nil {
		h.respondUpstreamError(c, "update-video", err, "Failed to update video")
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

func (h *httpHandler) handleRateVideo(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusBadRequest, gin.H{"error": "POST method required"})
		return
	}
	videoID := c.Query("videoId")
	if videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
		return
	}
	var request rateVideoPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	switch request.Rating {
	case "like", "dislike", "none":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rating"})
		return
	}

	payload, err := h.upstream.RateVideo(c.Request.Context(), request.AccessToken, videoID, request.Rating)
	if err != nil {
		h.respondUpstreamError(c, "rate-video", err, "Failed to rate video")
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// respondUpstreamError funnels every upstream failure into the single error
// envelope, preferring the upstream-reported message over the fallback.
func (h *httpHandler) respondUpstreamError(c *gin.Context, action string, err error, fallback string) {
	h.logger.Warn("upstream call failed", zap.String("action", action), zap.Error(err))

	message := fallback
	var upstreamErr *youtube.UpstreamError
	if errors.As(err, &upstreamErr) && strings.TrimSpace(upstreamErr.Message) != "" {
		message = upstreamErr.Message
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
