package video

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

type capturedRequest struct {
	method        string
	query         map[string]string
	authorization string
	body          string
}

func newCapturingProxy(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.query = map[string]string{}
		for key := range r.URL.Query() {
			captured.query[key] = r.URL.Query().Get(key)
		}
		captured.authorization = r.Header.Get("Authorization")
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("failed to read request body: %v", err)
		}
		captured.body = string(payload)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	client, err := NewClient(ClientConfig{Endpoint: endpoint, AnonKey: "anon-key", Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	return client
}

// deadEndpoint returns a URL that refuses connections, simulating a proxy
// that is not running.
func deadEndpoint(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := server.URL
	server.Close()
	return endpoint
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	if _, err := NewClient(ClientConfig{Endpoint: "   "}); err == nil {
		t.Fatalf("expected client construction to fail without an endpoint")
	}
}

func TestVideoDetailsDecodesSnapshot(t *testing.T) {
	response := `{
		"items": [
			{
				"id": "abc123",
				"snippet": {
					"title": "Launch Day",
					"description": "Behind the scenes of the launch.",
					"publishedAt": "2024-05-01T10:00:00Z",
					"channelTitle": "Studio Notes",
					"thumbnails": {
						"default": {"url": "https://img.example/default.jpg"},
						"high": {"url": "https://img.example/high.jpg"},
						"maxres": {"url": "https://img.example/maxres.jpg"}
					}
				},
				"statistics": {
					"viewCount": "1204",
					"likeCount": "87",
					"commentCount": "15"
				},
				"status": {"privacyStatus": "unlisted"}
			}
		]
	}`
	server, captured := newCapturingProxy(t, http.StatusOK, response)
	client := newTestClient(t, server.URL)

	snapshot, err := client.VideoDetails(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("failed to fetch video details: %v", err)
	}

	expected := Snapshot{
		ID:           "abc123",
		Title:        "Launch Day",
		Description:  "Behind the scenes of the launch.",
		ThumbnailURL: "https://img.example/maxres.jpg",
		PublishedAt:  "2024-05-01T10:00:00Z",
		ChannelTitle: "Studio Notes",
		ViewCount:    1204,
		LikeCount:    87,
		CommentCount: 15,
		Privacy:      "unlisted",
	}
	if snapshot != expected {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
	if captured.method != http.MethodGet {
		t.Fatalf("unexpected method %q", captured.method)
	}
	if captured.query["action"] != "video-details" || captured.query["videoId"] != "abc123" {
		t.Fatalf("unexpected query: %v", captured.query)
	}
	if captured.authorization != "Bearer anon-key" {
		t.Fatalf("unexpected authorization header %q", captured.authorization)
	}
}

func TestVideoDetailsFallsBackToDemoSnapshotWhenProxyUnreachable(t *testing.T) {
	client := newTestClient(t, deadEndpoint(t))

	snapshot, err := client.VideoDetails(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("expected demo fallback instead of error, got %v", err)
	}

	if snapshot.ID != "abc123" {
		t.Fatalf("expected demo snapshot to adopt the requested id, got %q", snapshot.ID)
	}
	if snapshot.Privacy != "public" {
		t.Fatalf("unexpected demo privacy %q", snapshot.Privacy)
	}
	if snapshot.Title == "" || snapshot.ChannelTitle == "" || snapshot.ThumbnailURL == "" {
		t.Fatalf("expected fully populated demo snapshot, got %+v", snapshot)
	}
	if snapshot.ViewCount <= 0 || snapshot.LikeCount <= 0 || snapshot.CommentCount <= 0 {
		t.Fatalf("expected positive demo counters, got %+v", snapshot)
	}
}

func TestVideoDetailsSurfacesProxyError(t *testing.T) {
	server, _ := newCapturingProxy(t, http.StatusBadRequest, `{"error":"YouTube API key not configured"}`)
	client := newTestClient(t, server.URL)

	_, err := client.VideoDetails(context.Background(), "abc123")
	if err == nil {
		t.Fatalf("expected proxy error")
	}

	var proxyErr *ProxyError
	if !errors.As(err, &proxyErr) {
		t.Fatalf("expected ProxyError, got %v", err)
	}
	if proxyErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status code %d", proxyErr.StatusCode)
	}
	if proxyErr.Message != "YouTube API key not configured" {
		t.Fatalf("unexpected proxy message %q", proxyErr.Message)
	}
}

func TestVideoDetailsReportsMissingVideo(t *testing.T) {
	server, _ := newCapturingProxy(t, http.StatusOK, `{"items":[]}`)
	client := newTestClient(t, server.URL)

	_, err := client.VideoDetails(context.Background(), "missing")
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestCommentsDecodeThreadsWithReplies(t *testing.T) {
	response := `{
		"items": [
			{
				"id": "thread-1",
				"snippet": {
					"totalReplyCount": 1,
					"topLevelComment": {
						"id": "comment-1",
						"snippet": {
							"authorDisplayName": "Priya Raman",
							"textDisplay": "Great walkthrough!",
							"publishedAt": "2024-05-02T08:00:00Z",
							"likeCount": 12
						}
					}
				},
				"replies": {
					"comments": [
						{
							"id": "comment-1-reply-1",
							"snippet": {
								"authorDisplayName": "Studio Notes",
								"textDisplay": "Thanks!",
								"publishedAt": "2024-05-02T09:30:00Z",
								"likeCount": 3
							}
						}
					]
				}
			},
			{
				"id": "thread-2",
				"snippet": {
					"totalReplyCount": 0,
					"topLevelComment": {
						"id": "comment-2",
						"snippet": {
							"authorDisplayName": "Marcus Webb",
							"textDisplay": "What camera is this?",
							"publishedAt": "2024-05-03T12:15:00Z",
							"likeCount": 4
						}
					}
				}
			}
		]
	}`
	server, captured := newCapturingProxy(t, http.StatusOK, response)
	client := newTestClient(t, server.URL)

	comments, err := client.Comments(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("failed to fetch comments: %v", err)
	}

	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	first := comments[0]
	if first.ID != "comment-1" || first.Author != "Priya Raman" || first.ReplyCount != 1 {
		t.Fatalf("unexpected first comment: %+v", first)
	}
	if first.Local {
		t.Fatalf("confirmed comments must not be marked local")
	}
	if len(first.Replies) != 1 || first.Replies[0].ID != "comment-1-reply-1" || first.Replies[0].Author != "Studio Notes" {
		t.Fatalf("unexpected replies: %+v", first.Replies)
	}
	if comments[1].ID != "comment-2" || len(comments[1].Replies) != 0 {
		t.Fatalf("unexpected second comment: %+v", comments[1])
	}
	if captured.query["action"] != "comments" || captured.query["videoId"] != "abc123" {
		t.Fatalf("unexpected query: %v", captured.query)
	}
}

func TestCommentsFallBackToDemoCommentsWhenProxyUnreachable(t *testing.T) {
	client := newTestClient(t, deadEndpoint(t))

	comments, err := client.Comments(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("expected demo fallback instead of error, got %v", err)
	}

	if len(comments) != 3 {
		t.Fatalf("expected 3 demo comments, got %d", len(comments))
	}
	if comments[0].ID != "demo-comment-1" {
		t.Fatalf("unexpected first demo comment id %q", comments[0].ID)
	}
	if len(comments[0].Replies) != 2 {
		t.Fatalf("expected 2 replies on the first demo comment, got %d", len(comments[0].Replies))
	}
}

func TestMutationsPropagateTransportFailures(t *testing.T) {
	endpoint := deadEndpoint(t)
	client := newTestClient(t, endpoint)

	testCases := []struct {
		name string
		call func() error
	}{
		{
			name: "post-comment",
			call: func() error {
				_, err := client.PostComment(context.Background(), "tok", "abc123", "nice video!")
				return err
			},
		},
		{
			name: "delete-comment",
			call: func() error {
				return client.DeleteComment(context.Background(), "tok", "comment-1")
			},
		},
		{
			name: "update-video",
			call: func() error {
				return client.UpdateVideo(context.Background(), "tok", "abc123", "title", "description")
			},
		},
		{
			name: "rate-video",
			call: func() error {
				return client.RateVideo(context.Background(), "tok", "abc123", "like")
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := testCase.call()
			if !errors.Is(err, ErrProxyUnreachable) {
				t.Fatalf("expected ErrProxyUnreachable, got %v", err)
			}
		})
	}
}

func TestPostCommentDecodesConfirmedThread(t *testing.T) {
	response := `{
		"id": "thread-9",
		"snippet": {
			"totalReplyCount": 0,
			"topLevelComment": {
				"id": "comment-9",
				"snippet": {
					"authorDisplayName": "Casey Vogel",
					"textDisplay": "nice video!",
					"publishedAt": "2024-05-04T10:00:00Z",
					"likeCount": 0
				}
			}
		}
	}`
	server, captured := newCapturingProxy(t, http.StatusOK, response)
	client := newTestClient(t, server.URL)

	comment, err := client.PostComment(context.Background(), "oauth-token", "abc123", "nice video!")
	if err != nil {
		t.Fatalf("failed to post comment: %v", err)
	}

	if comment.ID != "comment-9" || comment.Author != "Casey Vogel" || comment.Text != "nice video!" {
		t.Fatalf("unexpected confirmed comment: %+v", comment)
	}
	if comment.Local {
		t.Fatalf("confirmed comment must not be marked local")
	}
	if captured.method != http.MethodPost {
		t.Fatalf("unexpected method %q", captured.method)
	}
	if captured.query["action"] != "post-comment" || captured.query["videoId"] != "abc123" {
		t.Fatalf("unexpected query: %v", captured.query)
	}
	expectedBody := `{"accessToken":"oauth-token","text":"nice video!"}`
	if captured.body != expectedBody {
		t.Fatalf("unexpected request body: %s", captured.body)
	}
}

func TestDeleteCommentSurfacesProxyErrorEnvelope(t *testing.T) {
	server, captured := newCapturingProxy(t, http.StatusBadRequest, `{"error":"Comment not found."}`)
	client := newTestClient(t, server.URL)

	err := client.DeleteComment(context.Background(), "oauth-token", "missing")
	if err == nil {
		t.Fatalf("expected proxy error")
	}

	var proxyErr *ProxyError
	if !errors.As(err, &proxyErr) {
		t.Fatalf("expected ProxyError, got %v", err)
	}
	if proxyErr.Message != "Comment not found." {
		t.Fatalf("unexpected proxy message %q", proxyErr.Message)
	}
	if captured.method != http.MethodDelete {
		t.Fatalf("unexpected method %q", captured.method)
	}
	if captured.query["action"] != "delete-comment" || captured.query["commentId"] != "missing" {
		t.Fatalf("unexpected query: %v", captured.query)
	}
}

func TestUpdateVideoSendsDraftBody(t *testing.T) {
	server, captured := newCapturingProxy(t, http.StatusOK, `{}`)
	client := newTestClient(t, server.URL)

	if err := client.UpdateVideo(context.Background(), "oauth-token", "abc123", "New title", "New description"); err != nil {
		t.Fatalf("failed to update video: %v", err)
	}

	if captured.method != http.MethodPut {
		t.Fatalf("unexpected method %q", captured.method)
	}
	if captured.query["action"] != "update-video" || captured.query["videoId"] != "abc123" {
		t.Fatalf("unexpected query: %v", captured.query)
	}
	expectedBody := `{"accessToken":"oauth-token","description":"New description","title":"New title"}`
	if captured.body != expectedBody {
		t.Fatalf("unexpected request body: %s", captured.body)
	}
}

func TestRateVideoSendsRatingBody(t *testing.T) {
	server, captured := newCapturingProxy(t, http.StatusOK, `{}`)
	client := newTestClient(t, server.URL)

	if err := client.RateVideo(context.Background(), "oauth-token", "abc123", "like"); err != nil {
		t.Fatalf("failed to rate video: %v", err)
	}

	if captured.method != http.MethodPost {
		t.Fatalf("unexpected method %q", captured.method)
	}
	if captured.query["action"] != "rate-video" || captured.query["videoId"] != "abc123" {
		t.Fatalf("unexpected query: %v", captured.query)
	}
	expectedBody := `{"accessToken":"oauth-token","rating":"like"}`
	if captured.body != expectedBody {
		t.Fatalf("unexpected request body: %s", captured.body)
	}
}
