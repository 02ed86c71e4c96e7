package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientAppliesDefaults(t *testing.T) {
	client := NewClient(Config{APIKey: "  server-key  "})
	if client.baseURL != defaultBaseURL {
		t.Fatalf("expected default base url, got %q", client.baseURL)
	}
	if client.apiKey != "server-key" {
		t.Fatalf("expected trimmed api key, got %q", client.apiKey)
	}
	if !client.Configured() {
		t.Fatalf("expected client with key to report configured")
	}

	trimmed := NewClient(Config{BaseURL: "https://example.com/yt/"})
	if trimmed.baseURL != "https://example.com/yt" {
		t.Fatalf("expected trailing slash to be trimmed, got %q", trimmed.baseURL)
	}
	if trimmed.Configured() {
		t.Fatalf("expected client without key to report unconfigured")
	}
}

func TestEveryOperationGuardsOnMissingAPIKey(t *testing.T) {
	client := NewClient(Config{})

	operations := []struct {
		name string
		run  func() (json.RawMessage, error)
	}{
		{"fetch-video", func() (json.RawMessage, error) {
			return client.FetchVideo(context.Background(), "abc123")
		}},
		{"fetch-comment-threads", func() (json.RawMessage, error) {
			return client.FetchCommentThreads(context.Background(), "abc123")
		}},
		{"insert-comment", func() (json.RawMessage, error) {
			return client.InsertComment(context.Background(), "oauth-token", "abc123", "nice video!")
		}},
		{"delete-comment", func() (json.RawMessage, error) {
			return client.DeleteComment(context.Background(), "oauth-token", "comment-1")
		}},
		{"update-video", func() (json.RawMessage, error) {
			return client.UpdateVideo(context.Background(), "oauth-token", "abc123", "title", "description")
		}},
		{"rate-video", func() (json.RawMessage, error) {
			return client.RateVideo(context.Background(), "oauth-token", "abc123", "like")
		}},
	}

	for _, operation := range operations {
		t.Run(operation.name, func(t *testing.T) {
			if _, err := operation.run(); !errors.Is(err, ErrAPIKeyMissing) {
				t.Fatalf("expected ErrAPIKeyMissing, got %v", err)
			}
		})
	}
}

func TestFetchVideoBuildsKeyedRequest(t *testing.T) {
	var captured *http.Request
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(r.Context())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":"abc123"}]}`))
	}))
	defer upstream.Close()

	client := NewClient(Config{APIKey: "server-key", BaseURL: upstream.URL, HTTPClient: upstream.Client()})
	payload, err := client.FetchVideo(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != `{"items":[{"id":"abc123"}]}` {
		t.Fatalf("expected verbatim payload, got %s", payload)
	}

	if captured.Method != http.MethodGet {
		t.Fatalf("unexpected method %s", captured.Method)
	}
	if captured.URL.Path != "/videos" {
		t.Fatalf("unexpected path %s", captured.URL.Path)
	}
	query := captured.URL.Query()
	if query.Get("part") != "snippet,statistics,status" {
		t.Fatalf("unexpected part parameter %q", query.Get("part"))
	}
	if query.Get("id") != "abc123" {
		t.Fatalf("unexpected id parameter %q", query.Get("id"))
	}
	if query.Get("key") != "server-key" {
		t.Fatalf("expected server key in query, got %q", query.Get("key"))
	}
	if captured.Header.Get("Authorization") != "" {
		t.Fatalf("read calls must not carry an oauth bearer, got %q", captured.Header.Get("Authorization"))
	}
}

func TestFetchCommentThreadsRequestsRepliesPage(t *testing.T) {
	var captured *http.Request
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(r.Context())
		w.Write([]byte(`{"items":[]}`))
	}))
	defer upstream.Close()

	client := NewClient(Config{APIKey: "server-key", BaseURL: upstream.URL, HTTPClient: upstream.Client()})
	if _, err := client.FetchCommentThreads(context.Background(), "abc123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.URL.Path != "/commentThreads" {
		t.Fatalf("unexpected path %s", captured.URL.Path)
	}
	query := captured.URL.Query()
	if query.Get("part") != "snippet,replies" {
		t.Fatalf("unexpected part parameter %q", query.Get("part"))
	}
	if query.Get("videoId") != "abc123" {
		t.Fatalf("unexpected videoId parameter %q", query.Get("videoId"))
	}
	if query.Get("maxResults") != commentPageSize {
		t.Fatalf("unexpected maxResults parameter %q", query.Get("maxResults"))
	}
	if query.Get("order") != "relevance" {
		t.Fatalf("unexpected order parameter %q", query.Get("order"))
	}
}

func TestInsertCommentCarriesBearerAndTopLevelBody(t *testing.T) {
	var (
		capturedMethod string
		capturedAuth   string
		capturedBody   map[string]any
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedMethod = r.Method
		capturedAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&capturedBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Write([]byte(`{"id":"thread-1"}`))
	}))
	defer upstream.Close()

	client := NewClient(Config{APIKey: "server-key", BaseURL: upstream.URL, HTTPClient: upstream.Client()})
	if _, err := client.InsertComment(context.Background(), "oauth-token", "abc123", "nice video!"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if capturedMethod != http.MethodPost {
		t.Fatalf("unexpected method %s", capturedMethod)
	}
	if capturedAuth != "Bearer oauth-token" {
		t.Fatalf("unexpected authorization header %q", capturedAuth)
	}
	snippet, ok := capturedBody["snippet"].(map[string]any)
	if !ok {
		t.Fatalf("expected snippet object, got %#v", capturedBody)
	}
	if snippet["videoId"] != "abc123" {
		t.Fatalf("unexpected videoId in body: %v", snippet["videoId"])
	}
	topLevel, ok := snippet["topLevelComment"].(map[string]any)
	if !ok {
		t.Fatalf("expected topLevelComment object, got %#v", snippet)
	}
	topSnippet, ok := topLevel["snippet"].(map[string]any)
	if !ok {
		t.Fatalf("expected topLevelComment snippet, got %#v", topLevel)
	}
	if topSnippet["textOriginal"] != "nice video!" {
		t.Fatalf("unexpected comment text: %v", topSnippet["textOriginal"])
	}
}

func TestUpdateVideoKeepsFixedCategory(t *testing.T) {
	var (
		capturedMethod string
		capturedBody   map[string]any
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&capturedBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Write([]byte(`{"id":"abc123"}`))
	}))
	defer upstream.Close()

	client := NewClient(Config{APIKey: "server-key", BaseURL: upstream.URL, HTTPClient: upstream.Client()})
	if _, err := client.UpdateVideo(context.Background(), "oauth-token", "abc123", "New title", "New description"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if capturedMethod != http.MethodPut {
		t.Fatalf("unexpected method %s", capturedMethod)
	}
	if capturedBody["id"] != "abc123" {
		t.Fatalf("unexpected video id in body: %v", capturedBody["id"])
	}
	snippet, ok := capturedBody["snippet"].(map[string]any)
	if !ok {
		t.Fatalf("expected snippet object, got %#v", capturedBody)
	}
	if snippet["title"] != "New title" {
		t.Fatalf("unexpected title: %v", snippet["title"])
	}
	if snippet["description"] != "New description" {
		t.Fatalf("unexpected description: %v", snippet["description"])
	}
	if snippet["categoryId"] != updateCategoryID {
		t.Fatalf("expected fixed category %q, got %v", updateCategoryID, snippet["categoryId"])
	}
}

func TestDeleteCommentNormalizesEmptyResponse(t *testing.T) {
	var captured *http.Request
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	defer upstream.Close()

	client := NewClient(Config{APIKey: "server-key", BaseURL: upstream.URL, HTTPClient: upstream.Client()})
	payload, err := client.DeleteComment(context.Background(), "oauth-token", "comment-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != "{}" {
		t.Fatalf("expected empty body to normalize to {}, got %s", payload)
	}
	if captured.Method != http.MethodDelete {
		t.Fatalf("unexpected method %s", captured.Method)
	}
	if captured.URL.Query().Get("id") != "comment-1" {
		t.Fatalf("unexpected id parameter %q", captured.URL.Query().Get("id"))
	}
	if captured.Header.Get("Authorization") != "Bearer oauth-token" {
		t.Fatalf("unexpected authorization header %q", captured.Header.Get("Authorization"))
	}
}

func TestRateVideoSendsRatingQuery(t *testing.T) {
	var captured *http.Request
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	defer upstream.Close()

	client := NewClient(Config{APIKey: "server-key", BaseURL: upstream.URL, HTTPClient: upstream.Client()})
	payload, err := client.RateVideo(context.Background(), "oauth-token", "abc123", "like")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != "{}" {
		t.Fatalf("expected empty body to normalize to {}, got %s", payload)
	}
	if captured.URL.Path != "/videos/rate" {
		t.Fatalf("unexpected path %s", captured.URL.Path)
	}
	query := captured.URL.Query()
	if query.Get("id") != "abc123" {
		t.Fatalf("unexpected id parameter %q", query.Get("id"))
	}
	if query.Get("rating") != "like" {
		t.Fatalf("unexpected rating parameter %q", query.Get("rating"))
	}
}

func TestUpstreamFailuresBecomeUpstreamErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "structured-error",
			status:      http.StatusNotFound,
			body:        `{"error":{"message":"Comment not found."}}`,
			wantMessage: "Comment not found.",
		},
		{
			name:        "unstructured-error",
			status:      http.StatusInternalServerError,
			body:        "upstream exploded",
			wantMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer upstream.Close()

			client := NewClient(Config{APIKey: "server-key", BaseURL: upstream.URL, HTTPClient: upstream.Client()})
			_, err := client.FetchVideo(context.Background(), "abc123")
			var upstreamErr *UpstreamError
			if !errors.As(err, &upstreamErr) {
				t.Fatalf("expected UpstreamError, got %v", err)
			}
			if upstreamErr.StatusCode != tt.status {
				t.Fatalf("unexpected status code %d", upstreamErr.StatusCode)
			}
			if upstreamErr.Message != tt.wantMessage {
				t.Fatalf("unexpected message %q, want %q", upstreamErr.Message, tt.wantMessage)
			}
		})
	}
}
