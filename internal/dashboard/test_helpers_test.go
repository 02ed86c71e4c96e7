package dashboard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/auth"
	"github.com/MarcoPoloResearchLab/tubedeck/internal/notes"
	"github.com/MarcoPoloResearchLab/tubedeck/internal/video"
)

type stubVideoClient struct {
	snapshot    video.Snapshot
	snapshotErr error
	comments    []video.Comment
	commentsErr error
}

func (s *stubVideoClient) VideoDetails(context.Context, string) (video.Snapshot, error) {
	if s.snapshotErr != nil {
		return video.Snapshot{}, s.snapshotErr
	}
	return s.snapshot, nil
}

func (s *stubVideoClient) Comments(context.Context, string) ([]video.Comment, error) {
	if s.commentsErr != nil {
		return nil, s.commentsErr
	}
	return s.comments, nil
}

type recordedEvent struct {
	userID    string
	eventType string
	payload   map[string]any
}

// memoryRecorder mirrors the real recorder's contract: unauthenticated
// sessions record nothing and no failure reaches the caller.
type memoryRecorder struct {
	events []recordedEvent
}

func (r *memoryRecorder) Record(session *auth.Session, eventType string, payload map[string]any) {
	if !session.Authenticated() {
		return
	}
	r.events = append(r.events, recordedEvent{userID: session.ID(), eventType: eventType, payload: payload})
}

func (r *memoryRecorder) types() []string {
	types := make([]string, 0, len(r.events))
	for _, event := range r.events {
		types = append(types, event.eventType)
	}
	return types
}

type staticIDGenerator struct {
	ids   []string
	index int
}

func (g *staticIDGenerator) NewID() (string, error) {
	if g.index >= len(g.ids) {
		return "", errors.New("exhausted ids")
	}
	id := g.ids[g.index]
	g.index++
	return id, nil
}

func testSession() *auth.Session {
	return &auth.Session{UserID: "user-1", Email: "creator@example.com", DisplayName: "Casey Vogel"}
}

func fixedClock() time.Time {
	return time.Unix(1700000600, 0).UTC()
}

func newMemoryNotesService(t *testing.T, ids []string, clock func() time.Time) *notes.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:tubedeck_dashboard_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&notes.Note{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	if clock == nil {
		clock = fixedClock
	}
	service, err := notes.NewService(notes.ServiceConfig{
		Database:   db,
		Clock:      clock,
		IDProvider: &staticIDGenerator{ids: ids},
	})
	if err != nil {
		t.Fatalf("failed to construct notes service: %v", err)
	}
	return service
}
