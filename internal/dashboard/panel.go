package dashboard

import (
	"context"
	"errors"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/auth"
	"github.com/MarcoPoloResearchLab/tubedeck/internal/notes"
	"github.com/MarcoPoloResearchLab/tubedeck/internal/video"
)

// State is the shared panel lifecycle. A panel moves idle to loading to
// ready or errored on its initial fetch, and ready to mutating back to ready
// for actions; a failed action returns to ready with the sequence unchanged
// and the error surfaced through LastError. There is no retrying state.
type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateErrored  State = "errored"
	StateMutating State = "mutating"
)

var (
	errMissingVideoClient   = errors.New("video client dependency required")
	errMissingNotesService  = errors.New("notes service dependency required")
	errMissingEventRecorder = errors.New("event recorder dependency required")
	errMissingVideoID       = errors.New("video identifier required")
	errMissingIDProvider    = errors.New("id provider is required")
)

// VideoClient is the read surface panels use. Mutating platform calls are
// deliberately absent: comment and metadata mutations apply locally and log
// intent, because the upstream OAuth exchange is intentionally not wired.
type VideoClient interface {
	VideoDetails(ctx context.Context, videoID string) (video.Snapshot, error)
	Comments(ctx context.Context, videoID string) ([]video.Comment, error)
}

// NotesService is the synchronous-confirmed store surface for the notes panel.
type NotesService interface {
	Create(ctx context.Context, userID, videoID, content string) (notes.Note, error)
	Update(ctx context.Context, userID, noteID, content string) (notes.Note, error)
	Delete(ctx context.Context, userID, noteID string) error
	ListForVideo(ctx context.Context, userID, videoID string) ([]notes.Note, error)
}

// EventRecorder mirrors every panel action into the event log. Implementations
// never fail toward the caller.
type EventRecorder interface {
	Record(session *auth.Session, eventType string, payload map[string]any)
}

// IDProvider issues identifiers for locally synthesized comments.
type IDProvider interface {
	NewID() (string, error)
}
