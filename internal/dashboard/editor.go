package dashboard

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/auth"
	"github.com/MarcoPoloResearchLab/tubedeck/internal/video"
)

type EditorPanelConfig struct {
	Session *auth.Session
	VideoID string
	Client  VideoClient
	Events  EventRecorder
	Logger  *zap.Logger
}

// EditorPanel stages title and description drafts over the fetched snapshot.
// Save validates and commits the drafts locally and logs the update intent;
// the platform write needs an OAuth exchange that is intentionally not wired.
type EditorPanel struct {
	session *auth.Session
	videoID string
	client  VideoClient
	events  EventRecorder
	logger  *zap.Logger

	state       State
	snapshot    video.Snapshot
	title       string
	description string
	lastError   string
}

func NewEditorPanel(cfg EditorPanelConfig) (*EditorPanel, error) {
	if strings.TrimSpace(cfg.VideoID) == "" {
		return nil, errMissingVideoID
	}
	if cfg.Client == nil {
		return nil, errMissingVideoClient
	}
	if cfg.Events == nil {
		return nil, errMissingEventRecorder
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditorPanel{
		session: cfg.Session,
		videoID: cfg.VideoID,
		client:  cfg.Client,
		events:  cfg.Events,
		logger:  logger,
		state:   StateIdle,
	}, nil
}

func (p *EditorPanel) State() State {
	return p.state
}

func (p *EditorPanel) Snapshot() video.Snapshot {
	return p.snapshot
}

func (p *EditorPanel) Title() string {
	return p.title
}

func (p *EditorPanel) Description() string {
	return p.description
}

func (p *EditorPanel) LastError() string {
	return p.lastError
}

// Load fetches the snapshot and seeds the drafts from it.
func (p *EditorPanel) Load(ctx context.Context) {
	p.state = StateLoading

	snapshot, err := p.client.VideoDetails(ctx, p.videoID)
	if err != nil {
		p.state = StateErrored
		p.lastError = err.Error()
		p.events.Record(p.session, EventEditorLoadFailed, map[string]any{
			"videoId": p.videoID,
			"error":   err.Error(),
		})
		return
	}

	p.snapshot = snapshot
	p.title = snapshot.Title
	p.description = snapshot.Description
	p.state = StateReady
	p.lastError = ""
	p.events.Record(p.session, EventEditorLoaded, map[string]any{
		"videoId": p.videoID,
	})
}

// SetTitle stages a title draft without validating or recording anything.
func (p *EditorPanel) SetTitle(title string) {
	p.title = title
}

// SetDescription stages a description draft.
func (p *EditorPanel) SetDescription(description string) {
	p.description = description
}

// Save validates the drafts and commits them to the local snapshot, logging
// the update intent.
func (p *EditorPanel) Save() {
	p.state = StateMutating

	title := strings.TrimSpace(p.title)
	if title == "" {
		p.state = StateReady
		p.lastError = "Title is required"
		p.events.Record(p.session, EventVideoUpdateFailed, map[string]any{
			"videoId": p.videoID,
			"error":   "Title is required",
		})
		return
	}

	p.title = title
	p.snapshot.Title = title
	p.snapshot.Description = p.description
	p.state = StateReady
	p.lastError = ""
	p.events.Record(p.session, EventVideoUpdateAttempted, map[string]any{
		"videoId": p.videoID,
		"title":   title,
	})
}
