package dashboard

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/auth"
)

// Tab identifies one dashboard panel.
type Tab string

const (
	TabDetails  Tab = "details"
	TabComments Tab = "comments"
	TabEditor   Tab = "editor"
	TabNotes    Tab = "notes"
)

type ShellConfig struct {
	Session      *auth.Session
	VideoID      string
	VideoClient  VideoClient
	NotesService NotesService
	Events       EventRecorder
	IDProvider   IDProvider
	Clock        func() time.Time
	Logger       *zap.Logger
}

// Shell composes the four panels over shared dependencies and holds the
// active video identifier and selected tab. Panels keep no state across each
// other; the shell is the only cross-panel structure.
type Shell struct {
	session *auth.Session
	videoID string
	events  EventRecorder
	logger  *zap.Logger

	details  *DetailsPanel
	comments *CommentsPanel
	editor   *EditorPanel
	notes    *NotesPanel

	activeTab Tab
}

func NewShell(cfg ShellConfig) (*Shell, error) {
	if strings.TrimSpace(cfg.VideoID) == "" {
		return nil, errMissingVideoID
	}
	if cfg.VideoClient == nil {
		return nil, errMissingVideoClient
	}
	if cfg.NotesService == nil {
		return nil, errMissingNotesService
	}
	if cfg.Events == nil {
		return nil, errMissingEventRecorder
	}

	ids := cfg.IDProvider
	if ids == nil {
		ids = NewUUIDProvider()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	details, err := NewDetailsPanel(DetailsPanelConfig{
		Session: cfg.Session,
		VideoID: cfg.VideoID,
		Client:  cfg.VideoClient,
		Events:  cfg.Events,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	comments, err := NewCommentsPanel(CommentsPanelConfig{
		Session:    cfg.Session,
		VideoID:    cfg.VideoID,
		Client:     cfg.VideoClient,
		Events:     cfg.Events,
		IDProvider: ids,
		Clock:      clock,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	editor, err := NewEditorPanel(EditorPanelConfig{
		Session: cfg.Session,
		VideoID: cfg.VideoID,
		Client:  cfg.VideoClient,
		Events:  cfg.Events,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	notesPanel, err := NewNotesPanel(NotesPanelConfig{
		Session: cfg.Session,
		VideoID: cfg.VideoID,
		Service: cfg.NotesService,
		Events:  cfg.Events,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	shell := &Shell{
		session:   cfg.Session,
		videoID:   cfg.VideoID,
		events:    cfg.Events,
		logger:    logger,
		details:   details,
		comments:  comments,
		editor:    editor,
		notes:     notesPanel,
		activeTab: TabDetails,
	}
	shell.events.Record(shell.session, EventDashboardOpened, map[string]any{
		"videoId": shell.videoID,
	})
	return shell, nil
}

func (s *Shell) Session() *auth.Session {
	return s.session
}

func (s *Shell) VideoID() string {
	return s.videoID
}

func (s *Shell) ActiveTab() Tab {
	return s.activeTab
}

func (s *Shell) Details() *DetailsPanel {
	return s.details
}

func (s *Shell) Comments() *CommentsPanel {
	return s.comments
}

func (s *Shell) Editor() *EditorPanel {
	return s.editor
}

func (s *Shell) Notes() *NotesPanel {
	return s.notes
}

// SelectTab switches the active tab. The tab set is closed; anything outside
// it is rejected.
func (s *Shell) SelectTab(tab Tab) error {
	switch tab {
	case TabDetails, TabComments, TabEditor, TabNotes:
	default:
		return fmt.Errorf("unknown tab %q", tab)
	}
	s.activeTab = tab
	s.events.Record(s.session, EventTabSelected, map[string]any{
		"videoId": s.videoID,
		"tab":     string(tab),
	})
	return nil
}
