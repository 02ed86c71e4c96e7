package dashboard

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/auth"
	"github.com/MarcoPoloResearchLab/tubedeck/internal/notes"
)

type NotesPanelConfig struct {
	Session *auth.Session
	VideoID string
	Service NotesService
	Events  EventRecorder
	Logger  *zap.Logger
}

// NotesPanel owns the private note sequence. Every mutation is synchronous
// and confirmed: the local sequence changes only from rows the store
// returned, so the panel never shows a note the store did not accept.
type NotesPanel struct {
	session *auth.Session
	videoID string
	service NotesService
	events  EventRecorder
	logger  *zap.Logger

	state     State
	notes     []notes.Note
	lastError string
}

func NewNotesPanel(cfg NotesPanelConfig) (*NotesPanel, error) {
	if strings.TrimSpace(cfg.VideoID) == "" {
		return nil, errMissingVideoID
	}
	if cfg.Service == nil {
		return nil, errMissingNotesService
	}
	if cfg.Events == nil {
		return nil, errMissingEventRecorder
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotesPanel{
		session: cfg.Session,
		videoID: cfg.VideoID,
		service: cfg.Service,
		events:  cfg.Events,
		logger:  logger,
		state:   StateIdle,
	}, nil
}

func (p *NotesPanel) State() State {
	return p.state
}

func (p *NotesPanel) Notes() []notes.Note {
	return p.notes
}

func (p *NotesPanel) LastError() string {
	return p.lastError
}

// Load fetches the caller's notes for the video, newest first. Store errors,
// including the unauthenticated case, surface verbatim through LastError.
func (p *NotesPanel) Load(ctx context.Context) {
	p.state = StateLoading

	items, err := p.service.ListForVideo(ctx, p.session.ID(), p.videoID)
	if err != nil {
		p.state = StateErrored
		p.lastError = err.Error()
		p.events.Record(p.session, EventNotesFetchFailed, map[string]any{
			"videoId": p.videoID,
			"error":   err.Error(),
		})
		return
	}

	p.notes = items
	p.state = StateReady
	p.lastError = ""
	p.events.Record(p.session, EventNotesFetched, map[string]any{
		"videoId": p.videoID,
		"count":   len(items),
	})
}

// Add stores a note and prepends the returned row.
func (p *NotesPanel) Add(ctx context.Context, content string) {
	p.state = StateMutating

	note, err := p.service.Create(ctx, p.session.ID(), p.videoID, content)
	if err != nil {
		p.state = StateReady
		p.lastError = err.Error()
		p.events.Record(p.session, EventNoteAddFailed, map[string]any{
			"videoId": p.videoID,
			"error":   err.Error(),
		})
		return
	}

	p.notes = append([]notes.Note{note}, p.notes...)
	p.state = StateReady
	p.lastError = ""
	p.events.Record(p.session, EventNoteAdded, map[string]any{
		"videoId": p.videoID,
		"noteId":  note.NoteID,
	})
}

// Edit updates a note's content and replaces the row in the sequence.
func (p *NotesPanel) Edit(ctx context.Context, noteID, content string) {
	p.state = StateMutating

	note, err := p.service.Update(ctx, p.session.ID(), noteID, content)
	if err != nil {
		p.state = StateReady
		p.lastError = err.Error()
		p.events.Record(p.session, EventNoteUpdateFailed, map[string]any{
			"videoId": p.videoID,
			"noteId":  noteID,
			"error":   err.Error(),
		})
		return
	}

	for index := range p.notes {
		if p.notes[index].NoteID == note.NoteID {
			p.notes[index] = note
			break
		}
	}
	p.state = StateReady
	p.lastError = ""
	p.events.Record(p.session, EventNoteUpdated, map[string]any{
		"videoId": p.videoID,
		"noteId":  note.NoteID,
	})
}

// Remove deletes a note and filters it out of the sequence.
func (p *NotesPanel) Remove(ctx context.Context, noteID string) {
	p.state = StateMutating

	if err := p.service.Delete(ctx, p.session.ID(), noteID); err != nil {
		p.state = StateReady
		p.lastError = err.Error()
		p.events.Record(p.session, EventNoteDeleteFailed, map[string]any{
			"videoId": p.videoID,
			"noteId":  noteID,
			"error":   err.Error(),
		})
		return
	}

	filtered := make([]notes.Note, 0, len(p.notes))
	for _, note := range p.notes {
		if note.NoteID == noteID {
			continue
		}
		filtered = append(filtered, note)
	}
	p.notes = filtered
	p.state = StateReady
	p.lastError = ""
	p.events.Record(p.session, EventNoteDeleted, map[string]any{
		"videoId": p.videoID,
		"noteId":  noteID,
	})
}
