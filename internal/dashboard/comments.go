package dashboard

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/auth"
	"github.com/MarcoPoloResearchLab/tubedeck/internal/video"
)

// localCommentPrefix marks client-generated identifiers so synthetic comments
// never collide with platform-issued ones.
const localCommentPrefix = "local-"

type CommentsPanelConfig struct {
	Session    *auth.Session
	VideoID    string
	Client     VideoClient
	Events     EventRecorder
	IDProvider IDProvider
	Clock      func() time.Time
	Logger     *zap.Logger
}

// CommentsPanel owns the comment sequence. Posting and deleting are
// optimistic and unconfirmed: the panel splices synthetic comments into its
// local sequence without waiting for upstream confirmation, because the
// upstream OAuth flow is intentionally not wired. Notes are the confirmed
// counterpart; the asymmetry is deliberate.
type CommentsPanel struct {
	session *auth.Session
	videoID string
	client  VideoClient
	events  EventRecorder
	ids     IDProvider
	clock   func() time.Time
	logger  *zap.Logger

	state     State
	comments  []video.Comment
	lastError string
}

func NewCommentsPanel(cfg CommentsPanelConfig) (*CommentsPanel, error) {
	if strings.TrimSpace(cfg.VideoID) == "" {
		return nil, errMissingVideoID
	}
	if cfg.Client == nil {
		return nil, errMissingVideoClient
	}
	if cfg.Events == nil {
		return nil, errMissingEventRecorder
	}
	if cfg.IDProvider == nil {
		return nil, errMissingIDProvider
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentsPanel{
		session: cfg.Session,
		videoID: cfg.VideoID,
		client:  cfg.Client,
		events:  cfg.Events,
		ids:     cfg.IDProvider,
		clock:   clock,
		logger:  logger,
		state:   StateIdle,
	}, nil
}

func (p *CommentsPanel) State() State {
	return p.state
}

func (p *CommentsPanel) Comments() []video.Comment {
	return p.comments
}

func (p *CommentsPanel) LastError() string {
	return p.lastError
}

// Load fetches the comment threads. Failures land in LastError, never escape.
func (p *CommentsPanel) Load(ctx context.Context) {
	p.state = StateLoading

	comments, err := p.client.Comments(ctx, p.videoID)
	if err != nil {
		p.state = StateErrored
		p.lastError = err.Error()
		p.events.Record(p.session, EventCommentsFetchFailed, map[string]any{
			"videoId": p.videoID,
			"error":   err.Error(),
		})
		return
	}

	p.comments = comments
	p.state = StateReady
	p.lastError = ""
	p.events.Record(p.session, EventCommentsFetched, map[string]any{
		"videoId": p.videoID,
		"count":   len(comments),
	})
}

// Post prepends a synthetic unconfirmed comment authored by the caller. No
// network exchange happens; the comment exists only in this panel.
func (p *CommentsPanel) Post(text string) {
	p.state = StateMutating

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		p.state = StateReady
		p.lastError = "Comment text is required"
		p.events.Record(p.session, EventCommentPostFailed, map[string]any{
			"videoId": p.videoID,
			"error":   "Comment text is required",
		})
		return
	}

	id, err := p.ids.NewID()
	if err != nil {
		p.state = StateReady
		p.lastError = err.Error()
		p.events.Record(p.session, EventCommentPostFailed, map[string]any{
			"videoId": p.videoID,
			"error":   err.Error(),
		})
		return
	}

	comment := video.Comment{
		ID:          localCommentPrefix + id,
		Author:      p.session.AuthorName(),
		Text:        trimmed,
		PublishedAt: p.clock().UTC().Format(time.RFC3339),
		Local:       true,
	}
	p.comments = append([]video.Comment{comment}, p.comments...)
	p.state = StateReady
	p.lastError = ""
	p.events.Record(p.session, EventCommentPosted, map[string]any{
		"videoId":   p.videoID,
		"commentId": comment.ID,
		"local":     true,
	})
}

// Delete filters a comment out of the local sequence. Deleting an unknown
// identifier is a no-op; no network error can surface.
func (p *CommentsPanel) Delete(commentID string) {
	p.state = StateMutating

	filtered := make([]video.Comment, 0, len(p.comments))
	for _, comment := range p.comments {
		if comment.ID == commentID {
			continue
		}
		filtered = append(filtered, comment)
	}
	p.comments = filtered
	p.state = StateReady
	p.lastError = ""
	p.events.Record(p.session, EventCommentDeleted, map[string]any{
		"videoId":   p.videoID,
		"commentId": commentID,
	})
}
