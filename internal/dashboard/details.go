package dashboard

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/auth"
	"github.com/MarcoPoloResearchLab/tubedeck/internal/video"
)

type DetailsPanelConfig struct {
	Session *auth.Session
	VideoID string
	Client  VideoClient
	Events  EventRecorder
	Logger  *zap.Logger
}

// DetailsPanel owns the video snapshot view. Rating is a local intent: the
// panel adjusts its own counters and logs the attempt without any upstream
// exchange.
type DetailsPanel struct {
	session *auth.Session
	videoID string
	client  VideoClient
	events  EventRecorder
	logger  *zap.Logger

	state     State
	snapshot  video.Snapshot
	rating    string
	lastError string
}

func NewDetailsPanel(cfg DetailsPanelConfig) (*DetailsPanel, error) {
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
	return &DetailsPanel{
		session: cfg.Session,
		videoID: cfg.VideoID,
		client:  cfg.Client,
		events:  cfg.Events,
		logger:  logger,
		state:   StateIdle,
	}, nil
}

func (p *DetailsPanel) State() State {
	return p.state
}

func (p *DetailsPanel) Snapshot() video.Snapshot {
	return p.snapshot
}

// Rating returns the locally applied rating, empty when none was applied.
func (p *DetailsPanel) Rating() string {
	return p.rating
}

func (p *DetailsPanel) LastError() string {
	return p.lastError
}

// Load fetches the snapshot. Failures land in LastError, never escape.
func (p *DetailsPanel) Load(ctx context.Context) {
	p.state = StateLoading

	snapshot, err := p.client.VideoDetails(ctx, p.videoID)
	if err != nil {
		p.state = StateErrored
		p.lastError = err.Error()
		p.events.Record(p.session, EventVideoDetailsFetchFailed, map[string]any{
			"videoId": p.videoID,
			"error":   err.Error(),
		})
		return
	}

	p.snapshot = snapshot
	p.state = StateReady
	p.lastError = ""
	p.events.Record(p.session, EventVideoDetailsFetched, map[string]any{
		"videoId": p.videoID,
	})
}

// Rate applies a like, dislike or none rating locally. A like bumps the
// snapshot's like counter so the view reflects the intent immediately.
func (p *DetailsPanel) Rate(rating string) {
	p.state = StateMutating

	switch rating {
	case "like", "dislike", "none":
	default:
		p.state = StateReady
		p.lastError = "Invalid rating"
		p.events.Record(p.session, EventVideoRateFailed, map[string]any{
			"videoId": p.videoID,
			"rating":  rating,
			"error":   "Invalid rating",
		})
		return
	}

	if rating == "like" {
		p.snapshot.LikeCount++
	}
	p.rating = rating
	p.state = StateReady
	p.lastError = ""
	p.events.Record(p.session, EventVideoRateAttempted, map[string]any{
		"videoId": p.videoID,
		"rating":  rating,
	})
}
