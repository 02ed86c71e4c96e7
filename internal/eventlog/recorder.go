package eventlog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/auth"
)

const defaultQueueSize = 256

var (
	errMissingDatabase   = errors.New("database handle is required")
	errMissingIDProvider = errors.New("id provider is required")
	errMissingUserID     = errors.New("user identifier is required")
)

type IDProvider interface {
	NewID() (string, error)
}

type RecorderConfig struct {
	Database   *gorm.DB
	Clock      func() time.Time
	IDProvider IDProvider
	Logger     *zap.Logger
	QueueSize  int
}

// Recorder appends tagged events for the authenticated caller. Record is a
// one-way send: entries flow through a buffered queue into a single writer
// goroutine, so entries from one caller land in the order they were sent and
// no failure ever reaches the caller.
type Recorder struct {
	db         *gorm.DB
	clock      func() time.Time
	idProvider IDProvider
	logger     *zap.Logger

	queue     chan Entry
	done      chan struct{}
	closeOnce sync.Once

	mu     sync.RWMutex
	closed bool
}

func NewRecorder(cfg RecorderConfig) (*Recorder, error) {
	if cfg.Database == nil {
		return nil, errMissingDatabase
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
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	recorder := &Recorder{
		db:         cfg.Database,
		clock:      clock,
		idProvider: cfg.IDProvider,
		logger:     logger,
		queue:      make(chan Entry, queueSize),
		done:       make(chan struct{}),
	}
	go recorder.run()
	return recorder, nil
}

// Record enqueues one event attributed to the session's caller. It returns
// nothing: an unauthenticated session is a no-op, and every failure mode
// (payload encoding, id generation, queue overflow, closed recorder) is
// logged at Warn and swallowed.
func (r *Recorder) Record(session *auth.Session, eventType string, payload map[string]any) {
	if !session.Authenticated() {
		return
	}
	eventType = strings.TrimSpace(eventType)
	if eventType == "" {
		r.logger.Warn("event log entry dropped", zap.String("reason", "empty event type"))
		return
	}

	payloadJSON := "{}"
	if len(payload) > 0 {
		encoded, err := json.Marshal(payload)
		if err != nil {
			r.logger.Warn("event log entry dropped",
				zap.String("event_type", eventType),
				zap.String("reason", "payload encoding failed"),
				zap.Error(err))
			return
		}
		payloadJSON = string(encoded)
	}

	entryID, err := r.idProvider.NewID()
	if err != nil {
		r.logger.Warn("event log entry dropped",
			zap.String("event_type", eventType),
			zap.String("reason", "id generation failed"),
			zap.Error(err))
		return
	}

	entry := Entry{
		EntryID:          entryID,
		UserID:           session.UserID,
		EventType:        eventType,
		PayloadJSON:      payloadJSON,
		CreatedAtSeconds: r.clock().UTC().Unix(),
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.logger.Warn("event log entry dropped",
			zap.String("event_type", eventType),
			zap.String("reason", "recorder closed"))
		return
	}
	select {
	case r.queue <- entry:
	default:
		r.logger.Warn("event log entry dropped",
			zap.String("event_type", eventType),
			zap.String("reason", "queue full"))
	}
}

// Close stops intake and blocks until every queued entry has been written.
func (r *Recorder) Close() {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
		close(r.queue)
		<-r.done
	})
}

// ListForUser returns the caller's entries, newest first. The secondary
// order on entry id keeps entries written within the same second stable.
func (r *Recorder) ListForUser(ctx context.Context, userID string) ([]Entry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errMissingUserID
	}

	var entries []Entry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at_s DESC, entry_id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *Recorder) run() {
	defer close(r.done)
	for entry := range r.queue {
		if err := r.db.Create(&entry).Error; err != nil {
			r.logger.Warn("event log write failed",
				zap.String("event_type", entry.EventType),
				zap.Error(err))
		}
	}
}
