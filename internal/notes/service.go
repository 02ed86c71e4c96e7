package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errMissingDatabase   = errors.New("database handle is required")
	errMissingIDProvider = errors.New("id provider is required")
	errMissingUserID     = errors.New("user identifier is required")
	errMissingVideoID    = errors.New("video identifier is required")
	errMissingNoteID     = errors.New("note identifier is required")
	errEmptyContent      = errors.New("note content is required")
	errNoteNotFound      = errors.New("note not found")
	noOpLogger           = zap.NewNop()
)

type ServiceError struct {
	code string
	err  error
}

func (e *ServiceError) Error() string {
	if e.err == nil {
		return e.code
	}
	return fmt.Sprintf("%s: %v", e.code, e.err)
}

func (e *ServiceError) Unwrap() error {
	return e.err
}

func (e *ServiceError) Code() string {
	return e.code
}

const (
	opServiceNew = "notes.service.new"
	opCreate     = "notes.create"
	opUpdate     = "notes.update"
	opDelete     = "notes.delete"
	opList       = "notes.list_for_video"
)

func newServiceError(operation, reason string, cause error) error {
	code := fmt.Sprintf("%s.%s", operation, reason)
	return &ServiceError{code: code, err: cause}
}

type ServiceConfig struct {
	Database   *gorm.DB
	Clock      func() time.Time
	IDProvider IDProvider
	Logger     *zap.Logger
}

type IDProvider interface {
	NewID() (string, error)
}

// Service performs owner-scoped CRUD against the notes relation. Scoping
// every query by user identifier stands in for the store's row-level policy.
type Service struct {
	db         *gorm.DB
	clock      func() time.Time
	idProvider IDProvider
	logger     *zap.Logger
}

func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, newServiceError(opServiceNew, "missing_database", errMissingDatabase)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	if cfg.IDProvider == nil {
		return nil, newServiceError(opServiceNew, "missing_id_provider", errMissingIDProvider)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}

	return &Service{
		db:         cfg.Database,
		clock:      clock,
		idProvider: cfg.IDProvider,
		logger:     logger,
	}, nil
}

// Create stores a new note and returns the persisted row. Created and updated
// timestamps are equal on creation.
func (s *Service) Create(ctx context.Context, userID, videoID, content string) (Note, error) {
	if strings.TrimSpace(userID) == "" {
		s.logError(opCreate, "missing_user_id", errMissingUserID)
		return Note{}, newServiceError(opCreate, "missing_user_id", errMissingUserID)
	}
	if strings.TrimSpace(videoID) == "" {
		s.logError(opCreate, "missing_video_id", errMissingVideoID)
		return Note{}, newServiceError(opCreate, "missing_video_id", errMissingVideoID)
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		s.logError(opCreate, "empty_content", errEmptyContent)
		return Note{}, newServiceError(opCreate, "empty_content", errEmptyContent)
	}

	noteID, err := s.idProvider.NewID()
	if err != nil {
		s.logError(opCreate, "id_generation_failed", err, zap.String("user_id", userID))
		return Note{}, newServiceError(opCreate, "id_generation_failed", err)
	}

	now := s.clock().UTC().Unix()
	note := Note{
		NoteID:           noteID,
		UserID:           userID,
		VideoID:          videoID,
		Content:          trimmed,
		CreatedAtSeconds: now,
		UpdatedAtSeconds: now,
	}
	if err := s.db.WithContext(ctx).Create(&note).Error; err != nil {
		s.logError(opCreate, "insert_failed", err,
			zap.String("user_id", userID),
			zap.String("video_id", videoID))
		return Note{}, newServiceError(opCreate, "insert_failed", err)
	}

	return note, nil
}

// Update replaces the content of an owned note and advances its updated
// timestamp. Created timestamp and video binding never change.
func (s *Service) Update(ctx context.Context, userID, noteID, content string) (Note, error) {
	if strings.TrimSpace(userID) == "" {
		s.logError(opUpdate, "missing_user_id", errMissingUserID)
		return Note{}, newServiceError(opUpdate, "missing_user_id", errMissingUserID)
	}
	if strings.TrimSpace(noteID) == "" {
		s.logError(opUpdate, "missing_note_id", errMissingNoteID)
		return Note{}, newServiceError(opUpdate, "missing_note_id", errMissingNoteID)
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		s.logError(opUpdate, "empty_content", errEmptyContent)
		return Note{}, newServiceError(opUpdate, "empty_content", errEmptyContent)
	}

	var note Note
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND note_id = ?", userID, noteID).
		Take(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Note{}, newServiceError(opUpdate, "note_not_found", errNoteNotFound)
	}
	if err != nil {
		s.logError(opUpdate, "note_lookup_failed", err,
			zap.String("user_id", userID),
			zap.String("note_id", noteID))
		return Note{}, newServiceError(opUpdate, "note_lookup_failed", err)
	}

	note.Content = trimmed
	note.UpdatedAtSeconds = s.clock().UTC().Unix()
	if err := s.db.WithContext(ctx).Save(&note).Error; err != nil {
		s.logError(opUpdate, "update_failed", err,
			zap.String("user_id", userID),
			zap.String("note_id", noteID))
		return Note{}, newServiceError(opUpdate, "update_failed", err)
	}

	return note, nil
}

// Delete removes an owned note. Deleting a note that does not exist succeeds;
// the owner scope simply matches no row.
func (s *Service) Delete(ctx context.Context, userID, noteID string) error {
	if strings.TrimSpace(userID) == "" {
		s.logError(opDelete, "missing_user_id", errMissingUserID)
		return newServiceError(opDelete, "missing_user_id", errMissingUserID)
	}
	if strings.TrimSpace(noteID) == "" {
		s.logError(opDelete, "missing_note_id", errMissingNoteID)
		return newServiceError(opDelete, "missing_note_id", errMissingNoteID)
	}

	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND note_id = ?", userID, noteID).
		Delete(&Note{}).Error; err != nil {
		s.logError(opDelete, "delete_failed", err,
			zap.String("user_id", userID),
			zap.String("note_id", noteID))
		return newServiceError(opDelete, "delete_failed", err)
	}

	return nil
}

// ListForVideo returns the owner's notes for one video, newest first.
func (s *Service) ListForVideo(ctx context.Context, userID, videoID string) ([]Note, error) {
	if strings.TrimSpace(userID) == "" {
		s.logError(opList, "missing_user_id", errMissingUserID)
		return nil, newServiceError(opList, "missing_user_id", errMissingUserID)
	}
	if strings.TrimSpace(videoID) == "" {
		s.logError(opList, "missing_video_id", errMissingVideoID)
		return nil, newServiceError(opList, "missing_video_id", errMissingVideoID)
	}

	var notes []Note
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Order("created_at_s DESC").
		Find(&notes).Error; err != nil {
		s.logError(opList, "query_failed", err,
			zap.String("user_id", userID),
			zap.String("video_id", videoID))
		return nil, newServiceError(opList, "query_failed", err)
	}

	return notes, nil
}

func (s *Service) loggerOrDefault() *zap.Logger {
	if s == nil {
		return noOpLogger
	}
	if s.logger == nil {
		return noOpLogger
	}
	return s.logger
}

func (s *Service) logError(operation, reason string, err error, fields ...zap.Field) {
	attrs := []zap.Field{
		zap.String("operation", operation),
		zap.String("reason", reason),
	}
	if err != nil {
		attrs = append(attrs, zap.Error(err))
	}
	attrs = append(attrs, fields...)
	s.loggerOrDefault().Error("notes service error", attrs...)
}
