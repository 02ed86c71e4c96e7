package notes

// Note models one persisted private note against a video. Ownership is part
// of every query; no cross-owner access path exists.
type Note struct {
	NoteID           string `gorm:"column:note_id;primaryKey;size:190;not null"`
	UserID           string `gorm:"column:user_id;size:190;not null;index:idx_notes_user_video,priority:1"`
	VideoID          string `gorm:"column:video_id;size:190;not null;index:idx_notes_user_video,priority:2"`
	Content          string `gorm:"column:content;type:text;not null"`
	CreatedAtSeconds int64  `gorm:"column:created_at_s;not null"`
	UpdatedAtSeconds int64  `gorm:"column:updated_at_s;not null"`
}

// TableName provides the explicit table binding for GORM.
func (Note) TableName() string {
	return "notes"
}
