package eventlog

// Entry models one append-only event log row. The application only ever
// inserts and reads entries; nothing mutates or deletes them.
type Entry struct {
	EntryID          string `gorm:"column:entry_id;primaryKey;size:190;not null"`
	UserID           string `gorm:"column:user_id;size:190;not null;index:idx_event_logs_user_created,priority:1"`
	EventType        string `gorm:"column:event_type;size:190;not null"`
	PayloadJSON      string `gorm:"column:payload_json;type:text;not null"`
	CreatedAtSeconds int64  `gorm:"column:created_at_s;not null;index:idx_event_logs_user_created,priority:2"`
}

// TableName provides the explicit table binding for GORM.
func (Entry) TableName() string {
	return "event_logs"
}
