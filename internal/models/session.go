package models

import "time"

// SessionValue is one key of one browser session in the persistent store.
type SessionValue struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"size:64;not null;uniqueIndex:idx_session_key"`
	Key       string `gorm:"size:64;not null;uniqueIndex:idx_session_key"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
