package models

import (
	"time"
)

// Participation links a user to an event. The composite unique index is the
// serialization point for concurrent registrations: out of N racing inserts
// for the same pair exactly one commits, the rest fail with a duplicate-key
// error that the registration service maps to AlreadyRegistered.
type Participation struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID  string `gorm:"not null;index;uniqueIndex:idx_participation_user_event" json:"user_id"`
	EventID string `gorm:"not null;index;uniqueIndex:idx_participation_user_event" json:"event_id"`

	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`
}
