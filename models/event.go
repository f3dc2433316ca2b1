package models

import (
	"time"
)

// Event types — the enumerated set accepted on create.
const (
	EventTypeBeach      = "beach"
	EventTypeCoastal    = "coastal"
	EventTypeUnderwater = "underwater"
	EventTypeOther      = "other"
)

// Event represents a scheduled cleanup at a location.
// WasteCollected is only mutable once the event is completed and may never
// decrease. Lifecycle status (upcoming/ongoing/completed) is derived on every
// read from Active + the time bounds, never stored.
type Event struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"index" json:"slug"`
	Description string `json:"description"`
	Type        string `gorm:"type:varchar(16);default:'beach'" json:"type"`

	StartTime time.Time  `gorm:"not null" json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	LocationName string   `json:"location_name"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`

	WasteCollected float64 `json:"waste_collected" gorm:"default:0"`

	// Active is the explicit status override: an inactive event is completed
	// regardless of its time bounds.
	Active bool `json:"active" gorm:"default:true"`

	// MaxParticipants caps registrations; 0 means unlimited.
	MaxParticipants int `json:"max_participants" gorm:"default:0"`

	CreatedBy string `gorm:"index" json:"created_by"`

	Timestamps

	// Calculated fields (not stored in DB)
	Status           string `json:"status,omitempty" gorm:"-"`
	ParticipantCount int64  `json:"participant_count,omitempty" gorm:"-"`
}
