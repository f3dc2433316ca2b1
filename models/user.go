package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a volunteer account. Level and WasteCollected are derived caches
// recomputed from completed-event participations by the reconcile job — the
// participation rows stay the source of truth.
type User struct {
	ID    string `gorm:"primaryKey;type:uuid" json:"id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	Name  string `gorm:"not null" json:"name"`

	Level          int     `json:"level" gorm:"default:1"`
	WasteCollected float64 `json:"waste_collected" gorm:"default:0"`

	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
