package models

import (
	"time"
)

// BadgeIcon is the enumerated icon set for the badge catalog. Unrecognized
// keys stored in the DB fall back to IconDefault, never error.
type BadgeIcon string

const (
	IconStar    BadgeIcon = "star"
	IconOcean   BadgeIcon = "ocean"
	IconRunner  BadgeIcon = "runner"
	IconDefault BadgeIcon = "default"
)

// ParseBadgeIcon maps a stored icon key to the enumerated set.
func ParseBadgeIcon(key string) BadgeIcon {
	switch BadgeIcon(key) {
	case IconStar:
		return IconStar
	case IconOcean:
		return IconOcean
	case IconRunner:
		return IconRunner
	default:
		return IconDefault
	}
}

// BadgeType: static catalog (seeded at boot)
type BadgeType struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	Code        string `gorm:"uniqueIndex;not null"` // e.g., "FIRST_CLEANUP", "WASTE_50"
	Name        string `gorm:"not null"`
	Description string
	Icon        string `gorm:"type:varchar(16);default:'default'"`

	// Thresholds against the user's derived totals; zero means not required.
	MinEvents  int64   `gorm:"default:0"`
	MinWasteKg float64 `gorm:"default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// UserBadge: awarded instance. Unique per (user, badge) — a second award of
// the same badge is a conflict, not a duplicate row.
type UserBadge struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"not null;index;uniqueIndex:idx_user_badge" json:"user_id"`
	BadgeTypeID string    `gorm:"not null;index;uniqueIndex:idx_user_badge" json:"badge_type_id"`
	AwardedAt   time.Time `gorm:"autoCreateTime" json:"awarded_at"`
}

// BadgeTriggers is the seeded catalog checked by AutoAwardBadges.
var BadgeTriggers = []BadgeType{
	{
		Code:        "FIRST_CLEANUP",
		Name:        "First Cleanup",
		Description: "Registered for your first cleanup event",
		Icon:        "star",
		MinEvents:   1,
	},
	{
		Code:        "REGULAR",
		Name:        "Shore Regular",
		Description: "Participated in 5 cleanup events",
		Icon:        "runner",
		MinEvents:   5,
	},
	{
		Code:        "WASTE_50",
		Name:        "Heavy Lifter",
		Description: "Helped collect 50 kg of waste",
		Icon:        "ocean",
		MinWasteKg:  50,
	},
	{
		Code:        "WASTE_200",
		Name:        "Ocean Guardian",
		Description: "Helped collect 200 kg of waste",
		Icon:        "ocean",
		MinWasteKg:  200,
	},
}
