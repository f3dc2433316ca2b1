package models

// Beach cleanliness statuses. The status is maintained by the external
// municipal feed (synced by the beach-status worker) and read through by the
// stats layer — it is not derived from events.
const (
	BeachStatusClean         = "clean"
	BeachStatusNeedsCleaning = "needs-cleaning"
	BeachStatusCritical      = "critical"
)

type Beach struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Status string `gorm:"type:varchar(16);default:'needs-cleaning'" json:"status"`

	Timestamps
}
