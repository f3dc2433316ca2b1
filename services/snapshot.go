package services

import (
	"database/sql"

	"beach-cleanup-system/models"

	"gorm.io/gorm"
)

// Snapshot is a consistent read of the record store. Every derived number on
// a page is computed from the same snapshot so totals, counts and averages
// shown together never disagree with each other.
type Snapshot struct {
	Users          []models.User
	Events         []models.Event
	Participations []models.Participation
	Beaches        []models.Beach
}

// LoadSnapshot reads users, events, participations and beaches inside one
// repeatable-read, read-only transaction. A registration committing after the
// snapshot is taken simply is not in it — that staleness is expected.
// Users are loaded in creation order; the leaderboard's insertion-order
// tie-break depends on it.
func LoadSnapshot(db *gorm.DB) (*Snapshot, error) {
	snap := &Snapshot{}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("created_at ASC").Find(&snap.Users).Error; err != nil {
			return err
		}
		if err := tx.Order("start_time ASC").Find(&snap.Events).Error; err != nil {
			return err
		}
		if err := tx.Order("joined_at ASC").Find(&snap.Participations).Error; err != nil {
			return err
		}
		return tx.Order("created_at ASC").Find(&snap.Beaches).Error
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, ErrUnavailable
	}
	return snap, nil
}
