// services/scheduler.go
package services

import (
	"log"
	"time"

	"beach-cleanup-system/metrics"
	"beach-cleanup-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartReconcileScheduler runs the derived-cache repair loop: the cached
// waste_collected and level columns on users are recomputed from completed
// events every few minutes, so drift between the cache and the participation
// rows is repaired instead of accumulating.
func (s *StatsService) StartReconcileScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(func() {
			if err := s.ReconcileUserTotals(); err != nil {
				log.Printf("[SCHEDULER] Reconcile failed: %v", err)
			}
		}),
	)
}

// UserTotal is one pending cache repair: the recomputed waste total and level
// for a user whose stored columns no longer match the participation rows.
type UserTotal struct {
	UserID string
	Waste  float64
	Level  int
}

// StaleUserTotals walks every user in the snapshot and returns those whose
// cached waste_collected/level differ from the value recomputed out of their
// completed-event participations. Users with no remaining participations are
// included too — cancelling the last one must drop the cache back to zero,
// not leave the old total behind.
func StaleUserTotals(snap *Snapshot, now time.Time) []UserTotal {
	var out []UserTotal
	for _, u := range snap.Users {
		waste := UserStats(snap, now, u.ID).Waste
		level := DeriveLevel(waste)
		if u.WasteCollected == waste && u.Level == level {
			continue
		}
		out = append(out, UserTotal{UserID: u.ID, Waste: waste, Level: level})
	}
	return out
}

// ReconcileUserTotals recomputes every user's cached totals from one
// snapshot, writes back the rows that drifted, then re-checks badge
// thresholds for the users that changed.
func (s *StatsService) ReconcileUserTotals() error {
	snap, err := LoadSnapshot(s.DB)
	if err != nil {
		return err
	}

	badgeSvc := NewBadgeService(s.DB)
	var updated int
	for _, t := range StaleUserTotals(snap, time.Now()) {
		res := s.DB.Model(&models.User{}).
			Where("id = ?", t.UserID).
			Updates(map[string]interface{}{
				"waste_collected": t.Waste,
				"level":           t.Level,
			})
		if res.Error != nil {
			log.Printf("[SCHEDULER] Failed to reconcile user %s: %v", t.UserID, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			updated++
			if err := badgeSvc.AutoAwardBadges(t.UserID); err != nil {
				log.Printf("[SCHEDULER] Badge check failed for %s: %v", t.UserID, err)
			}
		}
	}

	metrics.ReconcileRuns.Inc()
	if updated > 0 {
		log.Printf("✅ Reconciled derived totals for %d user(s)", updated)
	}
	return nil
}
