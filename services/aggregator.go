package services

import (
	"math"
	"sort"
	"time"

	"beach-cleanup-system/models"
)

// LevelThresholdKg is the fixed waste-per-level threshold driving level
// progress and level derivation.
const LevelThresholdKg = 50.0

// DefaultLeaderboardSize is used when the caller passes no limit.
const DefaultLeaderboardSize = 10

// Stats is every derived number shown on the dashboard and statistics pages,
// computed from one snapshot. Empty input sets produce zero values, never an
// error: every ratio carries an explicit zero-division guard.
type Stats struct {
	TotalWaste              float64 `json:"total_waste"`
	TotalEvents             int     `json:"total_events"`
	TotalUpcoming           int     `json:"total_upcoming"`
	TotalParticipants       int     `json:"total_participants"`
	BeachesCleaned          int     `json:"beaches_cleaned"`
	AvgWastePerEvent        float64 `json:"avg_waste_per_event"`
	AvgParticipantsPerEvent float64 `json:"avg_participants_per_event"`
	AvgWastePerParticipant  float64 `json:"avg_waste_per_participant"`
}

// RankedUser is one leaderboard row.
type RankedUser struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Waste  float64 `json:"waste"`
	Events int     `json:"events"`
	Level  int     `json:"level"`
}

// UserSummary are the per-user derived numbers shown on the profile page.
// Unknown users and users with no participations get zero values.
type UserSummary struct {
	Waste  float64 `json:"waste_collected"`
	Events int     `json:"events_participated"`
}

// ComputeStats derives the global statistics from a snapshot.
//
// TotalWaste sums over all events regardless of status (waste is only ever
// recorded after completion, so non-completed events contribute zero).
// TotalParticipants counts distinct users with at least one participation —
// not all registered accounts.
func ComputeStats(snap *Snapshot, now time.Time) Stats {
	var s Stats

	counts := participantCounts(snap)

	var participantSum int64
	for _, e := range snap.Events {
		s.TotalWaste += e.WasteCollected
		s.TotalEvents++
		if EventStatusOf(&e, now) == StatusUpcoming {
			s.TotalUpcoming++
		}
		participantSum += counts[e.ID]
	}

	distinct := map[string]struct{}{}
	for _, p := range snap.Participations {
		distinct[p.UserID] = struct{}{}
	}
	s.TotalParticipants = len(distinct)

	for _, b := range snap.Beaches {
		if b.Status == models.BeachStatusClean {
			s.BeachesCleaned++
		}
	}

	if s.TotalEvents > 0 {
		s.AvgWastePerEvent = s.TotalWaste / float64(s.TotalEvents)
		s.AvgParticipantsPerEvent = float64(participantSum) / float64(s.TotalEvents)
	}
	if s.TotalParticipants > 0 {
		s.AvgWastePerParticipant = round1(s.TotalWaste / float64(s.TotalParticipants))
	}

	return s
}

// Leaderboard ranks users by waste collected across the completed events they
// participated in, descending; ties break on distinct event count, then on
// user insertion order (the snapshot's creation-order load + stable sort).
func Leaderboard(snap *Snapshot, now time.Time, limit int) []RankedUser {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	rows := make([]RankedUser, 0, len(snap.Users))
	for _, u := range snap.Users {
		sum := UserStats(snap, now, u.ID)
		rows = append(rows, RankedUser{
			UserID: u.ID,
			Name:   u.Name,
			Waste:  sum.Waste,
			Events: sum.Events,
			Level:  u.Level,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Waste != rows[j].Waste {
			return rows[i].Waste > rows[j].Waste
		}
		return rows[i].Events > rows[j].Events
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// UserStats sums the waste of completed events the user participated in and
// counts their distinct events. Participations whose event is absent from the
// snapshot (the event was deleted after the fact) count for nothing. This is
// the number the cached User.WasteCollected column must reconcile with.
func UserStats(snap *Snapshot, now time.Time, userID string) UserSummary {
	eventsByID := make(map[string]*models.Event, len(snap.Events))
	for i := range snap.Events {
		eventsByID[snap.Events[i].ID] = &snap.Events[i]
	}

	var sum UserSummary
	seen := map[string]struct{}{}
	for _, p := range snap.Participations {
		if p.UserID != userID {
			continue
		}
		if _, dup := seen[p.EventID]; dup {
			continue
		}
		e, ok := eventsByID[p.EventID]
		if !ok {
			continue
		}
		seen[p.EventID] = struct{}{}
		sum.Events++
		if EventStatusOf(e, now) == StatusCompleted {
			sum.Waste += e.WasteCollected
		}
	}
	return sum
}

// LevelProgress is the percentage toward the next level, clamped to [0,100]
// no matter how far past the threshold the total is.
func LevelProgress(wasteKg float64) float64 {
	return math.Min(100, math.Max(0, wasteKg/LevelThresholdKg*100))
}

// DeriveLevel recomputes the level from cumulative waste: one level per
// threshold, floor 1.
func DeriveLevel(wasteKg float64) int {
	if wasteKg < 0 {
		return 1
	}
	return 1 + int(wasteKg/LevelThresholdKg)
}

// LevelName maps a level to its display tier. Out-of-range levels (zero,
// negative) must not occur but must not crash either.
func LevelName(level int) string {
	switch level {
	case 1:
		return "Beginner"
	case 2:
		return "Intermediate"
	case 3:
		return "Advanced"
	default:
		return "Expert"
	}
}

// HasValidCoordinates reports whether both coordinates are present, finite
// and within range. Entities failing this are skipped by map listings but
// still counted by every non-spatial aggregate.
func HasValidCoordinates(lat, lng *float64) bool {
	if lat == nil || lng == nil {
		return false
	}
	if math.IsNaN(*lat) || math.IsInf(*lat, 0) || math.IsNaN(*lng) || math.IsInf(*lng, 0) {
		return false
	}
	return *lat >= -90 && *lat <= 90 && *lng >= -180 && *lng <= 180
}

func participantCounts(snap *Snapshot) map[string]int64 {
	counts := make(map[string]int64, len(snap.Events))
	seen := make(map[[2]string]struct{}, len(snap.Participations))
	for _, p := range snap.Participations {
		key := [2]string{p.UserID, p.EventID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		counts[p.EventID]++
	}
	return counts
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
