package services

import (
	"testing"
	"time"

	"beach-cleanup-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func completedEvent(id string, waste float64) models.Event {
	end := testNow.AddDate(0, 0, -1)
	return models.Event{
		ID:             id,
		Title:          id,
		StartTime:      testNow.AddDate(0, 0, -2),
		EndTime:        &end,
		WasteCollected: waste,
		Active:         true,
	}
}

func upcomingEvent(id string) models.Event {
	return models.Event{
		ID:        id,
		Title:     id,
		StartTime: testNow.AddDate(0, 0, 2),
		Active:    true,
	}
}

func participations(userID string, eventIDs ...string) []models.Participation {
	out := make([]models.Participation, 0, len(eventIDs))
	for _, eid := range eventIDs {
		out = append(out, models.Participation{ID: userID + "-" + eid, UserID: userID, EventID: eid})
	}
	return out
}

func TestComputeStatsEmptySnapshot(t *testing.T) {
	s := ComputeStats(&Snapshot{}, testNow)

	assert.Zero(t, s.TotalWaste)
	assert.Zero(t, s.TotalEvents)
	assert.Zero(t, s.TotalParticipants)
	assert.Zero(t, s.AvgWastePerEvent, "no division by zero on empty event set")
	assert.Zero(t, s.AvgParticipantsPerEvent)
	assert.Zero(t, s.AvgWastePerParticipant)
}

func TestComputeStats(t *testing.T) {
	snap := &Snapshot{
		Users: []models.User{
			{ID: "u1", Name: "Alice"},
			{ID: "u2", Name: "Bob"},
			{ID: "u3", Name: "Idle"}, // registered account, never participated
		},
		Events: []models.Event{
			completedEvent("e1", 30),
			completedEvent("e2", 10),
			upcomingEvent("e3"),
		},
		Participations: append(
			participations("u1", "e1", "e2"),
			participations("u2", "e1")...,
		),
		Beaches: []models.Beach{
			{ID: "b1", Status: models.BeachStatusClean},
			{ID: "b2", Status: models.BeachStatusCritical},
			{ID: "b3", Status: models.BeachStatusClean},
		},
	}

	s := ComputeStats(snap, testNow)

	assert.Equal(t, 40.0, s.TotalWaste)
	assert.Equal(t, 3, s.TotalEvents)
	assert.Equal(t, 1, s.TotalUpcoming)
	assert.Equal(t, 2, s.TotalParticipants, "idle accounts are not participants")
	assert.Equal(t, 2, s.BeachesCleaned)
	assert.InDelta(t, 40.0/3.0, s.AvgWastePerEvent, 1e-9)
	assert.InDelta(t, 1.0, s.AvgParticipantsPerEvent, 1e-9)
	assert.Equal(t, 20.0, s.AvgWastePerParticipant)
}

func TestAvgWastePerParticipantOneDecimal(t *testing.T) {
	snap := &Snapshot{
		Users:          []models.User{{ID: "u1"}, {ID: "u2"}, {ID: "u3"}},
		Events:         []models.Event{completedEvent("e1", 100)},
		Participations: append(append(participations("u1", "e1"), participations("u2", "e1")...), participations("u3", "e1")...),
	}

	s := ComputeStats(snap, testNow)

	// 100/3 = 33.333… → one decimal place
	assert.Equal(t, 33.3, s.AvgWastePerParticipant)
}

func TestComputeStatsIgnoresDuplicateParticipationRows(t *testing.T) {
	// A duplicate pair must never inflate counts even if it somehow survived
	// the unique index (e.g. historical data loaded from elsewhere).
	snap := &Snapshot{
		Users:  []models.User{{ID: "u1"}},
		Events: []models.Event{completedEvent("e1", 10)},
		Participations: []models.Participation{
			{ID: "p1", UserID: "u1", EventID: "e1"},
			{ID: "p2", UserID: "u1", EventID: "e1"},
		},
	}

	s := ComputeStats(snap, testNow)
	assert.InDelta(t, 1.0, s.AvgParticipantsPerEvent, 1e-9)
}

func TestLeaderboardOrdering(t *testing.T) {
	// A(waste=100, events=5), B(waste=100, events=8), C(waste=50, events=20)
	// → [B, A, C]: waste first, tie broken by higher event count.
	snap := &Snapshot{
		Users: []models.User{
			{ID: "a", Name: "A", Level: 2},
			{ID: "b", Name: "B", Level: 3},
			{ID: "c", Name: "C", Level: 1},
		},
	}
	addUserEvents := func(userID string, events int, wastePerEvent float64) {
		for i := 0; i < events; i++ {
			id := userID + "-ev" + string(rune('a'+i))
			snap.Events = append(snap.Events, completedEvent(id, wastePerEvent))
			snap.Participations = append(snap.Participations, models.Participation{
				ID: "p-" + id, UserID: userID, EventID: id,
			})
		}
	}
	addUserEvents("a", 5, 20)  // 100 kg over 5 events
	addUserEvents("b", 8, 12.5) // 100 kg over 8 events
	addUserEvents("c", 20, 2.5) // 50 kg over 20 events

	rows := Leaderboard(snap, testNow, 3)
	require.Len(t, rows, 3)
	assert.Equal(t, "B", rows[0].Name)
	assert.Equal(t, "A", rows[1].Name)
	assert.Equal(t, "C", rows[2].Name)
	assert.Equal(t, 100.0, rows[0].Waste)
	assert.Equal(t, 8, rows[0].Events)
}

func TestLeaderboardTieBreaksByInsertionOrder(t *testing.T) {
	snap := &Snapshot{
		Users: []models.User{
			{ID: "first", Name: "First"},
			{ID: "second", Name: "Second"},
		},
		Events:         []models.Event{completedEvent("e1", 10)},
		Participations: append(participations("first", "e1"), participations("second", "e1")...),
	}

	rows := Leaderboard(snap, testNow, 10)
	require.Len(t, rows, 2)
	assert.Equal(t, "First", rows[0].Name, "fully tied users keep snapshot insertion order")
}

func TestLeaderboardLimit(t *testing.T) {
	snap := &Snapshot{Users: []models.User{{ID: "u1"}, {ID: "u2"}, {ID: "u3"}}}

	assert.Len(t, Leaderboard(snap, testNow, 2), 2)
	assert.Len(t, Leaderboard(snap, testNow, 0), 3, "non-positive limit falls back to the default")
}

func TestUserStatsUnknownUser(t *testing.T) {
	snap := &Snapshot{
		Users:  []models.User{{ID: "u1"}},
		Events: []models.Event{completedEvent("e1", 10)},
	}

	sum := UserStats(snap, testNow, "nobody")
	assert.Zero(t, sum.Waste, "unknown users get zero-valued stats, not an error")
	assert.Zero(t, sum.Events)
}

func TestUserStatsCountsOnlyCompletedWaste(t *testing.T) {
	ongoing := models.Event{
		ID: "e2", StartTime: testNow.Add(-time.Hour), Active: true, WasteCollected: 999,
	}
	snap := &Snapshot{
		Users:          []models.User{{ID: "u1"}},
		Events:         []models.Event{completedEvent("e1", 25), ongoing},
		Participations: participations("u1", "e1", "e2"),
	}

	sum := UserStats(snap, testNow, "u1")
	assert.Equal(t, 25.0, sum.Waste, "non-completed event waste does not count toward the user total")
	assert.Equal(t, 2, sum.Events, "but the participation itself does")
}

func TestUserStatsSkipsParticipationsToMissingEvents(t *testing.T) {
	// Hard-deleting an event leaves its participation rows behind; those rows
	// must not count as events the user participated in.
	snap := &Snapshot{
		Users:          []models.User{{ID: "u1"}},
		Events:         []models.Event{completedEvent("e1", 25)},
		Participations: participations("u1", "e1", "gone"),
	}

	sum := UserStats(snap, testNow, "u1")
	assert.Equal(t, 1, sum.Events)
	assert.Equal(t, 25.0, sum.Waste)
}

func TestLevelProgressClamp(t *testing.T) {
	assert.Equal(t, 0.0, LevelProgress(0))
	assert.Equal(t, 50.0, LevelProgress(25))
	assert.Equal(t, 100.0, LevelProgress(50))
	assert.Equal(t, 100.0, LevelProgress(5000), "progress clamps at 100 no matter how far past threshold")
	assert.Equal(t, 0.0, LevelProgress(-10), "negative totals clamp at 0")
}

func TestDeriveLevel(t *testing.T) {
	assert.Equal(t, 1, DeriveLevel(0))
	assert.Equal(t, 1, DeriveLevel(49.9))
	assert.Equal(t, 2, DeriveLevel(50))
	assert.Equal(t, 5, DeriveLevel(210))
	assert.Equal(t, 1, DeriveLevel(-5))
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "Beginner", LevelName(1))
	assert.Equal(t, "Intermediate", LevelName(2))
	assert.Equal(t, "Advanced", LevelName(3))
	assert.Equal(t, "Expert", LevelName(4))
	assert.Equal(t, "Expert", LevelName(17))
	assert.Equal(t, "Expert", LevelName(0), "out-of-range levels must not crash")
	assert.Equal(t, "Expert", LevelName(-1))
}

func TestHasValidCoordinates(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	assert.True(t, HasValidCoordinates(f(48.37), f(-4.42)))
	assert.True(t, HasValidCoordinates(f(-90), f(180)))
	assert.False(t, HasValidCoordinates(nil, f(-4.42)), "only longitude present")
	assert.False(t, HasValidCoordinates(f(48.37), nil), "only latitude present")
	assert.False(t, HasValidCoordinates(nil, nil))
	assert.False(t, HasValidCoordinates(f(200), f(0)), "latitude out of range")
	assert.False(t, HasValidCoordinates(f(0), f(-181)), "longitude out of range")
}

func TestMalformedCoordinatesStillCountInAggregates(t *testing.T) {
	badLat := 200.0
	lng := -4.42
	e := completedEvent("e1", 42)
	e.Latitude = &badLat
	e.Longitude = &lng

	snap := &Snapshot{
		Users:          []models.User{{ID: "u1"}},
		Events:         []models.Event{e},
		Participations: participations("u1", "e1"),
	}

	s := ComputeStats(snap, testNow)
	assert.Equal(t, 42.0, s.TotalWaste, "spatially broken events still count in waste totals")
	assert.Equal(t, 1, s.TotalParticipants)
	assert.False(t, HasValidCoordinates(e.Latitude, e.Longitude), "but stay off the map")
}
