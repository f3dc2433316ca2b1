package services

import (
	"testing"
	"time"

	"beach-cleanup-system/models"

	"github.com/stretchr/testify/assert"
)

func openEvent(max int) *models.Event {
	end := testNow.AddDate(0, 0, 1)
	return &models.Event{
		ID:              "e1",
		StartTime:       testNow.AddDate(0, 0, -1),
		EndTime:         &end,
		Active:          true,
		MaxParticipants: max,
	}
}

func TestCheckRegistration(t *testing.T) {
	t.Run("missing event is NotFound", func(t *testing.T) {
		assert.ErrorIs(t, CheckRegistration(nil, 0, false, testNow), ErrNotFound)
	})

	t.Run("open event accepts", func(t *testing.T) {
		assert.NoError(t, CheckRegistration(openEvent(0), 100, false, testNow))
	})

	t.Run("duplicate pair is AlreadyRegistered", func(t *testing.T) {
		assert.ErrorIs(t, CheckRegistration(openEvent(0), 1, true, testNow), ErrAlreadyRegistered)
	})

	t.Run("full event is CapacityExceeded", func(t *testing.T) {
		assert.ErrorIs(t, CheckRegistration(openEvent(3), 3, false, testNow), ErrCapacityExceeded)
	})

	t.Run("count above capacity still rejects", func(t *testing.T) {
		assert.ErrorIs(t, CheckRegistration(openEvent(3), 7, false, testNow), ErrCapacityExceeded)
	})

	t.Run("one below capacity accepts", func(t *testing.T) {
		assert.NoError(t, CheckRegistration(openEvent(3), 2, false, testNow))
	})

	t.Run("zero capacity means unlimited", func(t *testing.T) {
		assert.NoError(t, CheckRegistration(openEvent(0), 100000, false, testNow))
	})

	t.Run("completed event is EventClosed", func(t *testing.T) {
		ev := openEvent(0)
		past := testNow.Add(-time.Hour)
		ev.EndTime = &past
		assert.ErrorIs(t, CheckRegistration(ev, 0, false, testNow), ErrEventClosed)
	})

	t.Run("inactive event is EventClosed", func(t *testing.T) {
		ev := openEvent(0)
		ev.Active = false
		assert.ErrorIs(t, CheckRegistration(ev, 0, false, testNow), ErrEventClosed)
	})

	t.Run("upcoming event accepts registrations", func(t *testing.T) {
		ev := openEvent(0)
		ev.StartTime = testNow.AddDate(0, 0, 5)
		ev.EndTime = nil
		assert.NoError(t, CheckRegistration(ev, 0, false, testNow))
	})

	t.Run("already-registered wins over full", func(t *testing.T) {
		// A re-registering user on a full event hears "already registered",
		// which is the actionable answer.
		err := CheckRegistration(openEvent(3), 3, true, testNow)
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})
}
