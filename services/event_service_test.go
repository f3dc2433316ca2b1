package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateEventWindow(t *testing.T) {
	earlier := testNow.Add(-2 * time.Hour)
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)

	t.Run("end before start is rejected", func(t *testing.T) {
		err := validateEventWindow(true, testNow, &past, 0, testNow)
		assert.ErrorIs(t, err, errWindowInverted)
	})

	t.Run("open-ended window is fine", func(t *testing.T) {
		assert.NoError(t, validateEventWindow(true, testNow, nil, 0, testNow))
	})

	t.Run("ordered window is fine", func(t *testing.T) {
		assert.NoError(t, validateEventWindow(true, past, &future, 0, testNow))
	})

	t.Run("extending the end past now after waste is recorded is rejected", func(t *testing.T) {
		// Waste only exists on completed events; a window change that flips
		// the event back to ongoing would orphan the recorded total.
		err := validateEventWindow(true, earlier, &future, 12.5, testNow)
		assert.ErrorIs(t, err, errWindowReopens)
	})

	t.Run("clearing the end after waste is recorded is rejected", func(t *testing.T) {
		err := validateEventWindow(true, earlier, nil, 12.5, testNow)
		assert.ErrorIs(t, err, errWindowReopens)
	})

	t.Run("completed window keeps its recorded waste", func(t *testing.T) {
		assert.NoError(t, validateEventWindow(true, earlier, &past, 12.5, testNow))
	})

	t.Run("inactive events stay completed whatever the window", func(t *testing.T) {
		assert.NoError(t, validateEventWindow(false, earlier, &future, 12.5, testNow))
	})
}
