package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyEvent(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name   string
		active bool
		start  time.Time
		end    *time.Time
		want   EventStatus
	}{
		{"running event is ongoing", true, yesterday, &tomorrow, StatusOngoing},
		{"elapsed end completes regardless of active flag", true, yesterday, &yesterday, StatusCompleted},
		{"inactive override wins over future start", false, tomorrow, &tomorrow, StatusCompleted},
		{"future start is upcoming", true, tomorrow, nil, StatusUpcoming},
		{"started with no end never auto-completes", true, yesterday, nil, StatusOngoing},
		{"inactive with no end is completed", false, yesterday, nil, StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyEvent(tt.active, tt.start, tt.end, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyEventBoundaries(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// An end exactly at "now" has not passed yet.
	end := now
	assert.Equal(t, StatusOngoing, ClassifyEvent(true, now.Add(-time.Hour), &end, now))

	// A start exactly at "now" is no longer in the future.
	assert.Equal(t, StatusOngoing, ClassifyEvent(true, now, nil, now))
}
