package services

import (
	"time"

	"beach-cleanup-system/models"
)

// EventStatus is the derived lifecycle state of an event.
type EventStatus string

const (
	StatusUpcoming  EventStatus = "upcoming"
	StatusOngoing   EventStatus = "ongoing"
	StatusCompleted EventStatus = "completed"
)

// ClassifyEvent derives the lifecycle state from the explicit active flag and
// the time bounds. It is evaluated on every read — "now" changes, so the
// result is never cached or stored.
//
//   - inactive, or an end time in the past → completed
//   - start in the future → upcoming
//   - otherwise → ongoing
//
// A nil end never auto-completes the event from elapsed time; only the
// explicit flag can complete it.
func ClassifyEvent(active bool, start time.Time, end *time.Time, now time.Time) EventStatus {
	if !active || (end != nil && end.Before(now)) {
		return StatusCompleted
	}
	if start.After(now) {
		return StatusUpcoming
	}
	return StatusOngoing
}

// EventStatusOf is the model-level convenience wrapper.
func EventStatusOf(e *models.Event, now time.Time) EventStatus {
	return ClassifyEvent(e.Active, e.StartTime, e.EndTime, now)
}
