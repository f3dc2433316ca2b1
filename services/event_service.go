package services

import (
	"errors"
	"log"
	"time"

	"beach-cleanup-system/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type EventService struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{DB: db, validate: validator.New()}
}

// eventRow is the list projection: stored columns plus the recomputed
// participant count. Status is derived in Go afterwards — it depends on "now".
// The scanned count is copied into Event.ParticipantCount before rendering,
// so it never serializes twice.
type eventRow struct {
	models.Event
	Participants int64 `json:"-"`
}

var (
	errWindowInverted = errors.New("end_time must not precede start_time")
	errWindowReopens  = errors.New("cannot reopen a completed event with recorded waste")
)

// validateEventWindow checks a prospective time window: it must not end
// before it starts, and once waste has been recorded the window may not be
// moved in a way that flips the event back out of completed.
func validateEventWindow(active bool, start time.Time, end *time.Time, recordedWaste float64, now time.Time) error {
	if end != nil && end.Before(start) {
		return errWindowInverted
	}
	if recordedWaste > 0 && ClassifyEvent(active, start, end, now) != StatusCompleted {
		return errWindowReopens
	}
	return nil
}

// CreateEvent creates an event from an organizer action.
func (s *EventService) CreateEvent(c *fiber.Ctx) error {
	type Req struct {
		Title           string     `json:"title" validate:"required,min=3,max=200"`
		Description     string     `json:"description" validate:"max=2000"`
		Type            string     `json:"type" validate:"omitempty,oneof=beach coastal underwater other"`
		StartTime       time.Time  `json:"start_time" validate:"required"`
		EndTime         *time.Time `json:"end_time,omitempty"`
		LocationName    string     `json:"location_name" validate:"max=200"`
		Latitude        *float64   `json:"latitude,omitempty"`
		Longitude       *float64   `json:"longitude,omitempty"`
		MaxParticipants int        `json:"max_participants" validate:"min=0"`
		CreatedBy       string     `json:"created_by" validate:"required"`
	}

	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if err := s.validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "validation failed", "details": err.Error()})
	}

	// Coordinates come as a pair or not at all; a half-set or out-of-range
	// pair is rejected up front rather than silently tracked as broken.
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return c.Status(400).JSON(fiber.Map{"error": "latitude and longitude must be provided together"})
	}
	if req.Latitude != nil && !HasValidCoordinates(req.Latitude, req.Longitude) {
		return c.Status(400).JSON(fiber.Map{"error": "coordinates out of range"})
	}
	if err := validateEventWindow(true, req.StartTime, req.EndTime, 0, time.Now()); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	eventType := req.Type
	if eventType == "" {
		eventType = models.EventTypeBeach
	}

	event := models.Event{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Slug:            slug.Make(req.Title),
		Description:     req.Description,
		Type:            eventType,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		LocationName:    req.LocationName,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Active:          true,
		MaxParticipants: req.MaxParticipants,
		CreatedBy:       req.CreatedBy,
	}
	if err := s.DB.Create(&event).Error; err != nil {
		log.Printf("ERROR creating event: %v", err)
		return c.Status(503).JSON(fiber.Map{"error": "failed to create event"})
	}

	event.Status = string(EventStatusOf(&event, time.Now()))
	return c.Status(201).JSON(event)
}

// GetAllEvents lists events ordered by start time ascending, with derived
// status and recomputed participant counts. Optional ?status= and ?type=
// filters; status is filtered after derivation since it is never stored.
func (s *EventService) GetAllEvents(c *fiber.Ctx) error {
	statusFilter := c.Query("status", "")
	typeFilter := c.Query("type", "")

	rows, err := s.loadEventRows(typeFilter)
	if err != nil {
		log.Printf("ERROR fetching events: %v", err)
		return c.Status(503).JSON(fiber.Map{"error": "failed to fetch events"})
	}

	now := time.Now()
	out := make([]eventRow, 0, len(rows))
	for _, r := range rows {
		r.Event.Status = string(EventStatusOf(&r.Event, now))
		r.Event.ParticipantCount = r.Participants
		if statusFilter != "" && r.Event.Status != statusFilter {
			continue
		}
		out = append(out, r)
	}
	return c.JSON(out)
}

// GetEventsMap lists only events renderable on the map. Entries with missing
// or out-of-range coordinates are skipped with a log line and the listing
// continues — broken historical rows must not take the map down.
func (s *EventService) GetEventsMap(c *fiber.Ctx) error {
	rows, err := s.loadEventRows("")
	if err != nil {
		log.Printf("ERROR fetching events for map: %v", err)
		return c.Status(503).JSON(fiber.Map{"error": "failed to fetch events"})
	}

	now := time.Now()
	out := make([]eventRow, 0, len(rows))
	for _, r := range rows {
		if !HasValidCoordinates(r.Latitude, r.Longitude) {
			log.Printf("⚠️ Skipping event %s on map: invalid coordinates", r.Event.ID)
			continue
		}
		r.Event.Status = string(EventStatusOf(&r.Event, now))
		r.Event.ParticipantCount = r.Participants
		out = append(out, r)
	}
	return c.JSON(out)
}

func (s *EventService) GetEventByID(c *fiber.Ctx) error {
	var event models.Event
	if err := s.DB.First(&event, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "event not found"})
		}
		return c.Status(503).JSON(fiber.Map{"error": "DB error fetching event"})
	}

	var count int64
	s.DB.Model(&models.Participation{}).Where("event_id = ?", event.ID).Count(&count)

	event.Status = string(EventStatusOf(&event, time.Now()))
	event.ParticipantCount = count
	return c.JSON(event)
}

// UpdateEvent updates mutable event fields. The waste total is only writable
// once the event is completed and may never decrease — identity and history
// stay immutable.
func (s *EventService) UpdateEvent(c *fiber.Ctx) error {
	type Req struct {
		Title          *string    `json:"title,omitempty"`
		Description    *string    `json:"description,omitempty"`
		LocationName   *string    `json:"location_name,omitempty"`
		StartTime      *time.Time `json:"start_time,omitempty"`
		EndTime        *time.Time `json:"end_time,omitempty"`
		WasteCollected *float64   `json:"waste_collected,omitempty"`
	}

	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}

	var event models.Event
	if err := s.DB.First(&event, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "event not found"})
		}
		return c.Status(503).JSON(fiber.Map{"error": "DB error fetching event"})
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
		updates["slug"] = slug.Make(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.LocationName != nil {
		updates["location_name"] = *req.LocationName
	}
	if req.StartTime != nil || req.EndTime != nil {
		// The resulting window is validated as a whole, against the waste
		// already on record, not just the fields being changed.
		start := event.StartTime
		if req.StartTime != nil {
			start = *req.StartTime
		}
		end := event.EndTime
		if req.EndTime != nil {
			end = req.EndTime
		}
		if err := validateEventWindow(event.Active, start, end, event.WasteCollected, time.Now()); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		if req.StartTime != nil {
			updates["start_time"] = *req.StartTime
		}
		if req.EndTime != nil {
			updates["end_time"] = *req.EndTime
		}
	}
	if req.WasteCollected != nil {
		if EventStatusOf(&event, time.Now()) != StatusCompleted {
			return c.Status(400).JSON(fiber.Map{"error": "waste total can only be recorded after completion"})
		}
		if *req.WasteCollected < event.WasteCollected {
			return c.Status(400).JSON(fiber.Map{"error": "waste total cannot decrease"})
		}
		updates["waste_collected"] = *req.WasteCollected
	}

	if len(updates) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "nothing to update"})
	}

	if err := s.DB.Model(&event).Updates(updates).Error; err != nil {
		log.Printf("ERROR updating event %s: %v", event.ID, err)
		return c.Status(503).JSON(fiber.Map{"error": "failed to update event"})
	}
	return c.JSON(fiber.Map{"message": "event updated", "event_id": event.ID})
}

// UpdateEventStatus flips the explicit active override.
func (s *EventService) UpdateEventStatus(c *fiber.Ctx) error {
	type Req struct {
		Active *bool `json:"active"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil || req.Active == nil {
		return c.Status(400).JSON(fiber.Map{"error": "active flag required"})
	}

	res := s.DB.Model(&models.Event{}).Where("id = ?", c.Params("id")).
		Update("active", *req.Active)
	if res.Error != nil {
		return c.Status(503).JSON(fiber.Map{"error": "failed to update status"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "event not found"})
	}
	return c.JSON(fiber.Map{"message": "status updated", "active": *req.Active})
}

func (s *EventService) DeleteEvent(c *fiber.Ctx) error {
	res := s.DB.Where("id = ?", c.Params("id")).Delete(&models.Event{})
	if res.Error != nil {
		return c.Status(503).JSON(fiber.Map{"error": "failed to delete event"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "event not found"})
	}
	return c.JSON(fiber.Map{"message": "event deleted"})
}

// GetEventParticipants lists who registered, in join order.
func (s *EventService) GetEventParticipants(c *fiber.Ctx) error {
	eventID := c.Params("id")

	var count int64
	if err := s.DB.Model(&models.Event{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
		return c.Status(503).JSON(fiber.Map{"error": "DB error"})
	}
	if count == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "event not found"})
	}

	type participantRow struct {
		UserID   string    `json:"user_id"`
		Name     string    `json:"name"`
		JoinedAt time.Time `json:"joined_at"`
	}
	var rows []participantRow
	err := s.DB.Raw(`
		SELECT p.user_id, u.name, p.joined_at
		FROM participations p
		INNER JOIN users u ON u.id = p.user_id
		WHERE p.event_id = ?
		ORDER BY p.joined_at ASC
	`, eventID).Scan(&rows).Error
	if err != nil {
		log.Printf("ERROR fetching participants for event %s: %v", eventID, err)
		return c.Status(503).JSON(fiber.Map{"error": "failed to fetch participants"})
	}
	return c.JSON(rows)
}

func (s *EventService) loadEventRows(typeFilter string) ([]eventRow, error) {
	query := `
        SELECT
            e.*,
            COUNT(p.id) AS participants
        FROM events e
        LEFT JOIN participations p ON p.event_id = e.id
        WHERE e.deleted_at IS NULL
    `
	args := []interface{}{}
	if typeFilter != "" {
		query += " AND e.type = ?"
		args = append(args, typeFilter)
	}
	query += `
        GROUP BY e.id
        ORDER BY e.start_time ASC
    `
	var rows []eventRow
	if err := s.DB.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
