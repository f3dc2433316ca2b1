package services

import (
	"errors"
	"log"
	"time"

	"beach-cleanup-system/metrics"
	"beach-cleanup-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationService struct {
	DB *gorm.DB
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{DB: db}
}

// CheckRegistration is the pure validation chain behind Register: it decides
// whether a participation may be created given the event, the current
// participant count and whether the pair already exists. Check order is
// fixed: duplicate before capacity before closed, so a re-registering user
// always hears "already registered" rather than "event full".
func CheckRegistration(event *models.Event, participantCount int64, alreadyRegistered bool, now time.Time) error {
	if event == nil {
		return ErrNotFound
	}
	if alreadyRegistered {
		return ErrAlreadyRegistered
	}
	if event.MaxParticipants > 0 && participantCount >= int64(event.MaxParticipants) {
		return ErrCapacityExceeded
	}
	if EventStatusOf(event, now) == StatusCompleted {
		return ErrEventClosed
	}
	return nil
}

// Register records that a user intends to participate in an event. The whole
// read-check-insert sequence runs in one transaction; the composite unique
// index on (user_id, event_id) backstops concurrent attempts, so a race loser
// gets AlreadyRegistered instead of corrupting the count. No counter is
// incremented anywhere — participant counts are always recomputed on read.
func (s *RegistrationService) Register(userID, eventID string) (*models.Participation, error) {
	if userID == "" || eventID == "" {
		return nil, ErrInvalidInput
	}

	var created models.Participation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, "id = ?", eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.Participation{}).
			Where("user_id = ? AND event_id = ?", userID, eventID).
			Count(&existing).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Participation{}).
			Where("event_id = ?", eventID).
			Count(&count).Error; err != nil {
			return err
		}

		if err := CheckRegistration(&event, count, existing > 0, time.Now()); err != nil {
			return err
		}

		created = models.Participation{
			ID:      uuid.NewString(),
			UserID:  userID,
			EventID: eventID,
		}
		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRegistered
			}
			return err
		}
		return nil
	})
	if err != nil {
		if isRegistrationError(err) {
			metrics.RegistrationRejections.WithLabelValues(rejectionReason(err)).Inc()
			return nil, err
		}
		log.Printf("[REGISTRATION] ❌ register failed (user=%s event=%s): %v", userID, eventID, err)
		return nil, ErrUnavailable
	}

	metrics.RegistrationsTotal.Inc()

	// Fire-and-forget: badge thresholds may newly be met.
	badgeSvc := NewBadgeService(s.DB)
	if err := badgeSvc.AutoAwardBadges(userID); err != nil {
		log.Printf("[REGISTRATION] ⚠️ badge auto-award failed for %s: %v", userID, err)
	}

	return &created, nil
}

// RegisterForEvent handles POST /events/:id/register. The user id comes from
// the request body, falling back to the gateway's user context.
func (s *RegistrationService) RegisterForEvent(c *fiber.Ctx) error {
	type Req struct {
		UserID string `json:"user_id"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	userID := req.UserID
	if userID == "" {
		userID, _ = c.Locals("user_id").(string)
	}

	participation, err := s.Register(userID, c.Params("id"))
	if err != nil {
		return registrationError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"message":       "registration created",
		"participation": participation,
	})
}

// CancelRegistration handles DELETE /events/:id/register.
func (s *RegistrationService) CancelRegistration(c *fiber.Ctx) error {
	type Req struct {
		UserID string `json:"user_id"`
	}
	var req Req
	_ = c.BodyParser(&req)
	userID := req.UserID
	if userID == "" {
		userID, _ = c.Locals("user_id").(string)
	}

	if err := s.Cancel(userID, c.Params("id")); err != nil {
		return registrationError(c, err)
	}
	return c.JSON(fiber.Map{"message": "registration cancelled"})
}

// registrationError maps the registration error taxonomy onto HTTP statuses.
// Registration failures are actionable by the caller, so each gets its own
// distinct body — never a generic 500.
func registrationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "event not found"})
	case errors.Is(err, ErrAlreadyRegistered):
		return c.Status(409).JSON(fiber.Map{"error": "user already registered"})
	case errors.Is(err, ErrCapacityExceeded):
		return c.Status(403).JSON(fiber.Map{"error": "event is full"})
	case errors.Is(err, ErrEventClosed):
		return c.Status(403).JSON(fiber.Map{"error": "event is completed"})
	case errors.Is(err, ErrInvalidInput):
		return c.Status(400).JSON(fiber.Map{"error": "user_id and event id required"})
	default:
		return c.Status(503).JSON(fiber.Map{"error": "registration temporarily unavailable"})
	}
}

// Cancel removes a participation — the symmetric inverse of Register.
func (s *RegistrationService) Cancel(userID, eventID string) error {
	if userID == "" || eventID == "" {
		return ErrInvalidInput
	}
	res := s.DB.Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&models.Participation{})
	if res.Error != nil {
		log.Printf("[REGISTRATION] ❌ cancel failed (user=%s event=%s): %v", userID, eventID, res.Error)
		return ErrUnavailable
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ParticipantCount recomputes the derived count for one event.
func (s *RegistrationService) ParticipantCount(eventID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Participation{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return 0, ErrUnavailable
	}
	return count, nil
}

func isRegistrationError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAlreadyRegistered) ||
		errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrEventClosed)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrEventClosed):
		return "event_closed"
	default:
		return "other"
	}
}
