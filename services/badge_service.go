package services

import (
	"errors"
	"log"

	"beach-cleanup-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BadgeService struct {
	DB *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{DB: db}
}

// SeedBadgeCatalog inserts the trigger catalog, skipping codes already
// present (idempotent at boot).
func (s *BadgeService) SeedBadgeCatalog() error {
	for _, trigger := range models.BadgeTriggers {
		var count int64
		if err := s.DB.Model(&models.BadgeType{}).
			Where("code = ?", trigger.Code).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		trigger.ID = uuid.NewString()
		if err := s.DB.Create(&trigger).Error; err != nil {
			return err
		}
		log.Printf("🎖️ Seeded badge type: %s", trigger.Code)
	}
	return nil
}

// AutoAwardBadges checks every trigger against the user's derived totals and
// awards whatever is newly met. Called after registrations and by the
// reconcile job.
func (s *BadgeService) AutoAwardBadges(userID string) error {
	var eventCount int64
	if err := s.DB.Model(&models.Participation{}).
		Where("user_id = ?", userID).
		Count(&eventCount).Error; err != nil {
		return err
	}

	// Waste over completed events only — the same reconciliation rule the
	// cached user column follows.
	var wasteKg float64
	err := s.DB.Raw(`
		SELECT COALESCE(SUM(e.waste_collected), 0)
		FROM participations p
		INNER JOIN events e ON e.id = p.event_id
		WHERE p.user_id = ?
		  AND (e.active = false OR (e.end_time IS NOT NULL AND e.end_time < NOW()))
	`, userID).Scan(&wasteKg).Error
	if err != nil {
		return err
	}

	var triggers []models.BadgeType
	if err := s.DB.Find(&triggers).Error; err != nil {
		return err
	}

	for _, trigger := range triggers {
		if eventCount < trigger.MinEvents || wasteKg < trigger.MinWasteKg {
			continue
		}
		if trigger.MinEvents == 0 && trigger.MinWasteKg == 0 {
			continue
		}
		if err := s.Award(userID, trigger.ID); err != nil {
			if errors.Is(err, ErrDuplicateBadge) {
				continue
			}
			return err
		}
		log.Printf("🎖️ Badge awarded: %s → %s", trigger.Name, userID)
	}
	return nil
}

// Award grants one badge; a repeated grant for the same pair is a conflict.
func (s *BadgeService) Award(userID, badgeTypeID string) error {
	var count int64
	if err := s.DB.Model(&models.UserBadge{}).
		Where("user_id = ? AND badge_type_id = ?", userID, badgeTypeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateBadge
	}
	ub := models.UserBadge{
		ID:          uuid.NewString(),
		UserID:      userID,
		BadgeTypeID: badgeTypeID,
	}
	if err := s.DB.Create(&ub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateBadge
		}
		return err
	}
	return nil
}

// UserBadges returns the user's badges with catalog details and the icon key
// resolved through the enumerated set (unknown keys fall back to default).
func (s *BadgeService) UserBadges(userID string) ([]fiber.Map, error) {
	type row struct {
		models.UserBadge
		Code        string
		Name        string
		Description string
		Icon        string
	}
	var rows []row
	err := s.DB.Raw(`
		SELECT ub.id, ub.user_id, ub.badge_type_id, ub.awarded_at,
		       bt.code, bt.name, bt.description, bt.icon
		FROM user_badges ub
		INNER JOIN badge_types bt ON bt.id = ub.badge_type_id
		WHERE ub.user_id = ?
		ORDER BY ub.awarded_at ASC
	`, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		out = append(out, fiber.Map{
			"id":            r.UserBadge.ID,
			"badge_type_id": r.BadgeTypeID,
			"code":          r.Code,
			"name":          r.Name,
			"description":   r.Description,
			"icon":          models.ParseBadgeIcon(r.Icon),
			"awarded_at":    r.AwardedAt,
		})
	}
	return out, nil
}

// ListBadges returns the whole catalog.
func (s *BadgeService) ListBadges(c *fiber.Ctx) error {
	var badges []models.BadgeType
	if err := s.DB.Order("created_at ASC").Find(&badges).Error; err != nil {
		return c.Status(503).JSON(fiber.Map{"error": "failed to fetch badges"})
	}

	out := make([]fiber.Map, 0, len(badges))
	for _, b := range badges {
		out = append(out, fiber.Map{
			"id":          b.ID,
			"code":        b.Code,
			"name":        b.Name,
			"description": b.Description,
			"icon":        models.ParseBadgeIcon(b.Icon),
		})
	}
	return c.JSON(out)
}
