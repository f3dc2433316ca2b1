package services

import (
	"errors"
	"log"
	"strconv"
	"time"

	"beach-cleanup-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StatsService serves every derived-number endpoint. Each request loads one
// snapshot and computes everything from it, so the figures shown together on
// a page cannot disagree.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

func (s *StatsService) GetStats(c *fiber.Ctx) error {
	snap, err := LoadSnapshot(s.DB)
	if err != nil {
		log.Printf("ERROR loading snapshot for stats: %v", err)
		return c.Status(503).JSON(fiber.Map{"error": "stats temporarily unavailable"})
	}
	return c.JSON(ComputeStats(snap, time.Now()))
}

func (s *StatsService) GetLeaderboard(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = DefaultLeaderboardSize
	}

	snap, err := LoadSnapshot(s.DB)
	if err != nil {
		log.Printf("ERROR loading snapshot for leaderboard: %v", err)
		return c.Status(503).JSON(fiber.Map{"error": "leaderboard temporarily unavailable"})
	}
	return c.JSON(Leaderboard(snap, time.Now(), limit))
}

// GetUserProfile composes the gamified profile: level, level name, progress,
// derived waste/event totals and earned badges. The user id comes from the
// gateway's user context.
func (s *StatsService) GetUserProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		userID = c.Params("id")
	}
	if userID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "user id required"})
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(503).JSON(fiber.Map{"error": "DB error fetching user"})
	}

	snap, err := LoadSnapshot(s.DB)
	if err != nil {
		log.Printf("ERROR loading snapshot for profile: %v", err)
		return c.Status(503).JSON(fiber.Map{"error": "profile temporarily unavailable"})
	}
	sum := UserStats(snap, time.Now(), userID)

	badgeSvc := NewBadgeService(s.DB)
	badges, err := badgeSvc.UserBadges(userID)
	if err != nil {
		log.Printf("ERROR fetching badges for %s: %v", userID, err)
		badges = nil
	}

	return c.JSON(fiber.Map{
		"id":                  user.ID,
		"name":                user.Name,
		"email":               user.Email,
		"joined_at":           user.JoinedAt,
		"level":               user.Level,
		"level_name":          LevelName(user.Level),
		"level_progress":      LevelProgress(sum.Waste),
		"waste_collected":     sum.Waste,
		"events_participated": sum.Events,
		"badges":              badges,
	})
}
