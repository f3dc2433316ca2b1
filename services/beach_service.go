package services

import (
	"log"

	"beach-cleanup-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BeachService struct {
	DB *gorm.DB
}

func NewBeachService(db *gorm.DB) *BeachService {
	return &BeachService{DB: db}
}

// ListBeaches returns every tracked beach, including ones without usable
// coordinates — only the map listing filters those out.
func (s *BeachService) ListBeaches(c *fiber.Ctx) error {
	var beaches []models.Beach
	if err := s.DB.Order("created_at ASC").Find(&beaches).Error; err != nil {
		log.Printf("ERROR fetching beaches: %v", err)
		return c.Status(503).JSON(fiber.Map{"error": "failed to fetch beaches"})
	}
	return c.JSON(beaches)
}

// GetBeachesMap lists map-renderable beaches; rows with partial or
// out-of-range coordinates are skipped with a log line.
func (s *BeachService) GetBeachesMap(c *fiber.Ctx) error {
	var beaches []models.Beach
	if err := s.DB.Order("created_at ASC").Find(&beaches).Error; err != nil {
		log.Printf("ERROR fetching beaches for map: %v", err)
		return c.Status(503).JSON(fiber.Map{"error": "failed to fetch beaches"})
	}

	out := make([]models.Beach, 0, len(beaches))
	for _, b := range beaches {
		if !HasValidCoordinates(b.Latitude, b.Longitude) {
			log.Printf("⚠️ Skipping beach %s on map: invalid coordinates", b.ID)
			continue
		}
		out = append(out, b)
	}
	return c.JSON(out)
}

// UpdateBeachStatus is the manual override for the external cleanliness
// status (the sync worker handles the automated path).
func (s *BeachService) UpdateBeachStatus(c *fiber.Ctx) error {
	type Req struct {
		Status string `json:"status"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	switch req.Status {
	case models.BeachStatusClean, models.BeachStatusNeedsCleaning, models.BeachStatusCritical:
	default:
		return c.Status(400).JSON(fiber.Map{"error": "status must be clean, needs-cleaning or critical"})
	}

	res := s.DB.Model(&models.Beach{}).Where("id = ?", c.Params("id")).
		Update("status", req.Status)
	if res.Error != nil {
		return c.Status(503).JSON(fiber.Map{"error": "failed to update beach status"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "beach not found"})
	}
	return c.JSON(fiber.Map{"message": "beach status updated", "status": req.Status})
}
