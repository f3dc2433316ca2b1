package services

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"beach-cleanup-system/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db, validate: validator.New()}
}

// CreateUser creates a volunteer account. Credential handling is not this
// service's concern — identity arrives through the gateway.
func (s *UserService) CreateUser(c *fiber.Ctx) error {
	type Req struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"name" validate:"required,min=2,max=100"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if err := s.validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "validation failed", "details": err.Error()})
	}

	user := models.User{
		ID:    uuid.NewString(),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Name:  req.Name,
		Level: 1,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(409).JSON(fiber.Map{"error": "email already in use"})
		}
		log.Printf("ERROR creating user: %v", err)
		return c.Status(503).JSON(fiber.Map{"error": "failed to create user"})
	}
	return c.Status(201).JSON(user)
}

func (s *UserService) GetUserByID(c *fiber.Ctx) error {
	var user models.User
	if err := s.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(503).JSON(fiber.Map{"error": "DB error fetching user"})
	}
	return c.JSON(user)
}

// SearchUsers searches volunteers by name or email fragment.
func (s *UserService) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q", "")
	limitStr := c.Query("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	var users []models.User
	db := s.DB.Model(&models.User{}).Limit(limit)
	if query != "" {
		searchTerm := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", searchTerm, searchTerm)
	}
	if err := db.Order("created_at ASC").Find(&users).Error; err != nil {
		return c.Status(503).JSON(fiber.Map{"error": "search failed", "details": err.Error()})
	}

	type UserSummaryRes struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Level int    `json:"level"`
	}
	res := make([]UserSummaryRes, len(users))
	for i, u := range users {
		res[i] = UserSummaryRes{ID: u.ID, Name: u.Name, Email: u.Email, Level: u.Level}
	}
	return c.JSON(res)
}
