// handlers/stats.go
package handlers

import (
	"beach-cleanup-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupStatsRoutes(app *fiber.App, statsService *services.StatsService, badgeService *services.BadgeService) {
	app.Get("/stats", statsService.GetStats)
	app.Get("/leaderboard", statsService.GetLeaderboard)
	app.Get("/badges", badgeService.ListBadges)
}
