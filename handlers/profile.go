// handlers/profile.go
package handlers

import (
	"beach-cleanup-system/middleware"
	"beach-cleanup-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App, userService *services.UserService, statsService *services.StatsService) {
	app.Post("/users", userService.CreateUser)
	app.Get("/users/search", userService.SearchUsers)
	app.Get("/users/:id", userService.GetUserByID)
	app.Get("/users/:id/profile", statsService.GetUserProfile)

	// 🔐 Secured routes — user identity injected by the Gateway
	securedGroup := app.Group("/s", middleware.UserContextMiddleware())
	securedGroup.Get("/user/profile", statsService.GetUserProfile)
}
