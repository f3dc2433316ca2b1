// handlers/beaches.go
package handlers

import (
	"beach-cleanup-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBeachRoutes(app *fiber.App, beachService *services.BeachService) {
	app.Get("/beaches", beachService.ListBeaches)
	app.Get("/beaches/map", beachService.GetBeachesMap)
	app.Patch("/beaches/:id/status", beachService.UpdateBeachStatus)
}
