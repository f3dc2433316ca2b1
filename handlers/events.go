// handlers/events.go
package handlers

import (
	"beach-cleanup-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupEventRoutes(app *fiber.App, eventService *services.EventService, registrationService *services.RegistrationService) {
	app.Get("/events", eventService.GetAllEvents)
	app.Get("/events/map", eventService.GetEventsMap)
	app.Post("/events", eventService.CreateEvent)
	app.Get("/events/:id", eventService.GetEventByID)
	app.Put("/events/:id", eventService.UpdateEvent)
	app.Patch("/events/:id/status", eventService.UpdateEventStatus)
	app.Delete("/events/:id", eventService.DeleteEvent)
	app.Get("/events/:id/participants", eventService.GetEventParticipants)

	app.Post("/events/:id/register", registrationService.RegisterForEvent)
	app.Delete("/events/:id/register", registrationService.CancelRegistration)
}
