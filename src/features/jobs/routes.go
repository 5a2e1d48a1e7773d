package jobs

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers job-related routes
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	app.Get("/jobs", handler.GetJobs)
	app.Get("/jobs/:id", handler.GetJob)
	app.Post("/jobs/:id/cancel", handler.CancelJob)
}
