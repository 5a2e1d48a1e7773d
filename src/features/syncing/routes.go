package syncing

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers sync-related routes
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	app.Get("/sync/devices", handler.GetSyncStatus)
	app.Get("/sync/device/:uuid", handler.GetDeviceStatus)
	app.Get("/sync/device/:uuid/plan", handler.GetPlan)
	app.Get("/sync/device/:uuid/profile", handler.GetProfile)
	app.Put("/sync/device/:uuid/profile", handler.UpdateProfile)
	app.Post("/sync/device/:uuid/trigger", handler.TriggerSync)
	app.Post("/sync/device/:uuid/cancel", handler.CancelSync)
}
