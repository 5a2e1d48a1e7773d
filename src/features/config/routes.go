package config

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers config-related routes
func RegisterRoutes(app *fiber.App, manager *Manager, path string) {
	handler := NewHandler(manager, path)

	app.Get("/config", handler.GetConfig)
	app.Post("/config/save", handler.SaveConfig)
}
