package config

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the configuration.
type Handler struct {
	manager *Manager
	path    string
}

// NewHandler creates a new config handler.
func NewHandler(manager *Manager, path string) *Handler {
	return &Handler{manager: manager, path: path}
}

// GetConfig returns the current (redacted) configuration.
func (h *Handler) GetConfig(c *fiber.Ctx) error {
	slog.Debug("GetConfig handler called")
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(h.manager.GetJSON())
}

// SaveConfig persists the current configuration to disk.
func (h *Handler) SaveConfig(c *fiber.Ctx) error {
	slog.Debug("SaveConfig handler called")
	if err := h.manager.Save(h.path); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Configuration saved"})
}
