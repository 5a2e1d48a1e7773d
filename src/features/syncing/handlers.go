package syncing

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for volume syncing
type Handler struct {
	service *Service
}

// NewHandler creates a new sync handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetSyncStatus returns the current sync status of all devices
func (h *Handler) GetSyncStatus(c *fiber.Ctx) error {
	slog.Debug("GetSyncStatus handler called")
	return c.JSON(h.service.GetStatus())
}

// GetDeviceStatus returns the status of a specific device
func (h *Handler) GetDeviceStatus(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	slog.Debug("GetDeviceStatus handler called", "uuid", uuid)
	status, exists := h.service.GetDeviceStatus(uuid)
	if !exists {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "device not found",
		})
	}
	return c.JSON(status)
}

// GetPlan builds and returns a plan preview without executing it
func (h *Handler) GetPlan(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	slog.Debug("GetPlan handler called", "uuid", uuid)
	plan, report, err := h.service.PlanDevice(uuid)
	if err != nil {
		slog.Error("Failed to build plan", "uuid", uuid, "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"report":     report,
		"operations": plan.Ops,
	})
}

// GetProfile returns the profile stored on the device's volume
func (h *Handler) GetProfile(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	slog.Debug("GetProfile handler called", "uuid", uuid)
	profile, err := h.service.DeviceProfile(uuid)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(profile)
}

// UpdateProfile stores a new profile on the device's volume
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	slog.Debug("UpdateProfile handler called", "uuid", uuid)

	var profile Profile
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid profile payload",
		})
	}
	if err := profile.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err := h.service.UpdateDeviceProfile(uuid, profile); err != nil {
		slog.Error("Failed to save profile", "uuid", uuid, "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Profile saved",
		"uuid":    uuid,
	})
}

// TriggerSync manually triggers a sync for a device
func (h *Handler) TriggerSync(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	slog.Debug("TriggerSync handler called", "uuid", uuid)
	jobID, err := h.service.StartSync(uuid)
	if err != nil {
		slog.Error("Failed to start sync job", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	slog.Info("TriggerSync: sync job started", "jobID", jobID)
	return c.JSON(fiber.Map{
		"message": "Sync job started",
		"jobID":   jobID,
	})
}

// CancelSync cancels an ongoing sync operation
func (h *Handler) CancelSync(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	slog.Debug("CancelSync handler called", "uuid", uuid)
	err := h.service.CancelSync(uuid)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Sync cancelled",
		"uuid":    uuid,
	})
}
