package library

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the library feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new library handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetTracks returns all catalog tracks.
func (h *Handler) GetTracks(c *fiber.Ctx) error {
	slog.Debug("GetTracks handler called")
	return c.JSON(h.service.GetTracks())
}

// GetTrack returns one track by ID.
func (h *Handler) GetTrack(c *fiber.Ctx) error {
	id := c.Params("id")
	track, err := h.service.GetTrack(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(track)
}

// GetArtists returns the distinct artist names.
func (h *Handler) GetArtists(c *fiber.Ctx) error {
	return c.JSON(h.service.GetArtists())
}

// GetAlbums returns the distinct album names.
func (h *Handler) GetAlbums(c *fiber.Ctx) error {
	return c.JSON(h.service.GetAlbums())
}

// GetGenres returns the distinct genre names.
func (h *Handler) GetGenres(c *fiber.Ctx) error {
	return c.JSON(h.service.GetGenres())
}

// GetPlaylists returns all playlists.
func (h *Handler) GetPlaylists(c *fiber.Ctx) error {
	return c.JSON(h.service.GetPlaylists())
}

// GetPlaylist returns one playlist by name.
func (h *Handler) GetPlaylist(c *fiber.Ctx) error {
	name := c.Params("name")
	playlist, err := h.service.GetPlaylist(name)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(playlist)
}

// GetStats returns catalog counts and total size.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	return c.JSON(h.service.GetStats())
}
