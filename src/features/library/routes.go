package library

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the library feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	library := app.Group("/library")
	library.Get("/stats", handler.GetStats)
	library.Get("/artists", handler.GetArtists)
	library.Get("/albums", handler.GetAlbums)
	library.Get("/genres", handler.GetGenres)
	library.Get("/playlists", handler.GetPlaylists)
	library.Get("/playlists/:name", handler.GetPlaylist)
	library.Get("/tracks", handler.GetTracks)
	library.Get("/tracks/:id", handler.GetTrack)
}
