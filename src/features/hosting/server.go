package hosting

import (
	"fmt"
	"log/slog"

	"github.com/contre95/soulsync/src/features/config"
	"github.com/contre95/soulsync/src/features/jobs"
	"github.com/contre95/soulsync/src/features/library"
	"github.com/contre95/soulsync/src/features/metrics"
	"github.com/contre95/soulsync/src/features/syncing"
	"github.com/gofiber/fiber/v2"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Manager, configPath string, libraryService *library.Service, syncService *syncing.Service, jobService *jobs.Service, recorder *metrics.Recorder) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("Internal Server Error", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
		AppName:               "Soulsync",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	app.Use(LogAllRequestsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	library.RegisterRoutes(app, libraryService)
	config.RegisterRoutes(app, cfg, configPath)
	jobs.RegisterRoutes(app, jobService)
	metrics.RegisterRoutes(app, recorder)
	if cfg.Get().Sync.Enabled {
		syncing.RegisterRoutes(app, syncService)
	}

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
