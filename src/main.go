package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/contre95/soulsync/src/features/config"
	"github.com/contre95/soulsync/src/features/hosting"
	"github.com/contre95/soulsync/src/features/jobs"
	"github.com/contre95/soulsync/src/features/library"
	"github.com/contre95/soulsync/src/features/logging"
	"github.com/contre95/soulsync/src/features/metrics"
	"github.com/contre95/soulsync/src/features/syncing"
	"github.com/contre95/soulsync/src/infra/database"
	"github.com/contre95/soulsync/src/infra/destination"
	"github.com/contre95/soulsync/src/infra/itunes"
	"github.com/contre95/soulsync/src/infra/scanner"
	"github.com/contre95/soulsync/src/music"
)

const configPath = "config.yaml"

func main() {
	// Load configuration
	cfgManager, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	// Load the catalog snapshot
	catalog, err := loadCatalog(cfgManager.Get().Catalog)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	slog.Info("Catalog loaded", "tracks", catalog.Size(), "playlists", len(catalog.Playlists()))

	libraryService := library.NewService(catalog)

	// Create the job service
	jobService := jobs.NewService(&cfgManager.Get().Jobs)

	recorder := metrics.NewRecorder()

	// Create the syncing service
	syncService := syncing.NewService(cfgManager, jobService, catalog, destination.NewReader(), destination.NewExecutor(), recorder)
	if cfgManager.Get().Sync.Enabled {
		syncService.Start()
		defer syncService.Stop()
	}

	// Register the sync Task
	syncTask := syncing.NewSyncTask(syncService)
	jobService.RegisterHandler("volume_sync", jobs.NewBaseTaskHandler(syncTask))

	// Create and start the Telegram bot if enabled
	var telegramBot *hosting.TelegramBot
	if cfgManager.Get().Telegram.Enabled {
		var err error
		telegramBot, err = hosting.NewTelegramBot(cfgManager, libraryService, syncService)
		if err != nil {
			slog.Error("Failed to initialize Telegram bot", "error", err)
		} else {
			go telegramBot.Start()
			slog.Info("Telegram bot started")
		}
	}

	// Create and start the HTTP server
	server := hosting.NewServer(cfgManager, configPath, libraryService, syncService, jobService, recorder)
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfgManager.Get().Server.Port)

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	slog.Info("Shutting down server...")

	// Shutdown the Telegram bot
	if telegramBot != nil {
		telegramBot.Stop()
		slog.Info("Telegram bot stopped")
	}

	// Shutdown the server
	if err := server.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}
	slog.Info("Server gracefully shut down.")
}

// loadCatalog builds the catalog from the configured source.
func loadCatalog(cfg config.Catalog) (*music.Catalog, error) {
	var source music.CatalogSource
	switch cfg.Source {
	case "itunes":
		source = itunes.NewLibrary(cfg.Path)
	case "sqlite":
		store, err := database.NewSqliteCatalog(cfg.Path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		source = store
	default:
		source = scanner.NewScanner(cfg.Path)
	}
	return source.LoadCatalog()
}
