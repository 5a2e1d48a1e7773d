package library

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramHandler handles Telegram commands for the library feature
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for the library feature
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand processes library-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	switch command {
	case "library":
		return h.handleStats(bot, chatID)
	default:
		msg := tgbotapi.NewMessage(chatID, "❌ Unknown command. Use /library")
		msg.ParseMode = tgbotapi.ModeMarkdown
		bot.Send(msg)
		return nil
	}
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"library": "Shows catalog statistics",
	}
}

// HandleCallback handles callback queries for this feature (library has no callbacks)
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}

// handleStats shows catalog counts
func (h *TelegramHandler) handleStats(bot *tgbotapi.BotAPI, chatID int64) error {
	stats := h.service.GetStats()

	message := "🎵 *Catalog*\n\n"
	message += fmt.Sprintf("Tracks: %d\n", stats.Tracks)
	message += fmt.Sprintf("Artists: %d\n", stats.Artists)
	message += fmt.Sprintf("Albums: %d\n", stats.Albums)
	message += fmt.Sprintf("Genres: %d\n", stats.Genres)
	message += fmt.Sprintf("Playlists: %d\n", stats.Playlists)
	message += fmt.Sprintf("Total size: %.1f MiB\n", float64(stats.TotalBytes)/(1024*1024))

	msg := tgbotapi.NewMessage(chatID, message)
	msg.ParseMode = tgbotapi.ModeMarkdown
	bot.Send(msg)
	return nil
}
