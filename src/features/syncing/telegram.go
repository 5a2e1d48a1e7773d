package syncing

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramHandler handles Telegram commands for the syncing feature
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for the syncing feature
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand processes sync-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	switch command {
	case "devices":
		return h.handleDeviceList(bot, chatID)
	case "sync":
		return h.handleSync(bot, chatID, args)
	default:
		msg := tgbotapi.NewMessage(chatID, "❌ Unknown command. Use /devices or /sync <uuid>")
		msg.ParseMode = tgbotapi.ModeMarkdown
		bot.Send(msg)
		return nil
	}
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"devices": "Lists devices and their statuses",
		"sync":    "Starts a sync for a device: /sync <uuid>",
	}
}

// HandleCallback handles callback queries for this feature (syncing has no callbacks)
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}

// handleDeviceList shows sync device status
func (h *TelegramHandler) handleDeviceList(bot *tgbotapi.BotAPI, chatID int64) error {
	statuses := h.service.GetStatus()

	if len(statuses) == 0 {
		msg := tgbotapi.NewMessage(chatID, "🔄 *No sync devices configured*")
		msg.ParseMode = tgbotapi.ModeMarkdown
		bot.Send(msg)
		return nil
	}

	message := "🔄 *Sync Device Status*\n\n"
	for _, status := range statuses {
		mountStatus := "❌ Not mounted"
		if status.Mounted {
			mountStatus = fmt.Sprintf("✅ Mounted at `%s`", status.MountPath)
		}

		syncStatus := ""
		if _, running := h.service.findRunningSyncJob(status.UUID); running {
			syncStatus = " (🔄 Syncing...)"
		}

		message += fmt.Sprintf("💾 *%s* (`%s`): %s%s\n", status.Name, status.UUID, mountStatus, syncStatus)

		if status.Error != "" {
			message += fmt.Sprintf("   ⚠️ Error: %s\n", status.Error)
		}
	}

	msg := tgbotapi.NewMessage(chatID, message)
	msg.ParseMode = tgbotapi.ModeMarkdown
	bot.Send(msg)
	return nil
}

// handleSync starts a sync job for the given device UUID
func (h *TelegramHandler) handleSync(bot *tgbotapi.BotAPI, chatID int64, args string) error {
	if args == "" {
		msg := tgbotapi.NewMessage(chatID, "❌ Usage: /sync <uuid>")
		msg.ParseMode = tgbotapi.ModeMarkdown
		bot.Send(msg)
		return nil
	}

	jobID, err := h.service.StartSync(args)
	if err != nil {
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Could not start sync: %s", err.Error()))
		msg.ParseMode = tgbotapi.ModeMarkdown
		bot.Send(msg)
		return nil
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("🔄 *Sync started* (job `%s`)", jobID))
	msg.ParseMode = tgbotapi.ModeMarkdown
	bot.Send(msg)
	return nil
}
