package bot

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/skillspace/internal/catalog"
	"github.com/example/skillspace/internal/config"
	"github.com/example/skillspace/internal/session"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// sender is the part of the Telegram API the handlers use
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot represents the Telegram bot application
type Bot struct {
	api     sender
	config  config.TelegramConfig
	store   *session.Store
	catalog *catalog.Catalog
	logger  *zap.Logger

	// strike watchers started by /strike
	watchers sync.WaitGroup
}

// New creates a new bot instance. The Telegram connection is made by Start.
func New(cfg config.TelegramConfig, store *session.Store, cat *catalog.Catalog, logger *zap.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{config: cfg, store: store, catalog: cat, logger: logger}, nil
}

// Start connects to Telegram and handles updates until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	botAPI, err := tgbotapi.NewBotAPI(b.config.Token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %w", err)
	}
	botAPI.Debug = b.config.Debug
	b.api = botAPI
	b.logger.Info("authorized on account", zap.String("username", botAPI.Self.UserName))

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := botAPI.GetUpdatesChan(updateConfig)

	var handlers sync.WaitGroup
	defer func() {
		botAPI.StopReceivingUpdates()
		handlers.Wait()
		b.watchers.Wait()
		b.logger.Info("bot stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			handlers.Add(1)
			go func() {
				defer handlers.Done()
				b.handleUpdate(ctx, update)
			}()
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	var err error
	switch {
	case update.Message != nil && update.Message.IsCommand():
		err = b.HandleCommand(ctx, update.Message)
	case update.Message != nil:
		err = b.reply(update.Message.Chat.ID, "I don't understand. Use /start to show the main menu.", true)
	case update.CallbackQuery != nil:
		err = b.HandleCallback(ctx, update.CallbackQuery)
	}
	if err != nil {
		b.logger.Error("failed to handle update", zap.Int("update_id", update.UpdateID), zap.Error(err))
	}
}

// sessionFor returns the dashboard session of a Telegram chat
func (b *Bot) sessionFor(chatID int64) *session.Session {
	return b.store.GetOrCreate("tg:" + strconv.FormatInt(chatID, 10))
}

// reply sends a plain text message, optionally with the main menu
func (b *Bot) reply(chatID int64, text string, menu bool) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if menu {
		msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	}
	return b.sendMessage(msg)
}

func (b *Bot) sendMessage(msg tgbotapi.Chattable) error {
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// MainMenuButtons returns the buttons for the main menu
func (b *Bot) MainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{
			{Text: "📊 Stats", CallbackData: callbackStats},
			{Text: "🎯 Daily Missions", CallbackData: callbackMissions},
		},
		{
			{Text: "📚 Skills", CallbackData: callbackSkills},
			{Text: "🛡️ Guilds", CallbackData: callbackGuilds},
		},
		{
			{Text: "⚔️ War Room", CallbackData: callbackWarRoom},
			{Text: "📝 Tasks", CallbackData: callbackTasks},
		},
	}
}
