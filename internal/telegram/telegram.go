package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/oselik/nutriplan-backend/internal/config"
	"github.com/oselik/nutriplan-backend/internal/telegram/bot"
	"github.com/oselik/nutriplan-backend/internal/telegram/handlers"
	"github.com/oselik/nutriplan-backend/internal/telegram/state"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	storage state.Storage,
	sessionUC handlers.SessionUsecase,
	logger *zap.Logger,
) (Bot, error) {
	stateManager := state.NewManager(storage)

	b, err := bot.New(cfg, stateManager, sessionUC, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	registerHandlers(b, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// registerHandlers registers all handlers with the bot
func registerHandlers(b *bot.Bot, logger *zap.Logger) {
	api := b.GetAPI()
	stateManager := b.GetStateManager()
	sessionUC := b.GetSessionUsecase()
	kb := b.GetKeyboard()

	// Callback handler covers every inline button
	callbackHandler := handlers.NewCallbackHandler(api, stateManager, sessionUC, kb, logger)
	b.RegisterHandler(callbackHandler)

	// Typed answers are only meaningful while a question is open
	answerHandler := handlers.NewAnswerHandler(api, stateManager, sessionUC, kb, logger)
	b.RegisterHandler(answerHandler)

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 2),
	)
}
