package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/oselik/nutriplan-backend/internal/config"
	"github.com/oselik/nutriplan-backend/internal/telegram/handlers"
	"github.com/oselik/nutriplan-backend/internal/telegram/keyboard"
	"github.com/oselik/nutriplan-backend/internal/telegram/middleware"
	"github.com/oselik/nutriplan-backend/internal/telegram/render"
	"github.com/oselik/nutriplan-backend/internal/telegram/state"
)

// Bot represents the Telegram bot
type Bot struct {
	api          *tgbotapi.BotAPI
	cfg          *config.TelegramConfig
	stateManager *state.Manager
	handlers     map[string]handlers.Handler
	callback     handlers.Handler
	sessionUC    handlers.SessionUsecase
	keyboard     *keyboard.Builder
	sender       *handlers.MessageSender
	logger       *zap.Logger
	loggingMW    *middleware.LoggingMiddleware
	recoveryMW   *middleware.RecoveryMiddleware
	rateLimitMW  *middleware.RateLimiterMiddleware
	updatesChan  tgbotapi.UpdatesChannel
	stopChan     chan struct{}
	wg           sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	stateManager *state.Manager,
	sessionUC handlers.SessionUsecase,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:          api,
		cfg:          cfg,
		stateManager: stateManager,
		sessionUC:    sessionUC,
		keyboard:     keyboard.NewBuilder(),
		sender:       handlers.NewMessageSender(api, logger),
		logger:       logger,
		handlers:     make(map[string]handlers.Handler),
		stopChan:     make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot, nil
}

// GetAPI exposes the underlying bot API for handler construction
func (b *Bot) GetAPI() *tgbotapi.BotAPI { return b.api }

// GetStateManager exposes the state manager for handler construction
func (b *Bot) GetStateManager() *state.Manager { return b.stateManager }

// GetSessionUsecase exposes the usecase for handler construction
func (b *Bot) GetSessionUsecase() handlers.SessionUsecase { return b.sessionUC }

// GetKeyboard exposes the keyboard builder for handler construction
func (b *Bot) GetKeyboard() *keyboard.Builder { return b.keyboard }

// RegisterHandler registers a state-specific message handler
func (b *Bot) RegisterHandler(h handlers.Handler) {
	if h.GetState() == handlers.HandlerStateCallback {
		b.callback = h
		return
	}
	b.handlers[h.GetState()] = h
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)
	b.updatesChan = updates

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through the middleware chain
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

// handleUpdate routes update to the appropriate handler
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger)

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
		return
	}
}

// handleMessage handles incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	userID := message.From.ID
	chatSession, err := b.stateManager.GetSession(ctx, userID)
	if err != nil || chatSession.SessionID == "" {
		b.sender.Send(message.Chat.ID, render.MsgNoSession, nil)
		return
	}

	session, err := b.sessionUC.GetSession(ctx, chatSession.SessionID)
	if err != nil {
		ctxzap.Warn(ctx, "failed to load intake session",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		b.sender.Send(message.Chat.ID, render.MsgNoSession, nil)
		return
	}

	handler, exists := b.handlers[string(session.Status)]
	if !exists {
		// Outside the question loop everything happens through buttons.
		b.sender.Send(message.Chat.ID, render.ErrInvalidState, nil)
		return
	}

	msg := &handlers.Message{
		ChatID:    message.Chat.ID,
		UserID:    message.From.ID,
		MessageID: message.MessageID,
		Text:      message.Text,
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.String("state", string(session.Status)),
			zap.Int64("user_id", userID),
		)
		b.sender.Send(message.Chat.ID, render.ErrGeneric, nil)
	}
}

// handleCallbackQuery hands button clicks to the callback handler
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if b.callback == nil {
		ctxzap.Warn(ctx, "no callback handler registered")
		return
	}

	msg := &handlers.Message{
		ChatID:       query.Message.Chat.ID,
		UserID:       query.From.ID,
		MessageID:    query.Message.MessageID,
		CallbackData: query.Data,
		CallbackID:   query.ID,
	}

	if err := b.callback.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "callback handler error",
			zap.Error(err),
			zap.Int64("user_id", query.From.ID),
		)
		b.sender.Send(query.Message.Chat.ID, render.ErrGeneric, nil)
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	switch command {
	case "start":
		b.sender.Send(message.Chat.ID, render.MsgWelcome, b.keyboard.StartKeyboard())
	case "help":
		b.sender.Send(message.Chat.ID, render.MsgHelp, nil)
	case "restart":
		b.handleRestartCommand(ctx, message)
	case "cancel":
		b.handleCancelCommand(ctx, message)
	default:
		b.sender.Send(message.Chat.ID, "❌ Unknown command. Use /start", nil)
	}
}

// handleRestartCommand resets the intake to the first question
func (b *Bot) handleRestartCommand(ctx context.Context, message *tgbotapi.Message) {
	chatSession, err := b.stateManager.GetSession(ctx, message.From.ID)
	if err != nil || chatSession.SessionID == "" {
		b.sender.Send(message.Chat.ID, render.MsgNoSession, nil)
		return
	}

	session, err := b.sessionUC.Restart(ctx, chatSession.SessionID)
	if err != nil {
		ctxzap.Error(ctx, "failed to restart session", zap.Error(err))
		b.sender.Send(message.Chat.ID, render.ErrGeneric, nil)
		return
	}

	b.sender.Send(message.Chat.ID, render.MsgRestarted, nil)
	if len(session.Transcript) > 0 {
		first := session.Transcript[len(session.Transcript)-1]
		if len(first.Options) > 0 {
			b.sender.Send(message.Chat.ID, first.Text, b.keyboard.OptionsKeyboard(first.Options))
		} else {
			b.sender.Send(message.Chat.ID, first.Text, nil)
		}
	}
}

// handleCancelCommand drops the session entirely
func (b *Bot) handleCancelCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatSession, err := b.stateManager.GetSession(ctx, userID)
	if err != nil || chatSession.SessionID == "" {
		b.sender.Send(message.Chat.ID, render.MsgNoSession, nil)
		return
	}

	if err := b.sessionUC.DeleteSession(ctx, chatSession.SessionID); err != nil {
		ctxzap.Error(ctx, "failed to delete session",
			zap.Error(err),
			zap.String("session_id", chatSession.SessionID),
		)
	}

	if err := b.stateManager.Unbind(ctx, userID); err != nil {
		ctxzap.Error(ctx, "failed to unbind chat session",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
	}

	b.sender.Send(message.Chat.ID, render.MsgSessionFinished, nil)
}
