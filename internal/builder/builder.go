package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/oselik/nutriplan-backend/internal/api"
	conversationapi "github.com/oselik/nutriplan-backend/internal/api/conversation"
	"github.com/oselik/nutriplan-backend/internal/config"
	"github.com/oselik/nutriplan-backend/internal/conversation"
	"github.com/oselik/nutriplan-backend/internal/generation"
	"github.com/oselik/nutriplan-backend/internal/integration/llm"
	"github.com/oselik/nutriplan-backend/internal/pkg/formatter"
	"github.com/oselik/nutriplan-backend/internal/pkg/validator"
	"github.com/oselik/nutriplan-backend/internal/repository"
	"github.com/oselik/nutriplan-backend/internal/telegram"
	"github.com/oselik/nutriplan-backend/internal/usecase/session"
)

// prober is the startup reachability check every connector offers
type prober interface {
	Ping(ctx context.Context) error
}

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	sessionUC, err := buildSessionUsecase(cfg, logger)
	if err != nil {
		return nil, err
	}

	// Setup API handlers
	conversationHandler := conversationapi.NewHandler(sessionUC)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(conversationHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server. Write timeout leaves room for a synchronous
	// generation round trip.
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	sessionUC, err := buildSessionUsecase(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	telegramStateStore := repository.NewTelegramStateCache(cfg.SessionStoreCfg)

	bot, err := telegram.NewBot(&cfg.TelegramCfg, telegramStateStore, sessionUC, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

// buildSessionUsecase assembles the intake pipeline shared by the HTTP
// server and the Telegram bot.
func buildSessionUsecase(cfg *config.Config, logger *zap.Logger) (*session.SessionUsecase, error) {
	sessionStore := repository.NewSessionCache(cfg.SessionStoreCfg)
	logger.Info("Session store initialized",
		zap.Duration("ttl", cfg.SessionStoreCfg.TTL),
	)

	engine := conversation.NewEngine(cfg.Catalog)
	prompts := generation.NewBuilder(cfg.Catalog)
	logger.Info("Intake catalog loaded", zap.Int("questions", cfg.Catalog.Len()))

	// Initialize the generative connector (with mock support)
	var textGen generation.TextGenerator
	var probe prober

	if cfg.EnableMocks {
		logger.Info("Using mock connector for the generative service")
		mock := llm.NewMockConnector(logger)
		textGen = mock
		probe = mock
	} else {
		logger.Info("Using real connector for the generative service")
		conn := llm.NewConnector(cfg.LLMConnectorCfg, logger)
		textGen = conn
		probe = conn
	}

	// Reachability probe at startup only; a down service is reported
	// but does not block the build, generation will surface it per call.
	probeCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := probe.Ping(probeCtx); err != nil {
		logger.Warn("Generative service probe failed, continuing anyway",
			zap.Error(err),
		)
	} else {
		logger.Info("Generative service reachable")
	}

	generator := generation.NewClient(textGen, logger)
	answerValidator := validator.NewAnswerValidator(cfg.AnswerLimitsCfg)

	sessionUC := session.NewUsecase(
		sessionStore,
		engine,
		prompts,
		generator,
		formatter.NewFactory(),
		answerValidator,
		logger,
	)
	logger.Info("Use cases initialized")

	return sessionUC, nil
}
