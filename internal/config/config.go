package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/oselik/nutriplan-backend/internal/catalog"
	pkgRetry "github.com/oselik/nutriplan-backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Generative service configuration
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`

	// Session store configuration
	SessionStoreCfg SessionStoreConfig `envPrefix:"SESSION_"`

	// Answer validation limits
	AnswerLimitsCfg AnswerLimitsConfig `envPrefix:"ANSWER_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS,notEmpty"`

	// Telegram bot configuration
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Intake question catalog (loaded from JSON file, built-in default otherwise)
	Catalog *catalog.Catalog

	// Environment (set from flag, not from env var)
	Environment string
}

// LLMConnectorConfig configures the OpenAI-compatible generative service.
type LLMConnectorConfig struct {
	HTTPClientConfig
	ChatCompletionsEndpoint string  `env:"CHAT_COMPLETIONS_ENDPOINT" envDefault:"/v1/chat/completions"`
	ModelsEndpoint          string  `env:"MODELS_ENDPOINT" envDefault:"/v1/models"`
	Model                   string  `env:"MODEL,notEmpty"`
	Temperature             float64 `env:"TEMPERATURE" envDefault:"0.7"`

	// Probe controls the startup reachability check only. Generation
	// requests themselves are never retried automatically.
	Probe pkgRetry.RetryConfig `envPrefix:"PROBE_"`
}

// SessionStoreConfig holds in-memory session store limits.
type SessionStoreConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"2h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// AnswerLimitsConfig bounds user-supplied answer text.
type AnswerLimitsConfig struct {
	MaxAnswerLength int `env:"MAX_LENGTH" envDefault:"2000"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"` // seconds
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT,notEmpty"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT,notEmpty"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE,notEmpty"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT,notEmpty"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT,notEmpty"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadCatalog(cfg); err != nil {
		return nil, fmt.Errorf("load question catalog: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		return fmt.Errorf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute)
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		return fmt.Errorf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst)
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		return fmt.Errorf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout)
	}

	if cfg.SessionStoreCfg.TTL < time.Minute {
		return fmt.Errorf("SESSION_TTL must be at least 1 minute, got %s", cfg.SessionStoreCfg.TTL)
	}

	if cfg.AnswerLimitsCfg.MaxAnswerLength < 1 {
		return fmt.Errorf("ANSWER_MAX_LENGTH must be positive, got %d", cfg.AnswerLimitsCfg.MaxAnswerLength)
	}

	if cfg.LLMConnectorCfg.Temperature < 0 || cfg.LLMConnectorCfg.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %g", cfg.LLMConnectorCfg.Temperature)
	}

	return nil
}

// catalogFile is the optional override for the built-in intake catalog.
var catalogFile = filepath.Join("internal", "config", "question_catalog.json")

func loadCatalog(cfg *Config) error {
	if _, err := os.Stat(catalogFile); os.IsNotExist(err) {
		cfg.Catalog = catalog.Default()
		return nil
	}

	data, err := os.ReadFile(catalogFile)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}

	var questions []catalog.QuestionSpec
	if err := json.Unmarshal(data, &questions); err != nil {
		return fmt.Errorf("parse catalog JSON: %w", err)
	}

	cat, err := catalog.New(questions)
	if err != nil {
		return fmt.Errorf("invalid catalog in %s: %w", catalogFile, err)
	}

	cfg.Catalog = cat
	fmt.Printf("Loaded %d intake questions from %s\n", cat.Len(), catalogFile)
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
