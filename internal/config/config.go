package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	TelegramToken   string
	TwelveAPIKey    string
	Symbol          string
	Port            int
	RequestTimeout  int // seconds
	LogLevel        string
	SignalsCron     string
	BroadcastChatID int64
}

// Load initializes configuration from environment variables. The two
// secrets are required; a missing one is a startup-fatal condition.
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TwelveAPIKey:    os.Getenv("TWELVE_DATA_API_KEY"),
		Symbol:          getEnvWithDefault("SYMBOL", "XAU/USD"),
		Port:            getEnvIntWithDefault("PORT", 10000),
		RequestTimeout:  getEnvIntWithDefault("REQUEST_TIMEOUT", 10),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
		SignalsCron:     os.Getenv("SIGNALS_CRON"),
		BroadcastChatID: getEnvInt64WithDefault("BROADCAST_CHAT_ID", 0),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN not set in environment")
	}
	if cfg.TwelveAPIKey == "" {
		return nil, fmt.Errorf("TWELVE_DATA_API_KEY not set in environment")
	}

	return cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
