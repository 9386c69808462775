// Package config holds configuration loading and logging setup.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values.
type Config struct {
	// SurrealDB connection
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// External catalog
	CatalogBaseURL     string
	CatalogMinInterval time.Duration

	// Credential source: "aws" uses Secrets Manager, "env" reads APIKeyEnv.
	SecretSource string
	SecretName   string
	APIKeyEnv    string

	// Notification
	SlackWebhookURL string

	// Batch parameters
	Keyword       string
	SearchLimit   int
	SyncItemDelay time.Duration
	CronSpec      string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "eventsync"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "events"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		CatalogBaseURL:     getEnv("EVENTSYNC_CATALOG_URL", ""),
		CatalogMinInterval: getDuration("EVENTSYNC_CATALOG_MIN_INTERVAL", 5*time.Second),

		SecretSource: getEnv("EVENTSYNC_SECRET_SOURCE", "env"),
		SecretName:   getEnv("EVENTSYNC_SECRET_NAME", "eventsync/catalog-api-key"),
		APIKeyEnv:    getEnv("EVENTSYNC_API_KEY_ENV", "EVENTSYNC_CATALOG_API_KEY"),

		SlackWebhookURL: getEnv("EVENTSYNC_SLACK_WEBHOOK", ""),

		Keyword:       getEnv("EVENTSYNC_KEYWORD", "golang"),
		SearchLimit:   getInt("EVENTSYNC_SEARCH_LIMIT", 20),
		SyncItemDelay: getDuration("EVENTSYNC_ITEM_DELAY", 3*time.Second),
		CronSpec:      getEnv("EVENTSYNC_CRON", "0 * * * *"),

		LogFile:  getEnv("EVENTSYNC_LOG_FILE", "/tmp/eventsync.log"),
		LogLevel: parseLogLevel(getEnv("EVENTSYNC_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
