package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "ws://localhost:8000/rpc", cfg.SurrealDBURL)
	assert.Equal(t, "eventsync", cfg.SurrealDBNamespace)
	assert.Equal(t, "golang", cfg.Keyword)
	assert.Equal(t, 20, cfg.SearchLimit)
	assert.Equal(t, 5*time.Second, cfg.CatalogMinInterval)
	assert.Equal(t, 3*time.Second, cfg.SyncItemDelay)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("EVENTSYNC_KEYWORD", "rustlang")
	t.Setenv("EVENTSYNC_SEARCH_LIMIT", "5")
	t.Setenv("EVENTSYNC_ITEM_DELAY", "10s")
	t.Setenv("EVENTSYNC_LOG_LEVEL", "DEBUG")

	cfg := Load()

	assert.Equal(t, "rustlang", cfg.Keyword)
	assert.Equal(t, 5, cfg.SearchLimit)
	assert.Equal(t, 10*time.Second, cfg.SyncItemDelay)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("EVENTSYNC_SEARCH_LIMIT", "many")
	t.Setenv("EVENTSYNC_ITEM_DELAY", "soon")

	cfg := Load()

	assert.Equal(t, 20, cfg.SearchLimit)
	assert.Equal(t, 3*time.Second, cfg.SyncItemDelay)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestApplyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
keyword: kubernetes
search_limit: 50
item_delay: 1s
min_interval: 8s
cron: "*/30 * * * *"
slack_webhook_url: https://hooks.slack.com/services/T/B/x
`), 0644))

	cfg := Load()
	require.NoError(t, cfg.ApplyFile(path))

	assert.Equal(t, "kubernetes", cfg.Keyword)
	assert.Equal(t, 50, cfg.SearchLimit)
	assert.Equal(t, time.Second, cfg.SyncItemDelay)
	assert.Equal(t, 8*time.Second, cfg.CatalogMinInterval)
	assert.Equal(t, "*/30 * * * *", cfg.CronSpec)
	assert.Equal(t, "https://hooks.slack.com/services/T/B/x", cfg.SlackWebhookURL)
}

func TestApplyFilePartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keyword: gophers\n"), 0644))

	cfg := Load()
	require.NoError(t, cfg.ApplyFile(path))

	assert.Equal(t, "gophers", cfg.Keyword)
	// Untouched fields keep their defaults.
	assert.Equal(t, 20, cfg.SearchLimit)
}

func TestApplyFileErrors(t *testing.T) {
	cfg := Load()

	assert.Error(t, cfg.ApplyFile("/nonexistent/eventsync.yaml"))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("item_delay: [\n"), 0644))
	assert.Error(t, cfg.ApplyFile(bad))

	badDur := filepath.Join(t.TempDir(), "baddur.yaml")
	require.NoError(t, os.WriteFile(badDur, []byte("item_delay: shortly\n"), 0644))
	assert.Error(t, cfg.ApplyFile(badDur))
}
