package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the optional YAML config file. Every field overrides
// the corresponding env/default value only when present.
type fileConfig struct {
	CatalogURL      *string `yaml:"catalog_url"`
	MinInterval     *string `yaml:"min_interval"`
	Keyword         *string `yaml:"keyword"`
	SearchLimit     *int    `yaml:"search_limit"`
	ItemDelay       *string `yaml:"item_delay"`
	Cron            *string `yaml:"cron"`
	SlackWebhookURL *string `yaml:"slack_webhook_url"`
	SecretSource    *string `yaml:"secret_source"`
	SecretName      *string `yaml:"secret_name"`
}

// ApplyFile overlays values from a YAML file onto the config.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.CatalogURL != nil {
		c.CatalogBaseURL = *fc.CatalogURL
	}
	if fc.MinInterval != nil {
		d, err := time.ParseDuration(*fc.MinInterval)
		if err != nil {
			return fmt.Errorf("parse min_interval: %w", err)
		}
		c.CatalogMinInterval = d
	}
	if fc.Keyword != nil {
		c.Keyword = *fc.Keyword
	}
	if fc.SearchLimit != nil {
		c.SearchLimit = *fc.SearchLimit
	}
	if fc.ItemDelay != nil {
		d, err := time.ParseDuration(*fc.ItemDelay)
		if err != nil {
			return fmt.Errorf("parse item_delay: %w", err)
		}
		c.SyncItemDelay = d
	}
	if fc.Cron != nil {
		c.CronSpec = *fc.Cron
	}
	if fc.SlackWebhookURL != nil {
		c.SlackWebhookURL = *fc.SlackWebhookURL
	}
	if fc.SecretSource != nil {
		c.SecretSource = *fc.SecretSource
	}
	if fc.SecretName != nil {
		c.SecretName = *fc.SecretName
	}

	return nil
}
