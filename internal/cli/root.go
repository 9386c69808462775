// Package cli provides the command-line interface for eventsync.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/raphaelgruber/eventsync/internal/batch"
	"github.com/raphaelgruber/eventsync/internal/catalog"
	"github.com/raphaelgruber/eventsync/internal/config"
	"github.com/raphaelgruber/eventsync/internal/db"
	"github.com/raphaelgruber/eventsync/internal/metrics"
	"github.com/raphaelgruber/eventsync/internal/notify"
	"github.com/raphaelgruber/eventsync/internal/secrets"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose    bool
	configFile string

	// Global config, logger and db client
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
	dbClient   *db.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "eventsync",
	Short: "Event catalog batch sync",
	Long: `Eventsync keeps a curated calendar of tech events in sync with an
external event catalog.

On every run it refreshes the presentation materials of already-approved
events, discovers new events by keyword, registers unseen ones as pending
and notifies a Slack channel.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		if configFile != "" {
			if err := cfg.ApplyFile(configFile); err != nil {
				return err
			}
		}

		logger, logCleanup = config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		slog.SetDefault(logger)

		// Connect to the event store
		ctx := context.Background()
		dbCfg := db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}

		var err error
		dbClient, err = db.NewClient(ctx, dbCfg, logger)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		if err := dbClient.InitSchema(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// newRunner wires a batch runner from the loaded config. The rate limiter
// is created here and shared by every catalog client the factory produces.
func newRunner(ctx context.Context) (*batch.Runner, *metrics.Collector, error) {
	limiter := catalog.NewRateLimiter(cfg.CatalogMinInterval)
	factory := func(credential string) batch.Catalog {
		return catalog.NewClient(cfg.CatalogBaseURL, credential, limiter, logger)
	}

	var provider secrets.Provider
	switch cfg.SecretSource {
	case "aws":
		p, err := secrets.NewManagerProvider(ctx, cfg.SecretName)
		if err != nil {
			return nil, nil, fmt.Errorf("init secrets manager: %w", err)
		}
		provider = p
	default:
		provider = secrets.EnvProvider{Var: cfg.APIKeyEnv}
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.SlackWebhookURL != "" {
		notifier = notify.NewSlackWebhook(cfg.SlackWebhookURL, logger)
	}

	collector := metrics.NewCollector()
	runner := batch.NewRunner(batch.Config{
		Keyword:     cfg.Keyword,
		SearchLimit: cfg.SearchLimit,
		ItemDelay:   cfg.SyncItemDelay,
	}, provider, dbClient, factory, notifier, collector, logger)

	return runner, collector, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to YAML config file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(eventsCmd)
}
