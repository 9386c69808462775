package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the batch on a cron schedule until interrupted",
	Long: `Start a long-running scheduler that executes the batch on the
configured cron spec (EVENTSYNC_CRON, default hourly). The catalog rate
limiter is shared across all scheduled runs.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// One runner for all ticks: the shared rate limiter keeps consecutive
	// runs inside the same pacing budget.
	runner, collector, err := newRunner(ctx)
	if err != nil {
		return err
	}

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.CronSpec, func() {
		result := runner.Run(ctx)
		if result.Fatal {
			logger.Error("scheduled batch aborted", "error", result.FatalError)
			return
		}
		snap := collector.Snapshot()
		if snap.BatchRun != nil {
			logger.Info("scheduler stats",
				"runs", snap.BatchRun.Count,
				"avg_run_ms", snap.BatchRun.AvgTimeMs,
				"uptime_s", int64(snap.UptimeSeconds))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", cfg.CronSpec, err)
	}

	logger.Info("scheduler starting", "cron", cfg.CronSpec, "keyword", cfg.Keyword)
	scheduler.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info("scheduler stopping")
	stopCtx := scheduler.Stop()
	// Let an in-flight run finish before exiting.
	<-stopCtx.Done()
	return nil
}
