package cli

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/eventsync/internal/batch"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one batch sync now",
	Long: `Run a single batch: refresh materials for approved events, then
discover and register new events matching the configured keyword.

Exits non-zero when the run is fatal (credential missing or rejected) or
when every single materials-sync item failed.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	runner, collector, err := newRunner(ctx)
	if err != nil {
		return err
	}

	result := runner.Run(ctx)
	printResult(result)

	if verbose {
		snap := collector.Snapshot()
		if snap.CatalogFetch != nil {
			fmt.Printf("Catalog fetches: %d (%d failed, avg %.0fms)\n",
				snap.CatalogFetch.Count, snap.CatalogFetch.Errors, snap.CatalogFetch.AvgTimeMs)
		}
		if snap.CatalogSearch != nil {
			fmt.Printf("Catalog searches: %d (%d failed, avg %.0fms)\n",
				snap.CatalogSearch.Count, snap.CatalogSearch.Errors, snap.CatalogSearch.AvgTimeMs)
		}
		if snap.DBQuery != nil {
			fmt.Printf("Store queries: %d (%d failed, avg %.0fms)\n",
				snap.DBQuery.Count, snap.DBQuery.Errors, snap.DBQuery.AvgTimeMs)
		}
	}

	if result.Fatal {
		return fmt.Errorf("batch aborted: %s", result.FatalError)
	}
	if result.Failed() {
		return fmt.Errorf("batch failed: all %d materials-sync items errored", result.Sync.Processed)
	}
	return nil
}

func printResult(result batch.BatchResult) {
	if result.Fatal {
		fmt.Printf("Fatal: %s\n", result.FatalError)
		return
	}

	fmt.Printf("Materials sync: %d processed, %d succeeded, %d failed\n",
		result.Sync.Processed, result.Sync.Succeeded, result.Sync.Failed)
	for _, e := range result.Sync.Errors {
		fmt.Printf("  - %s\n", e)
	}

	if d := result.Discovery; d != nil {
		fmt.Printf("Discovery: %d found, %d registered, %d duplicates\n",
			d.TotalFound, d.NewRegistrations, d.DuplicatesSkipped)
		for _, rec := range d.RegisteredEvents {
			fmt.Printf("  + %s (%s)\n", rec.Title, rec.URL)
		}
		for _, e := range d.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
}
