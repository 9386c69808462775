package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/raphaelgruber/eventsync/internal/metrics"
	"github.com/raphaelgruber/eventsync/internal/notify"
	"github.com/raphaelgruber/eventsync/internal/secrets"
)

// Config holds the batch parameters.
type Config struct {
	// Keyword drives the discovery search.
	Keyword string
	// SearchLimit caps the number of search results per run.
	SearchLimit int
	// ItemDelay is an extra pause between sync items, in addition to the
	// catalog client's pacing gate.
	ItemDelay time.Duration
}

// Runner sequences the batch: credential pre-flight, materials sync,
// discovery, result aggregation. One Runner serves many runs; each run is
// stateless apart from the catalog client's shared rate-limiter.
type Runner struct {
	cfg      Config
	secrets  secrets.Provider
	store    Store
	catalog  CatalogFactory
	notifier notify.Notifier
	metrics  *metrics.Collector
	log      *slog.Logger
	sleep    func(time.Duration)
}

// NewRunner wires the pipeline's collaborators.
func NewRunner(
	cfg Config,
	provider secrets.Provider,
	store Store,
	factory CatalogFactory,
	notifier notify.Notifier,
	collector *metrics.Collector,
	log *slog.Logger,
) *Runner {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		cfg:      cfg,
		secrets:  provider,
		store:    store,
		catalog:  factory,
		notifier: notifier,
		metrics:  collector,
		log:      log,
		sleep:    time.Sleep,
	}
}

// Run executes one batch and always returns a structured result; it never
// returns an error or panics past this boundary.
func (r *Runner) Run(ctx context.Context) BatchResult {
	runID := uuid.New().String()[:8]
	log := r.log.With("run_id", runID)
	start := time.Now()

	// Pre-flight: no credential, no run.
	credential, err := r.secrets.GetCredential(ctx)
	if err != nil {
		log.Error("credential retrieval failed", "error", err)
		r.metrics.RecordTiming(metrics.OpBatchRun, time.Since(start), err)
		return fatalResult("credential retrieval failed: %v", err)
	}

	client := r.catalog(credential)
	if !client.ValidateCredential(ctx) {
		log.Error("credential rejected by catalog")
		r.metrics.RecordTiming(metrics.OpBatchRun, time.Since(start), fmt.Errorf("invalid credential"))
		return fatalResult("catalog rejected the credential")
	}

	// A failing pre-flight query degrades to an empty sync stage with one
	// top-level error; the run continues into discovery.
	var syncOutcome StageOutcome
	events, err := r.store.QueryApprovedWithExternalURL(ctx)
	if err != nil {
		log.Error("eligible-events query failed", "error", err)
		syncOutcome = StageOutcome{Errors: []string{fmt.Sprintf("query approved events: %v", err)}}
	} else {
		log.Info("materials sync starting", "eligible", len(events))
		syncOutcome = r.SyncMaterials(ctx, client, events)
	}

	discovery := r.runDiscovery(ctx, client, log)

	result := BatchResult{Sync: syncOutcome, Discovery: discovery}
	r.metrics.RecordTiming(metrics.OpBatchRun, time.Since(start), nil)

	log.Info("batch run complete",
		"duration", time.Since(start).Round(time.Millisecond),
		"sync_processed", result.Sync.Processed,
		"sync_succeeded", result.Sync.Succeeded,
		"sync_failed", result.Sync.Failed,
		"discovery_found", discovery.TotalFound,
		"discovery_registered", discovery.NewRegistrations,
		"discovery_duplicates", discovery.DuplicatesSkipped,
		"failed", result.Failed())
	return result
}

// runDiscovery wraps the discovery stage in a defensive boundary: an
// unexpected panic inside it is converted into an all-zero DiscoveryResult
// with one error, so the sync stage's already-computed metrics survive.
func (r *Runner) runDiscovery(ctx context.Context, client Catalog, log *slog.Logger) (result *DiscoveryResult) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("discovery stage panicked", "panic", rec)
			result = &DiscoveryResult{
				Errors: []string{fmt.Sprintf("discovery stage panicked: %v", rec)},
			}
		}
	}()

	res := r.Discover(ctx, client)
	return &res
}
