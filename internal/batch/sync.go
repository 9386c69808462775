package batch

import (
	"context"
	"time"

	"github.com/raphaelgruber/eventsync/internal/catalog"
	"github.com/raphaelgruber/eventsync/internal/metrics"
	"github.com/raphaelgruber/eventsync/internal/models"
)

// SyncMaterials refreshes the material list of every eligible event, one at
// a time, in store query order. Every failure is item-level: it is recorded
// and counted and the loop moves on. The stage never returns an error.
func (r *Runner) SyncMaterials(ctx context.Context, client Catalog, events []models.EventRecord) StageOutcome {
	outcomes := make([]ItemOutcome, 0, len(events))
	for _, ev := range events {
		outcomes = append(outcomes, r.syncOne(ctx, client, ev))

		// Extra pause on top of the client's own pacing gate, applied even
		// after failed items.
		if r.cfg.ItemDelay > 0 {
			r.sleep(r.cfg.ItemDelay)
		}
	}

	out := Fold(outcomes)
	r.log.Info("materials sync complete",
		"processed", out.Processed, "succeeded", out.Succeeded, "failed", out.Failed)
	return out
}

func (r *Runner) syncOne(ctx context.Context, client Catalog, ev models.EventRecord) ItemOutcome {
	eventID, ok := catalog.ExtractEventID(ev.URL)
	if !ok {
		return failure("unrecognized catalog url %q", ev.URL)
	}

	start := time.Now()
	materials, err := client.FetchMaterials(ctx, eventID)
	r.metrics.RecordTiming(metrics.OpCatalogFetch, time.Since(start), err)
	if err != nil {
		return failure("fetch materials for event %s: %v", eventID, err)
	}

	// Freshly fetched list replaces the stored one; status is left alone.
	ev.Materials = materials
	ev.UpdatedAt = time.Now().UTC()

	start = time.Now()
	_, err = r.store.UpsertEvent(ctx, &ev)
	r.metrics.RecordTiming(metrics.OpDBQuery, time.Since(start), err)
	if err != nil {
		return failure("persist event %s: %v", eventID, err)
	}

	r.log.Debug("materials refreshed", "event_id", eventID, "materials", len(materials))
	return success()
}
