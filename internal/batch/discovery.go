package batch

import (
	"context"
	"time"

	"github.com/raphaelgruber/eventsync/internal/metrics"
)

// Discover searches the catalog by keyword, registers unseen events as
// pending and notifies the channel about each registration.
//
// A failure of the search call itself is stage-terminal: there is nothing to
// deduplicate or register without a result, so an all-zero DiscoveryResult
// with a single error is returned. Everything after that is item-level.
func (r *Runner) Discover(ctx context.Context, client Catalog) DiscoveryResult {
	start := time.Now()
	search, err := client.SearchByKeyword(ctx, r.cfg.Keyword, r.cfg.SearchLimit)
	r.metrics.RecordTiming(metrics.OpCatalogSearch, time.Since(start), err)
	if err != nil {
		return DiscoveryResult{
			Errors: []string{"search " + r.cfg.Keyword + ": " + err.Error()},
		}
	}

	// TotalFound is fixed here and never adjusted, however many items fail later.
	result := DiscoveryResult{TotalFound: len(search.Items)}
	r.log.Info("discovery search complete",
		"keyword", r.cfg.Keyword, "returned", len(search.Items), "available", search.TotalCount)

	for _, item := range search.Items {
		qStart := time.Now()
		exists, err := r.store.ExistsByURL(ctx, item.URL)
		r.metrics.RecordTiming(metrics.OpDBQuery, time.Since(qStart), err)
		if err != nil {
			// Skipped entirely: counted in neither bucket.
			result.Errors = append(result.Errors, "dedup check "+item.URL+": "+err.Error())
			continue
		}
		if exists {
			result.DuplicatesSkipped++
			continue
		}

		qStart = time.Now()
		rec, err := r.store.CreateFromCatalogItem(ctx, item)
		r.metrics.RecordTiming(metrics.OpDBQuery, time.Since(qStart), err)
		if err != nil {
			result.Errors = append(result.Errors, "register "+item.URL+": "+err.Error())
			continue
		}

		result.NewRegistrations++
		result.RegisteredEvents = append(result.RegisteredEvents, *rec)
		r.log.Info("event registered", "title", rec.Title, "url", rec.URL)

		nStart := time.Now()
		err = r.notifier.Publish(ctx, rec)
		r.metrics.RecordTiming(metrics.OpNotify, time.Since(nStart), err)
		if err != nil {
			// The registration stands; only the delivery failure is recorded.
			result.Errors = append(result.Errors, "notify "+item.URL+": "+err.Error())
		}
	}

	return result
}
