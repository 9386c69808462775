// Package batch implements the two-stage sync/discovery pipeline.
package batch

import (
	"fmt"

	"github.com/raphaelgruber/eventsync/internal/models"
)

// ItemOutcome is the result of processing one element of a stage loop.
type ItemOutcome struct {
	OK  bool
	Err string
}

func success() ItemOutcome {
	return ItemOutcome{OK: true}
}

func failure(format string, args ...any) ItemOutcome {
	return ItemOutcome{Err: fmt.Sprintf(format, args...)}
}

// StageOutcome aggregates per-run counters for one stage.
// Processed == Succeeded + Failed always holds after Fold.
type StageOutcome struct {
	Processed int      `json:"processed"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// Fold reduces per-item outcomes into stage totals. Pure function; error
// strings keep the order items were processed in.
func Fold(items []ItemOutcome) StageOutcome {
	out := StageOutcome{Processed: len(items)}
	for _, it := range items {
		if it.OK {
			out.Succeeded++
		} else {
			out.Failed++
			out.Errors = append(out.Errors, it.Err)
		}
	}
	return out
}

// DiscoveryResult summarizes one discovery stage run.
//
// NewRegistrations + DuplicatesSkipped <= TotalFound: an item that fails its
// dedup check or its creation lands in neither bucket but still produces one
// error entry.
type DiscoveryResult struct {
	TotalFound        int                  `json:"total_found"`
	NewRegistrations  int                  `json:"new_registrations"`
	DuplicatesSkipped int                  `json:"duplicates_skipped"`
	Errors            []string             `json:"errors,omitempty"`
	RegisteredEvents  []models.EventRecord `json:"registered_events,omitempty"`
}

// BatchResult is the single structured outcome of a batch run.
type BatchResult struct {
	Fatal      bool             `json:"fatal"`
	FatalError string           `json:"fatal_error,omitempty"`
	Sync       StageOutcome     `json:"sync"`
	Discovery  *DiscoveryResult `json:"discovery,omitempty"`
}

// Failed reports whether the run should be signalled as an overall failure:
// a fatal pre-flight abort, or every single sync item failing. Item-level
// discovery errors never flip this on their own; they stay visible inside
// the embedded DiscoveryResult.
func (r BatchResult) Failed() bool {
	if r.Fatal {
		return true
	}
	return r.Sync.Processed > 0 && r.Sync.Succeeded == 0
}

func fatalResult(format string, args ...any) BatchResult {
	return BatchResult{
		Fatal:      true,
		FatalError: fmt.Sprintf(format, args...),
		Discovery:  &DiscoveryResult{},
	}
}
