package batch

import (
	"context"
	"testing"
	"time"

	"github.com/raphaelgruber/eventsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncMaterialsHappyPath(t *testing.T) {
	store := newFakeStore()
	cat := newFakeCatalog()
	cat.materials["1"] = []models.MaterialItem{{ID: "1-0", Title: "Deck", Category: models.CategorySlide}}
	cat.materials["2"] = nil

	r := testRunner(&fakeProvider{}, store, cat, newFakeNotifier())
	out := r.SyncMaterials(context.Background(), cat, []models.EventRecord{
		approvedEvent("1"), approvedEvent("2"),
	})

	assert.Equal(t, 2, out.Processed)
	assert.Equal(t, 2, out.Succeeded)
	assert.Equal(t, 0, out.Failed)
	assert.Empty(t, out.Errors)

	require.Len(t, store.upserted, 2)
	assert.Equal(t, "Deck", store.upserted[0].Materials[0].Title)
	assert.False(t, store.upserted[0].UpdatedAt.IsZero())
	// Status untouched by the sync stage.
	assert.Equal(t, models.StatusApproved, store.upserted[0].Status)
}

func TestSyncMaterialsIsolatesItemFailures(t *testing.T) {
	store := newFakeStore()
	cat := newFakeCatalog()
	cat.materials["1"] = nil
	cat.fetchErr["2"] = errBoom
	cat.materials["3"] = nil

	bad := models.EventRecord{URL: "https://example.com/not-catalog/", Status: models.StatusApproved}
	events := []models.EventRecord{
		approvedEvent("1"),
		approvedEvent("2"), // fetch fails
		bad,                // URL parse fails
		approvedEvent("3"),
	}
	store.upsertErr[events[3].URL] = errBoom // persistence fails

	r := testRunner(&fakeProvider{}, store, cat, newFakeNotifier())
	out := r.SyncMaterials(context.Background(), cat, events)

	assert.Equal(t, 4, out.Processed)
	assert.Equal(t, 1, out.Succeeded)
	assert.Equal(t, 3, out.Failed)
	assert.Equal(t, out.Processed, out.Succeeded+out.Failed)

	require.Len(t, out.Errors, 3)
	assert.Contains(t, out.Errors[0], "boom")
	assert.Contains(t, out.Errors[1], "https://example.com/not-catalog/")
	assert.Contains(t, out.Errors[2], "persist event 3")

	// The unparseable URL never reaches the catalog.
	assert.Equal(t, []string{"1", "2", "3"}, cat.fetchCalls)
}

func TestSyncMaterialsDelayAppliedAfterEveryItem(t *testing.T) {
	store := newFakeStore()
	cat := newFakeCatalog()
	cat.fetchErr["1"] = errBoom
	cat.materials["2"] = nil

	r := NewRunner(
		Config{Keyword: "golang", SearchLimit: 20, ItemDelay: 2 * time.Second},
		&fakeProvider{},
		store,
		func(string) Catalog { return cat },
		newFakeNotifier(),
		nil,
		testLogger(),
	)
	var slept []time.Duration
	r.sleep = func(d time.Duration) { slept = append(slept, d) }

	r.SyncMaterials(context.Background(), cat, []models.EventRecord{
		approvedEvent("1"), approvedEvent("2"),
	})

	// The delay applies after errored items too.
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, slept)
}

func TestSyncMaterialsEmptyInput(t *testing.T) {
	r := testRunner(&fakeProvider{}, newFakeStore(), newFakeCatalog(), newFakeNotifier())
	out := r.SyncMaterials(context.Background(), newFakeCatalog(), nil)

	assert.Equal(t, StageOutcome{}, out)
}
