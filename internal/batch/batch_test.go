package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/raphaelgruber/eventsync/internal/catalog"
	"github.com/raphaelgruber/eventsync/internal/models"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Shared fakes for the batch tests.

type fakeCatalog struct {
	materials     map[string][]models.MaterialItem
	fetchErr      map[string]error
	fetchCalls    []string
	searchResult  catalog.SearchResult
	searchErr     error
	searchCalls   int
	searchPanic   bool
	valid         bool
	validateCalls int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		materials: map[string][]models.MaterialItem{},
		fetchErr:  map[string]error{},
		valid:     true,
	}
}

func (f *fakeCatalog) FetchMaterials(_ context.Context, eventID string) ([]models.MaterialItem, error) {
	f.fetchCalls = append(f.fetchCalls, eventID)
	if err := f.fetchErr[eventID]; err != nil {
		return nil, err
	}
	return f.materials[eventID], nil
}

func (f *fakeCatalog) SearchByKeyword(_ context.Context, _ string, _ int) (catalog.SearchResult, error) {
	f.searchCalls++
	if f.searchPanic {
		panic("unexpected catalog state")
	}
	if f.searchErr != nil {
		return catalog.SearchResult{}, f.searchErr
	}
	return f.searchResult, nil
}

func (f *fakeCatalog) ValidateCredential(context.Context) bool {
	f.validateCalls++
	return f.valid
}

type fakeStore struct {
	approved  []models.EventRecord
	queryErr  error
	existing  map[string]bool
	existsErr map[string]error
	createErr map[string]error
	created   []models.CatalogItem
	upsertErr map[string]error
	upserted  []models.EventRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		existing:  map[string]bool{},
		existsErr: map[string]error{},
		createErr: map[string]error{},
		upsertErr: map[string]error{},
	}
}

func (f *fakeStore) QueryApprovedWithExternalURL(context.Context) ([]models.EventRecord, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.approved, nil
}

func (f *fakeStore) UpsertEvent(_ context.Context, rec *models.EventRecord) (*models.EventRecord, error) {
	if err := f.upsertErr[rec.URL]; err != nil {
		return nil, err
	}
	f.upserted = append(f.upserted, *rec)
	return rec, nil
}

func (f *fakeStore) ExistsByURL(_ context.Context, url string) (bool, error) {
	if err := f.existsErr[url]; err != nil {
		return false, err
	}
	return f.existing[url], nil
}

func (f *fakeStore) CreateFromCatalogItem(_ context.Context, item models.CatalogItem) (*models.EventRecord, error) {
	if err := f.createErr[item.URL]; err != nil {
		return nil, err
	}
	f.created = append(f.created, item)
	rec := &models.EventRecord{
		ID:       surrealmodels.NewRecordID("event", "ev"+item.EventID),
		Title:    item.Title,
		URL:      item.URL,
		StartsAt: item.StartsAt,
		EndsAt:   item.EndsAt,
		Status:   models.StatusPending,
	}
	return rec, nil
}

type fakeNotifier struct {
	published []string
	failFor   map[string]error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: map[string]error{}}
}

func (f *fakeNotifier) Publish(_ context.Context, rec *models.EventRecord) error {
	if err := f.failFor[rec.URL]; err != nil {
		return err
	}
	f.published = append(f.published, rec.URL)
	return nil
}

type fakeProvider struct {
	credential string
	err        error
	calls      int
}

func (f *fakeProvider) GetCredential(context.Context) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.credential, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRunner builds a runner with no item delay and a no-op sleep.
func testRunner(provider *fakeProvider, store *fakeStore, cat *fakeCatalog, notifier *fakeNotifier) *Runner {
	r := NewRunner(
		Config{Keyword: "golang", SearchLimit: 20},
		provider,
		store,
		func(string) Catalog { return cat },
		notifier,
		nil,
		testLogger(),
	)
	r.sleep = func(time.Duration) {}
	return r
}

func approvedEvent(id string) models.EventRecord {
	return models.EventRecord{
		ID:     surrealmodels.NewRecordID("event", "ev"+id),
		Title:  "Event " + id,
		URL:    fmt.Sprintf("https://gophers.connpass.com/event/%s/", id),
		Status: models.StatusApproved,
	}
}

func catalogItem(id string) models.CatalogItem {
	return models.CatalogItem{
		EventID: id,
		Title:   "Event " + id,
		URL:     fmt.Sprintf("https://gophers.connpass.com/event/%s/", id),
	}
}

var errBoom = errors.New("boom")
