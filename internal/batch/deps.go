package batch

import (
	"context"

	"github.com/raphaelgruber/eventsync/internal/catalog"
	"github.com/raphaelgruber/eventsync/internal/models"
)

// Catalog is the subset of the catalog client the pipeline calls.
type Catalog interface {
	FetchMaterials(ctx context.Context, eventID string) ([]models.MaterialItem, error)
	SearchByKeyword(ctx context.Context, keyword string, limit int) (catalog.SearchResult, error)
	ValidateCredential(ctx context.Context) bool
}

// Store is the subset of the event store the pipeline calls.
type Store interface {
	QueryApprovedWithExternalURL(ctx context.Context) ([]models.EventRecord, error)
	UpsertEvent(ctx context.Context, rec *models.EventRecord) (*models.EventRecord, error)
	ExistsByURL(ctx context.Context, url string) (bool, error)
	CreateFromCatalogItem(ctx context.Context, item models.CatalogItem) (*models.EventRecord, error)
}

// CatalogFactory builds a catalog client once the credential is known.
// The runner retrieves the credential at the start of every run.
type CatalogFactory func(credential string) Catalog
