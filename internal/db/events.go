// Package db provides SurrealDB query functions for event records.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/raphaelgruber/eventsync/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// QueryApprovedWithExternalURL returns approved events whose URL points at
// the external catalog, ordered by start time. These are the only eligible
// inputs to the materials sync stage.
func (c *Client) QueryApprovedWithExternalURL(ctx context.Context) ([]models.EventRecord, error) {
	results, err := surrealdb.Query[[]models.EventRecord](ctx, c.db, `
		SELECT * FROM event
		WHERE status = "approved" AND url CONTAINS "connpass.com"
		ORDER BY starts_at ASC
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("query approved events: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []models.EventRecord{}, nil
	}
	return (*results)[0].Result, nil
}

// UpsertEvent persists the record's materials and update timestamp.
// Only the material list and updated_at are touched; status is left alone.
func (c *Client) UpsertEvent(ctx context.Context, rec *models.EventRecord) (*models.EventRecord, error) {
	results, err := surrealdb.Query[[]models.EventRecord](ctx, c.db, `
		UPDATE $id SET materials = $materials, updated_at = $updated_at RETURN AFTER
	`, map[string]any{
		"id":         rec.ID,
		"materials":  rec.Materials,
		"updated_at": rec.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert event: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, ErrNotFound
	}
	return &(*results)[0].Result[0], nil
}

// ExistsByURL reports whether an event with the exact canonical URL is stored.
func (c *Client) ExistsByURL(ctx context.Context, url string) (bool, error) {
	type countRow struct {
		Count int `json:"count"`
	}

	results, err := surrealdb.Query[[]countRow](ctx, c.db, `
		SELECT count() AS count FROM event WHERE url = $url GROUP ALL
	`, map[string]any{"url": url})
	if err != nil {
		return false, fmt.Errorf("exists by url: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return false, nil
	}
	return (*results)[0].Result[0].Count > 0, nil
}

// CreateFromCatalogItem registers a newly discovered catalog event.
// Records always start pending with an empty material list.
func (c *Client) CreateFromCatalogItem(ctx context.Context, item models.CatalogItem) (*models.EventRecord, error) {
	now := time.Now().UTC()

	results, err := surrealdb.Query[[]models.EventRecord](ctx, c.db, `
		CREATE event SET
			title = $title,
			url = $url,
			starts_at = $starts_at,
			ends_at = $ends_at,
			status = "pending",
			materials = [],
			created_at = $now,
			updated_at = $now
		RETURN AFTER
	`, map[string]any{
		"title":     item.Title,
		"url":       item.URL,
		"starts_at": item.StartsAt,
		"ends_at":   item.EndsAt,
		"now":       now,
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("create event: empty result")
	}
	return &(*results)[0].Result[0], nil
}

// ListEvents returns stored events, optionally filtered by status,
// most recent start time first.
func (c *Client) ListEvents(ctx context.Context, status models.EventStatus, limit int) ([]models.EventRecord, error) {
	statusClause := ""
	vars := map[string]any{"limit": limit}
	if status != "" {
		statusClause = "WHERE status = $status"
		vars["status"] = string(status)
	}

	sql := fmt.Sprintf(`
		SELECT * FROM event %s ORDER BY starts_at DESC LIMIT $limit
	`, statusClause)

	results, err := surrealdb.Query[[]models.EventRecord](ctx, c.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []models.EventRecord{}, nil
	}
	return (*results)[0].Result, nil
}

// UpdateStatus moves an event to a new lifecycle status.
func (c *Client) UpdateStatus(ctx context.Context, id string, status models.EventStatus) (*models.EventRecord, error) {
	results, err := surrealdb.Query[[]models.EventRecord](ctx, c.db, `
		UPDATE type::record("event", $id) SET status = $status, updated_at = time::now() RETURN AFTER
	`, map[string]any{
		"id":     id,
		"status": string(status),
	})
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, ErrNotFound
	}
	return &(*results)[0].Result[0], nil
}
