package models

import "time"

// CatalogItem is an event listing as returned by the external catalog.
// Read-only input to both batch stages.
type CatalogItem struct {
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Description string    `json:"description"`
}
