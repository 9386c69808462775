package models

import "time"

// MaterialCategory classifies a presentation resource.
type MaterialCategory string

const (
	CategorySlide    MaterialCategory = "slide"
	CategoryDocument MaterialCategory = "document"
	CategoryVideo    MaterialCategory = "video"
	CategoryOther    MaterialCategory = "other"
)

// MaterialItem is one presentation resource attached to an event.
// The sync stage regenerates the whole list on every run; items are never
// merged with previously stored ones.
type MaterialItem struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	URL              string           `json:"url"`
	ThumbnailURL     *string          `json:"thumbnail_url,omitempty"`
	Category         MaterialCategory `json:"category"`
	Presenter        *string          `json:"presenter,omitempty"`
	ProviderCategory *string          `json:"provider_category,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}
