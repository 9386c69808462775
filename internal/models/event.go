// Package models defines data structures for the eventsync store.
package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// EventStatus is the lifecycle state of a stored event.
type EventStatus string

const (
	// StatusPending marks events discovered by the batch and awaiting review.
	StatusPending EventStatus = "pending"
	// StatusApproved marks events accepted for the calendar. Only approved
	// events with a recognized catalog URL are eligible for materials sync.
	StatusApproved EventStatus = "approved"
	// StatusRejected marks events declined during review.
	StatusRejected EventStatus = "rejected"
)

// EventRecord is a stored calendar event.
//
// The discovery stage creates records with StatusPending; the materials sync
// stage only ever touches Materials and UpdatedAt, never Status.
type EventRecord struct {
	ID        surrealmodels.RecordID `json:"id"`
	Title     string                 `json:"title"`
	URL       string                 `json:"url"`
	StartsAt  time.Time              `json:"starts_at"`
	EndsAt    time.Time              `json:"ends_at"`
	Status    EventStatus            `json:"status"`
	Materials []MaterialItem         `json:"materials"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}
