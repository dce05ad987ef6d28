package model

import "time"

// Document statuses. A document starts active and can be archived via PATCH.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Document is the metadata envelope for a managed file: title, free-text
// tags, and lifecycle status. It is a pure domain model with no
// database-specific dependencies or tags, so it can be used across layers
// (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Tags      string    `json:"tags"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidStatus reports whether s is one of the known document statuses.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusArchived
}
