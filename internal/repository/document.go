package repository

import (
	"context"

	"dms/internal/model"
)

// Package repository contains data access layer abstractions.
// Implementations can live in subpackages (e.g., postgres) inside this directory.

// ListFilter narrows a document listing. Status is one of "all", "active",
// or "archived"; Search is matched case-insensitively against title OR tags.
type ListFilter struct {
	Status string
	Search string
}

// DocumentUpdate carries a partial update. Nil fields are left untouched.
type DocumentUpdate struct {
	Title  *string
	Tags   *string
	Status *string
}

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row
	// including DB-assigned id and timestamps.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// List returns documents matching the filter, newest first.
	List(ctx context.Context, f ListFilter) ([]model.Document, error)

	// Update applies a partial update and refreshes updated_at, returning
	// the stored row. Returns sql.ErrNoRows if the document does not exist.
	Update(ctx context.Context, id int64, upd DocumentUpdate) (*model.Document, error)

	// Delete removes a document by ID; file rows cascade at the schema level.
	// Returns sql.ErrNoRows if no row was deleted.
	Delete(ctx context.Context, id int64) error
}
