package repository

import (
	"context"

	"dms/internal/model"
)

// PutFunc uploads the blob for the version assigned inside
// FileRepository.CreateWithNextVersion and returns the storage key it was
// written under. Returning an error aborts the metadata insert.
type PutFunc func(version int) (storageKey string, err error)

// FileRepository defines data access for document file versions.
type FileRepository interface {
	// CreateWithNextVersion assigns the next version number for the parent
	// document and inserts the file row in a single transaction. The parent
	// document row is locked for the duration, so concurrent uploads to the
	// same document serialize and can never pick the same version. The put
	// callback runs after the version is assigned and before the row is
	// committed; the blob is therefore always written before the metadata.
	// Returns sql.ErrNoRows if the parent document does not exist.
	CreateWithNextVersion(ctx context.Context, f *model.DocumentFile, put PutFunc) (*model.DocumentFile, error)

	// ListByDocument returns all file rows for a document, newest version first.
	ListByDocument(ctx context.Context, documentID int64) ([]model.DocumentFile, error)

	// FindByID returns a file row scoped to its parent document. A file that
	// exists under a different document yields sql.ErrNoRows.
	FindByID(ctx context.Context, documentID, fileID int64) (*model.DocumentFile, error)

	// Delete removes a single file row. Returns sql.ErrNoRows if absent.
	Delete(ctx context.Context, fileID int64) error
}
