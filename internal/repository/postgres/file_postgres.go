package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"dms/internal/model"
	"dms/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

const fileColumns = "id, document_id, storage_key, filename, content_type, size, sha256, version, created_at, updated_at"

func scanFile(row interface{ Scan(...any) error }) (*model.DocumentFile, error) {
	var f model.DocumentFile
	if err := row.Scan(
		&f.ID,
		&f.DocumentID,
		&f.StorageKey,
		&f.Filename,
		&f.ContentType,
		&f.Size,
		&f.SHA256,
		&f.Version,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateWithNextVersion inserts a file row with the next version for its
// parent document, all inside one transaction:
//
//  1. Lock the parent document row (also proves it exists).
//  2. Compute MAX(version)+1 over the document's files.
//  3. Run the put callback to write the blob under the assigned version.
//  4. Insert the metadata row and commit.
//
// The row lock serializes concurrent uploads to the same document, so two
// requests can never be assigned the same version. A UNIQUE
// (document_id, version) constraint backstops the lock. If put fails the
// transaction rolls back and no metadata row exists; if the commit fails
// after a successful put, the blob is orphaned (no compensating delete).
func (r *FilePostgres) CreateWithNextVersion(ctx context.Context, f *model.DocumentFile, put repository.PutFunc) (*model.DocumentFile, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var docID int64
	const qLock = `SELECT id FROM documents WHERE id = $1 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, qLock, f.DocumentID).Scan(&docID); err != nil {
		return nil, err
	}

	var version int
	const qVersion = `SELECT COALESCE(MAX(version), 0) + 1 FROM document_files WHERE document_id = $1`
	if err := tx.QueryRowContext(ctx, qVersion, f.DocumentID).Scan(&version); err != nil {
		return nil, err
	}

	key, err := put(version)
	if err != nil {
		return nil, err
	}

	const qInsert = `
		INSERT INTO document_files (document_id, storage_key, filename, content_type, size, sha256, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + fileColumns
	stored, err := scanFile(tx.QueryRowContext(ctx, qInsert,
		f.DocumentID,
		key,
		f.Filename,
		f.ContentType,
		f.Size,
		f.SHA256,
		version,
	))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return stored, nil
}

// ListByDocument returns all file rows for a document, newest version first.
func (r *FilePostgres) ListByDocument(ctx context.Context, documentID int64) ([]model.DocumentFile, error) {
	const q = `
		SELECT ` + fileColumns + `
		FROM document_files
		WHERE document_id = $1
		ORDER BY version DESC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentFile, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches one file row scoped to its parent document. A mismatched
// document id behaves exactly like an absent row.
func (r *FilePostgres) FindByID(ctx context.Context, documentID, fileID int64) (*model.DocumentFile, error) {
	const q = `SELECT ` + fileColumns + ` FROM document_files WHERE id = $1 AND document_id = $2`
	return scanFile(r.db.QueryRowContext(ctx, q, fileID, documentID))
}

// Delete removes a single file row by ID.
func (r *FilePostgres) Delete(ctx context.Context, fileID int64) error {
	const q = `DELETE FROM document_files WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, fileID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
