package postgres

import (
	"context"
	"database/sql"

	"dms/internal/model"
	"dms/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = "id, title, tags, status, created_at, updated_at"

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Tags,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record with
// DB-assigned id and timestamps.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (title, tags, status)
		VALUES ($1, $2, $3)
		RETURNING ` + documentColumns
	return scanDocument(r.db.QueryRowContext(ctx, q, doc.Title, doc.Tags, doc.Status))
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns documents filtered by status and a case-insensitive substring
// match against title or tags, newest first. Status "all" disables the
// status predicate; an empty search disables the match.
func (r *DocumentPostgres) List(ctx context.Context, f repository.ListFilter) ([]model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE ($1 = 'all' OR status = $1)
		  AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR tags ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, f.Status, f.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update applies a partial update; nil fields keep their current value.
// updated_at is always refreshed. Returns sql.ErrNoRows for a missing row.
func (r *DocumentPostgres) Update(ctx context.Context, id int64, upd repository.DocumentUpdate) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET title      = COALESCE($2, title),
		    tags       = COALESCE($3, tags),
		    status     = COALESCE($4, status),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + documentColumns
	return scanDocument(r.db.QueryRowContext(ctx, q, id, upd.Title, upd.Tags, upd.Status))
}

// Delete removes a document by ID. The schema cascades the delete to
// document_files rows. Returns sql.ErrNoRows if nothing was deleted.
func (r *DocumentPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
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
