package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"dms/internal/model"
	"dms/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func documentRows(docs ...model.Document) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "tags", "status", "created_at", "updated_at"})
	for _, d := range docs {
		rows.AddRow(d.ID, d.Title, d.Tags, d.Status, d.CreatedAt, d.UpdatedAt)
	}
	return rows
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	stored := model.Document{
		ID:        1,
		Title:     "Invoice Q1",
		Tags:      "finance",
		Status:    model.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs("Invoice Q1", "finance", model.StatusActive).
		WillReturnRows(documentRows(stored))

	result, err := repo.Create(ctx, &model.Document{Title: "Invoice Q1", Tags: "finance", Status: model.StatusActive})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, model.StatusActive, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs(int64(7)).
			WillReturnRows(documentRows(model.Document{ID: 7, Title: "Spec", Status: model.StatusActive, CreatedAt: time.Now(), UpdatedAt: time.Now()}))

		doc, err := repo.FindByID(ctx, 7)

		assert.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Equal(t, int64(7), doc.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, 99)

		assert.Error(t, err)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("status and search filter", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents").
			WithArgs(model.StatusActive, "invoice").
			WillReturnRows(documentRows(model.Document{ID: 1, Title: "Invoice Q1", Tags: "finance", Status: model.StatusActive, CreatedAt: time.Now(), UpdatedAt: time.Now()}))

		items, err := repo.List(ctx, repository.ListFilter{Status: model.StatusActive, Search: "invoice"})

		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, "Invoice Q1", items[0].Title)
	})

	t.Run("empty result", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents").
			WithArgs("all", "").
			WillReturnRows(documentRows())

		items, err := repo.List(ctx, repository.ListFilter{Status: "all"})

		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Len(t, items, 0)
	})
}

func TestDocumentPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		status := model.StatusArchived
		mock.ExpectQuery("UPDATE documents").
			WithArgs(int64(3), nil, nil, status).
			WillReturnRows(documentRows(model.Document{ID: 3, Title: "Spec", Status: model.StatusArchived, CreatedAt: time.Now(), UpdatedAt: time.Now()}))

		doc, err := repo.Update(ctx, 3, repository.DocumentUpdate{Status: &status})

		assert.NoError(t, err)
		assert.Equal(t, model.StatusArchived, doc.Status)
	})

	t.Run("not found", func(t *testing.T) {
		title := "New"
		mock.ExpectQuery("UPDATE documents").
			WithArgs(int64(404), title, nil, nil).
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.Update(ctx, 404, repository.DocumentUpdate{Title: &title})

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents WHERE id = ?").
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 1))
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents WHERE id = ?").
			WithArgs(int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, 2)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
