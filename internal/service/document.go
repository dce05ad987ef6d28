package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dms/internal/model"
	"dms/internal/reconcile"
	"dms/internal/repository"
	"dms/internal/storage"
)

// DocumentUpdate is a partial update request. Nil fields are not touched.
// A blank title is ignored rather than rejected; an unknown status is
// likewise ignored.
type DocumentUpdate struct {
	Title  *string
	Tags   *string
	Status *string
}

// DocumentService defines the use cases for managing document records.
type DocumentService interface {
	// Create stores a new document with status "active". Title is required.
	Create(ctx context.Context, title, tags string) (*model.Document, error)

	// List returns documents filtered by status ("all", "active", "archived";
	// anything else means "all") and an optional case-insensitive substring
	// match on title or tags, newest first.
	List(ctx context.Context, status, search string) ([]model.Document, error)

	// Update applies a partial update to status/title/tags.
	Update(ctx context.Context, id int64, upd DocumentUpdate) (*model.Document, error)

	// Delete removes the document and all its file rows (cascade), attempting
	// to remove every associated blob first. Blob removal failures are queued
	// for reconciliation and never block the metadata delete; the returned
	// report accounts for every attempt.
	Delete(ctx context.Context, id int64) (*ReclaimReport, error)
}

type documentService struct {
	store storage.Storage
	docs  repository.DocumentRepository
	files repository.FileRepository
	queue reconcile.Queue
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, docs repository.DocumentRepository, files repository.FileRepository, queue reconcile.Queue) DocumentService {
	return &documentService{store: store, docs: docs, files: files, queue: queue}
}

func (s *documentService) Create(ctx context.Context, title, tags string) (*model.Document, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	doc := &model.Document{
		Title:  title,
		Tags:   strings.TrimSpace(tags),
		Status: model.StatusActive,
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context, status, search string) ([]model.Document, error) {
	if !model.ValidStatus(status) {
		status = "all"
	}
	return s.docs.List(ctx, repository.ListFilter{
		Status: status,
		Search: strings.TrimSpace(search),
	})
}

func (s *documentService) Update(ctx context.Context, id int64, upd DocumentUpdate) (*model.Document, error) {
	patch := repository.DocumentUpdate{}

	if upd.Title != nil {
		if t := strings.TrimSpace(*upd.Title); t != "" {
			patch.Title = &t
		}
		// Blank titles are ignored, not an error.
	}
	if upd.Tags != nil {
		t := strings.TrimSpace(*upd.Tags)
		patch.Tags = &t
	}
	if upd.Status != nil && model.ValidStatus(*upd.Status) {
		patch.Status = upd.Status
	}

	doc, err := s.docs.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update document: %w", err)
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, id int64) (*ReclaimReport, error) {
	if _, err := s.docs.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}

	files, err := s.files.ListByDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list document files: %w", err)
	}

	// Best effort: one blob failing must not stop the others, and no blob
	// failure may block the metadata delete below.
	rep := &ReclaimReport{}
	for _, f := range files {
		reclaimObject(ctx, s.store, s.queue, f.StorageKey, rep)
	}

	if err := s.docs.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rep, ErrNotFound
		}
		return rep, fmt.Errorf("delete document: %w", err)
	}
	return rep, nil
}
