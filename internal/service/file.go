package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"dms/internal/model"
	"dms/internal/reconcile"
	"dms/internal/repository"
	"dms/internal/storage"
)

// FileServiceConfig holds the upload and download policies for the file service.
type FileServiceConfig struct {
	// MaxUploadBytes caps the accepted file size. Zero or negative disables
	// the cap (not recommended).
	MaxUploadBytes int64
	// AllowedExtensions restricts uploads by lowercased extension (without
	// the dot). Empty means every extension is allowed.
	AllowedExtensions []string
	// UsePresignedURLs selects presigned-URL downloads over proxying bytes
	// through this process.
	UsePresignedURLs bool
	// PresignExpiry bounds the validity of generated download URLs.
	PresignExpiry time.Duration
}

// DownloadResult is either a presigned URL (URL != "") or a byte stream the
// caller must close, depending on the configured download mode.
type DownloadResult struct {
	URL         string
	Body        io.ReadCloser
	Filename    string
	ContentType string
	Size        int64
}

// FileService defines the use cases for file versions attached to documents.
type FileService interface {
	// Upload validates and stores a new file version: the blob goes to the
	// object store under document/{id}/v{version}/{filename}, then the
	// metadata row (including the SHA-256 of the content) is committed.
	// Versions are assigned atomically per document, starting at 1.
	Upload(ctx context.Context, documentID int64, r io.Reader, originalFilename, contentType string, size int64) (*model.DocumentFile, error)

	// List returns the document's files, newest version first.
	List(ctx context.Context, documentID int64) ([]model.DocumentFile, error)

	// Download returns a presigned URL or a streaming body for one file.
	Download(ctx context.Context, documentID, fileID int64) (*DownloadResult, error)

	// Delete removes one file version: best-effort blob removal (queued on
	// failure), then the metadata row.
	Delete(ctx context.Context, documentID, fileID int64) (*ReclaimReport, error)
}

type fileService struct {
	store storage.Storage
	docs  repository.DocumentRepository
	files repository.FileRepository
	queue reconcile.Queue
	cfg   FileServiceConfig
}

// NewFileService constructs a new FileService.
func NewFileService(store storage.Storage, docs repository.DocumentRepository, files repository.FileRepository, queue reconcile.Queue, cfg FileServiceConfig) FileService {
	return &fileService{store: store, docs: docs, files: files, queue: queue, cfg: cfg}
}

func (s *fileService) Upload(ctx context.Context, documentID int64, r io.Reader, originalFilename, contentType string, size int64) (*model.DocumentFile, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	name := SanitizeFilename(originalFilename)
	if name == "" {
		return nil, ErrFilenameRequired
	}
	if !s.extensionAllowed(name) {
		return nil, ErrFileTypeNotAllowed
	}
	if s.cfg.MaxUploadBytes > 0 && size > s.cfg.MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	// Buffer the content up front: the size check, the hash, and the
	// fail-closed ordering (no metadata without a stored blob) all need the
	// full byte count before anything is written.
	var data []byte
	var err error
	if s.cfg.MaxUploadBytes > 0 {
		data, err = io.ReadAll(io.LimitReader(r, s.cfg.MaxUploadBytes+1))
	} else {
		data, err = io.ReadAll(r)
	}
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrFileEmpty
	}
	if s.cfg.MaxUploadBytes > 0 && int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	sum := sha256.Sum256(data)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	file := &model.DocumentFile{
		DocumentID:  documentID,
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(data)),
		SHA256:      hex.EncodeToString(sum[:]),
	}

	stored, err := s.files.CreateWithNextVersion(ctx, file, func(version int) (string, error) {
		key := fmt.Sprintf("document/%d/v%d/%s", documentID, version, name)
		_, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
			Size:        int64(len(data)),
			ContentType: contentType,
			Metadata: map[string]string{
				"original-filename": originalFilename,
			},
		})
		if err != nil {
			return "", fmt.Errorf("upload to storage: %w", err)
		}
		return key, nil
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return stored, nil
}

func (s *fileService) List(ctx context.Context, documentID int64) ([]model.DocumentFile, error) {
	if _, err := s.docs.FindByID(ctx, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return s.files.ListByDocument(ctx, documentID)
}

func (s *fileService) Download(ctx context.Context, documentID, fileID int64) (*DownloadResult, error) {
	f, err := s.files.FindByID(ctx, documentID, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find file: %w", err)
	}

	if s.cfg.UsePresignedURLs {
		expiry := s.cfg.PresignExpiry
		if expiry <= 0 {
			expiry = 15 * time.Minute
		}
		u, err := s.store.PresignGet(ctx, f.StorageKey, expiry)
		if err != nil {
			return nil, fmt.Errorf("presign object: %w", err)
		}
		return &DownloadResult{URL: u}, nil
	}

	body, info, err := s.store.Get(ctx, f.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &DownloadResult{
		Body:        body,
		Filename:    f.Filename,
		ContentType: ct,
		Size:        info.Size,
	}, nil
}

func (s *fileService) Delete(ctx context.Context, documentID, fileID int64) (*ReclaimReport, error) {
	f, err := s.files.FindByID(ctx, documentID, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find file: %w", err)
	}

	// Same policy as document deletion: a failed blob removal is queued for
	// reconciliation and never blocks the metadata delete.
	rep := &ReclaimReport{}
	reclaimObject(ctx, s.store, s.queue, f.StorageKey, rep)

	if err := s.files.Delete(ctx, fileID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rep, ErrNotFound
		}
		return rep, fmt.Errorf("delete file row: %w", err)
	}
	return rep, nil
}

func (s *fileService) extensionAllowed(name string) bool {
	if len(s.cfg.AllowedExtensions) == 0 {
		return true
	}
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return false
	}
	ext := strings.ToLower(name[idx+1:])
	for _, allowed := range s.cfg.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
