package model

import "time"

// DocumentFile is one uploaded binary version attached to a Document.
// Only metadata lives here; the content is addressed by StorageKey in the
// object store. Versions are strictly increasing per document and are never
// reused, even after deletions.
type DocumentFile struct {
	ID          int64     `json:"id"`
	DocumentID  int64     `json:"document_id"`
	StorageKey  string    `json:"storage_key"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	SHA256      string    `json:"sha256"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
