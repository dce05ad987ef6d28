package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Package reconcile persists references to object-store blobs whose deletion
// failed, so an out-of-band process can remove them later. Metadata deletion
// must never be blocked by object-store unavailability; the queue is the
// durable hand-off point for that guarantee.

// Entry identifies one undeleted blob by (bucket, key).
type Entry struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// Queue records blobs pending out-of-band deletion.
type Queue interface {
	// Enqueue durably appends one entry.
	Enqueue(ctx context.Context, e Entry) error
}

// fileQueue appends one JSON object per line to a local file. Writes are
// serialized by a mutex; the file is opened O_APPEND per write so restarts
// and external consumers truncating the file stay safe.
type fileQueue struct {
	mu   sync.Mutex
	path string
}

// NewFileQueue creates a JSON-lines queue backed by the file at path.
// The file is created on first enqueue.
func NewFileQueue(path string) Queue {
	return &fileQueue{path: path}
}

func (q *fileQueue) Enqueue(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal queue entry: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	f, err := os.OpenFile(q.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open queue file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("append queue entry: %w", err)
	}
	return nil
}
