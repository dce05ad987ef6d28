package service

import (
	"context"

	"dms/internal/reconcile"
	"dms/internal/storage"
)

// ReclaimReport aggregates the outcome of best-effort blob removals during a
// delete. Every attempt is accounted for: removed, queued for out-of-band
// reconciliation, or lost (removal failed and the queue write failed too).
type ReclaimReport struct {
	Attempted int      `json:"attempted"`
	Removed   int      `json:"removed"`
	Queued    []string `json:"queued,omitempty"`
	Lost      []string `json:"lost,omitempty"`
}

// reclaimObject attempts to delete one blob and records the result. A failed
// removal is handed to the queue as {bucket, key}; a failure there is
// recorded as lost. Never returns an error: blob cleanup must not block
// metadata deletion.
func reclaimObject(ctx context.Context, store storage.Storage, queue reconcile.Queue, key string, rep *ReclaimReport) {
	rep.Attempted++
	if err := store.Delete(ctx, key); err == nil {
		rep.Removed++
		return
	}
	if err := queue.Enqueue(ctx, reconcile.Entry{Bucket: store.Bucket(), Key: key}); err != nil {
		rep.Lost = append(rep.Lost, key)
		return
	}
	rep.Queued = append(rep.Queued, key)
}
