package reconcile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileQueue_Enqueue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.jsonl")
	q := NewFileQueue(path)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, Entry{Bucket: "dms", Key: "document/1/v1/a.txt"}))
	require.NoError(t, q.Enqueue(ctx, Entry{Bucket: "dms", Key: "document/1/v2/a.txt"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var first Entry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "dms", first.Bucket)
	assert.Equal(t, "document/1/v1/a.txt", first.Key)

	var second Entry
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "document/1/v2/a.txt", second.Key)
}

func TestFileQueue_EnqueueConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.jsonl")
	q := NewFileQueue(path)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, q.Enqueue(ctx, Entry{Bucket: "dms", Key: "document/2/v1/b.txt"}))
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, n)
	for _, line := range lines {
		var e Entry
		assert.NoError(t, json.Unmarshal([]byte(line), &e))
	}
}

func TestFileQueue_EnqueueCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.jsonl")
	q := NewFileQueue(path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, q.Enqueue(ctx, Entry{Bucket: "dms", Key: "k"}))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
