package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bucketdrive/internal/common"
	"github.com/dmitrijs2005/bucketdrive/internal/drive/models"
	"github.com/dmitrijs2005/bucketdrive/internal/store"
)

// fakeStore records multipart calls and can fail a chosen part or run
// a hook before each part upload.
type fakeStore struct {
	mu        sync.Mutex
	parts     []int32
	partSizes []int64
	created   int
	completed bool
	aborted   bool

	failPart int32
	partHook func(partNumber int32)
}

var _ store.Client = (*fakeStore)(nil)

func (f *fakeStore) SignedGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	return "https://" + bucket + ".example.com/" + key, nil
}

func (f *fakeStore) ListObjects(ctx context.Context, req store.ListRequest) (*store.ListResult, error) {
	return &store.ListResult{}, nil
}

func (f *fakeStore) DeleteObject(ctx context.Context, bucket, key string) error    { return nil }
func (f *fakeStore) DeleteObjects(ctx context.Context, b string, ks []string) error { return nil }
func (f *fakeStore) SupportsTagging() bool                                          { return false }

func (f *fakeStore) GetObjectTagging(ctx context.Context, bucket, key string) ([]models.Tag, error) {
	return nil, nil
}

func (f *fakeStore) PutObjectTagging(ctx context.Context, bucket, key string, tags []models.Tag) error {
	return nil
}

func (f *fakeStore) CreateMultipartUpload(ctx context.Context, bucket, key, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	return "upload-1", nil
}

func (f *fakeStore) UploadPart(ctx context.Context, bucket, key, uploadID string, partNumber int32, body io.Reader) (string, error) {
	if f.partHook != nil {
		f.partHook(partNumber)
	}
	if f.failPart != 0 && partNumber == f.failPart {
		return "", errors.New("part rejected")
	}
	n, err := io.Copy(io.Discard, body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.parts = append(f.parts, partNumber)
	f.partSizes = append(f.partSizes, n)
	return fmt.Sprintf("etag-%d", partNumber), nil
}

func (f *fakeStore) CompleteMultipartUpload(ctx context.Context, bucket, key, uploadID string, parts []store.CompletedPart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = true
	return nil
}

func (f *fakeStore) AbortMultipartUpload(ctx context.Context, bucket, key, uploadID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aborted = true
	return nil
}

func (f *fakeStore) uploadedParts() []int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int32(nil), f.parts...)
}

func collect(t *testing.T, task *Task) []Event {
	t.Helper()
	var events []Event
	timeout := time.After(10 * time.Second)
	for {
		select {
		case e, ok := <-task.Events():
			if !ok {
				return events
			}
			events = append(events, e)
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %d so far", len(events))
		}
	}
}

func TestTask_UploadsAllPartsInOrder(t *testing.T) {
	size := int64(26 << 20) // 6 parts at the 5 MiB minimum
	fs := &fakeStore{}
	task := NewTask(fs, "drive", "docs/big.bin", "big.bin", "application/octet-stream",
		bytes.NewReader(make([]byte, size)), size)

	task.Start(context.Background())
	events := collect(t, task)

	require.NotEmpty(t, events)
	assert.Equal(t, EventInitiated, events[0].Type)
	assert.Equal(t, EventCompleted, events[len(events)-1].Type)

	var progress []float64
	for _, e := range events {
		if e.Type == EventProgress {
			progress = append(progress, e.Percent)
		}
	}
	require.Len(t, progress, 6)
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
	assert.Equal(t, 100.0, progress[len(progress)-1])

	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6}, fs.uploadedParts())
	assert.True(t, fs.completed)
	assert.False(t, fs.aborted)

	var total int64
	for _, n := range fs.partSizes {
		total += n
	}
	assert.Equal(t, size, total)
}

func TestTask_EmptyFileCompletes(t *testing.T) {
	fs := &fakeStore{}
	task := NewTask(fs, "drive", "empty.txt", "empty.txt", "text/plain",
		bytes.NewReader(nil), 0)

	task.Start(context.Background())
	events := collect(t, task)

	assert.Equal(t, EventCompleted, events[len(events)-1].Type)
	assert.Equal(t, 100.0, events[len(events)-1].Percent)
	assert.Equal(t, []int32{1}, fs.uploadedParts())
}

func TestTask_PartFailureIsTerminalAndAborts(t *testing.T) {
	size := int64(12 << 20) // 3 parts
	fs := &fakeStore{failPart: 2}
	task := NewTask(fs, "drive", "a.bin", "a.bin", "application/octet-stream",
		bytes.NewReader(make([]byte, size)), size)

	task.Start(context.Background())
	events := collect(t, task)

	last := events[len(events)-1]
	assert.Equal(t, EventFailed, last.Type)
	require.Error(t, last.Err)
	assert.Contains(t, last.Err.Error(), "a.bin")

	assert.Equal(t, []int32{1}, fs.uploadedParts())
	assert.True(t, fs.aborted)
	assert.False(t, fs.completed)

	// terminal task rejects further control calls
	assert.ErrorIs(t, task.Pause(), common.ErrTaskTerminal)
	assert.ErrorIs(t, task.Resume(), common.ErrTaskTerminal)
}

func TestTask_PauseResume_NoPartReuploaded(t *testing.T) {
	size := int64(10<<20 + 1) // 3 parts, last one a single byte
	fs := &fakeStore{}

	var task *Task
	fs.partHook = func(partNumber int32) {
		if partNumber == 1 {
			require.NoError(t, task.Pause())
		}
	}
	task = NewTask(fs, "drive", "b.bin", "b.bin", "application/octet-stream",
		bytes.NewReader(make([]byte, size)), size)

	task.Start(context.Background())

	var events []Event
	for e := range task.Events() {
		events = append(events, e)
		if e.Type == EventPaused {
			assert.Equal(t, []int32{1}, fs.uploadedParts())
			require.NoError(t, task.Resume())
		}
	}

	var types []EventType
	for _, e := range events {
		types = append(types, e.Type)
	}
	assert.Contains(t, types, EventPaused)
	assert.Contains(t, types, EventResumed)
	assert.Equal(t, EventCompleted, types[len(types)-1])

	// each part acknowledged exactly once
	assert.Equal(t, []int32{1, 2, 3}, fs.uploadedParts())
}

func TestTask_ResumeWhileRunningIsNoop(t *testing.T) {
	fs := &fakeStore{}
	task := NewTask(fs, "drive", "c.txt", "c.txt", "text/plain",
		bytes.NewReader(make([]byte, 10)), 10)
	task.Start(context.Background())
	_ = task.Resume() // either nil or terminal depending on timing; must not panic
	collect(t, task)
}
