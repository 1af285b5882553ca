// Package upload implements the multipart upload task: one file sent
// to the store as a sequence of parts, with pause/resume, ordered
// lifecycle events and no re-transmission of acknowledged parts.
package upload

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/bucketdrive/internal/common"
	"github.com/dmitrijs2005/bucketdrive/internal/store"
)

// EventType enumerates the lifecycle events a task emits.
type EventType int

const (
	EventInitiated EventType = iota
	EventProgress
	EventPaused
	EventResumed
	EventCompleted
	EventFailed
)

// String returns the event type's string representation.
func (t EventType) String() string {
	switch t {
	case EventInitiated:
		return "initiated"
	case EventProgress:
		return "progress"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is one lifecycle notification. Percent is cumulative and
// rounded to two decimal places. Err is set only on EventFailed.
type Event struct {
	TaskID  string
	Type    EventType
	Percent float64
	Err     error
}

type taskState int

const (
	statePending taskState = iota
	stateRunning
	statePaused
	stateCompleted
	stateFailed
)

// Task uploads a single byte source to one object key as a multipart
// upload. Lifecycle: initiated, zero or more progress events, any
// number of paused/resumed pairs, then exactly one terminal completed
// or failed event, after which the event channel is closed.
//
// All events are emitted by the task's own goroutine, so consumers
// observe them in emission order. A failed part surfaces as a terminal
// failed event and the remote upload is aborted; the task never
// retries on its own.
type Task struct {
	id          string
	bucket      string
	key         string
	name        string
	contentType string
	size        int64
	src         io.ReaderAt
	client      store.Client

	mu       sync.Mutex
	cond     *sync.Cond
	state    taskState
	uploaded int64

	events chan Event
}

// NewTask builds a task for uploading size bytes from src to key in
// bucket. The source must remain readable until the task finishes;
// completed parts are never read again after they are acknowledged.
func NewTask(client store.Client, bucket, key, name, contentType string, src io.ReaderAt, size int64) *Task {
	t := &Task{
		id:          uuid.NewString(),
		bucket:      bucket,
		key:         key,
		name:        name,
		contentType: contentType,
		size:        size,
		src:         src,
		client:      client,
		events:      make(chan Event, 16),
	}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// ID returns the client-generated task id.
func (t *Task) ID() string { return t.id }

// Key returns the destination object key.
func (t *Task) Key() string { return t.key }

// Name returns the file name shown to the user.
func (t *Task) Name() string { return t.name }

// Events returns the lifecycle event stream. The channel is closed
// after the terminal event.
func (t *Task) Events() <-chan Event { return t.events }

// Start launches the upload goroutine. It must be called exactly once.
func (t *Task) Start(ctx context.Context) {
	t.mu.Lock()
	t.state = stateRunning
	t.mu.Unlock()
	go t.run(ctx)
}

// Pause suspends part transmission after the part currently in flight.
// Parts already acknowledged by the store are kept and will not be
// re-uploaded on resume. Pausing a finished task returns
// common.ErrTaskTerminal.
func (t *Task) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == stateCompleted || t.state == stateFailed {
		return common.ErrTaskTerminal
	}
	t.state = statePaused
	return nil
}

// Resume releases a paused task. Resuming a finished task returns
// common.ErrTaskTerminal; resuming a running task is a no-op.
func (t *Task) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == stateCompleted || t.state == stateFailed {
		return common.ErrTaskTerminal
	}
	if t.state == statePaused {
		t.state = stateRunning
		t.cond.Broadcast()
	}
	return nil
}

// Paused reports whether the task is currently paused.
func (t *Task) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == statePaused
}

func (t *Task) run(ctx context.Context) {
	defer close(t.events)

	t.emit(Event{TaskID: t.id, Type: EventInitiated})

	uploadID, err := t.client.CreateMultipartUpload(ctx, t.bucket, t.key, t.contentType)
	if err != nil {
		t.fail(err)
		return
	}

	partSize := PartSize(t.size)
	total := partCount(t.size, partSize)

	var parts []store.CompletedPart
	for n := int64(0); n < total; n++ {
		t.waitIfPaused()

		if err := ctx.Err(); err != nil {
			t.abort(uploadID, err)
			return
		}

		off := n * partSize
		length := partSize
		if off+length > t.size {
			length = t.size - off
		}

		etag, err := t.client.UploadPart(ctx, t.bucket, t.key, uploadID,
			int32(n+1), io.NewSectionReader(t.src, off, length))
		if err != nil {
			t.abort(uploadID, err)
			return
		}

		parts = append(parts, store.CompletedPart{PartNumber: int32(n + 1), ETag: etag})

		t.mu.Lock()
		t.uploaded += length
		uploaded := t.uploaded
		t.mu.Unlock()

		t.emit(Event{TaskID: t.id, Type: EventProgress, Percent: percent(uploaded, t.size)})
	}

	if err := t.client.CompleteMultipartUpload(ctx, t.bucket, t.key, uploadID, parts); err != nil {
		t.abort(uploadID, err)
		return
	}

	t.mu.Lock()
	t.state = stateCompleted
	t.mu.Unlock()
	t.emit(Event{TaskID: t.id, Type: EventCompleted, Percent: 100})
}

// waitIfPaused parks the upload goroutine while the task is paused,
// emitting the paused/resumed pair around the wait.
func (t *Task) waitIfPaused() {
	t.mu.Lock()
	if t.state != statePaused {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	t.emit(Event{TaskID: t.id, Type: EventPaused, Percent: percent(t.uploadedBytes(), t.size)})

	t.mu.Lock()
	for t.state == statePaused {
		t.cond.Wait()
	}
	t.mu.Unlock()

	t.emit(Event{TaskID: t.id, Type: EventResumed, Percent: percent(t.uploadedBytes(), t.size)})
}

func (t *Task) uploadedBytes() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.uploaded
}

// abort discards the remote multipart upload (best effort) and marks
// the task failed.
func (t *Task) abort(uploadID string, cause error) {
	_ = t.client.AbortMultipartUpload(context.Background(), t.bucket, t.key, uploadID)
	t.fail(cause)
}

func (t *Task) fail(cause error) {
	t.mu.Lock()
	t.state = stateFailed
	t.mu.Unlock()
	t.emit(Event{
		TaskID:  t.id,
		Type:    EventFailed,
		Percent: percent(t.uploadedBytes(), t.size),
		Err:     fmt.Errorf("uploading %s: %w", t.name, cause),
	})
}

func (t *Task) emit(e Event) {
	t.events <- e
}

// percent converts cumulative uploaded bytes into a percentage in
// [0,100], rounded to two decimal places. Empty files report 100.
func percent(uploaded, total int64) float64 {
	if total <= 0 {
		return 100
	}
	p := float64(uploaded) / float64(total) * 100
	if p > 100 {
		p = 100
	}
	return math.Round(p*100) / 100
}
