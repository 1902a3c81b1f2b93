package visits_adapter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu    sync.Mutex
	calls map[uuid.UUID][]int64
	fail  bool
	// failNext - сколько ближайших записей завершатся ошибкой err
	failNext int
	err      error
	latency  time.Duration
	attempts int
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{calls: make(map[uuid.UUID][]int64)}
}

func (w *recordingWriter) AddVisits(ctx context.Context, id uuid.UUID, delta int64) error {
	w.mu.Lock()
	latency := w.latency
	w.mu.Unlock()
	time.Sleep(latency)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.attempts++
	if w.fail {
		return errors.New("db down")
	}
	if w.failNext > 0 {
		w.failNext--
		return w.err
	}
	w.calls[id] = append(w.calls[id], delta)
	return nil
}

func (w *recordingWriter) get(id uuid.UUID) []int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]int64(nil), w.calls[id]...)
}

func (w *recordingWriter) getAttempts() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.attempts
}

func newCounter(w *recordingWriter, cfg Config) *DebouncedCounter {
	return NewDebouncedCounter(w, cfg, contextkeys.LoggerFromContext(context.Background()))
}

func TestDebouncedCounter_CoalescesVisits(t *testing.T) {
	w := newRecordingWriter()
	c := newCounter(w, Config{Delay: 20 * time.Millisecond})
	id := uuid.New()

	for i := 0; i < 5; i++ {
		c.RecordVisit(context.Background(), id)
	}

	require.Eventually(t, func() bool { return len(w.get(id)) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int64{5}, w.get(id))
}

func TestDebouncedCounter_MaxPendingFlushesImmediately(t *testing.T) {
	w := newRecordingWriter()
	c := newCounter(w, Config{Delay: time.Hour, MaxPending: 3})
	id := uuid.New()

	for i := 0; i < 3; i++ {
		c.RecordVisit(context.Background(), id)
	}

	require.Eventually(t, func() bool { return len(w.get(id)) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int64{3}, w.get(id))
}

func TestDebouncedCounter_CloseFlushesPending(t *testing.T) {
	w := newRecordingWriter()
	c := newCounter(w, Config{Delay: time.Hour})
	a, b := uuid.New(), uuid.New()

	c.RecordVisit(context.Background(), a)
	c.RecordVisit(context.Background(), a)
	c.RecordVisit(context.Background(), b)
	c.Close()

	assert.Equal(t, []int64{2}, w.get(a))
	assert.Equal(t, []int64{1}, w.get(b))

	// после Close запись идет сразу
	c.RecordVisit(context.Background(), a)
	assert.Equal(t, []int64{2, 1}, w.get(a))
}

func TestDebouncedCounter_FailedWriteIsRetained(t *testing.T) {
	w := newRecordingWriter()
	w.fail = true
	c := newCounter(w, Config{Delay: time.Hour})
	id := uuid.New()

	c.RecordVisit(context.Background(), id)
	c.RecordVisit(context.Background(), id)
	c.Close()
	assert.Empty(t, w.get(id))

	w.mu.Lock()
	w.fail = false
	w.mu.Unlock()

	c.RecordVisit(context.Background(), id)
	assert.Equal(t, []int64{3}, w.get(id))
}

func TestDebouncedCounter_FailedWriteIsRetriedWithoutNewVisits(t *testing.T) {
	w := newRecordingWriter()
	w.failNext = 1
	w.err = errors.New("connection reset")
	c := newCounter(w, Config{Delay: 10 * time.Millisecond})
	defer c.Close()
	id := uuid.New()

	c.RecordVisit(context.Background(), id)
	c.RecordVisit(context.Background(), id)

	require.Eventually(t, func() bool { return len(w.get(id)) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int64{2}, w.get(id))
	assert.Equal(t, 2, w.getAttempts())
}

func TestDebouncedCounter_MissingListingIsDropped(t *testing.T) {
	w := newRecordingWriter()
	w.failNext = 1
	w.err = fmt.Errorf("add visits: %w", domain.ErrListingNotFound)
	c := newCounter(w, Config{Delay: 10 * time.Millisecond})
	id := uuid.New()

	c.RecordVisit(context.Background(), id)
	require.Eventually(t, func() bool { return w.getAttempts() == 1 }, time.Second, 5*time.Millisecond)

	// повторов нет ни по таймеру, ни при Close
	time.Sleep(100 * time.Millisecond)
	c.Close()
	assert.Equal(t, 1, w.getAttempts())
	assert.Empty(t, w.get(id))
}

func TestDebouncedCounter_CloseWaitsForInflightWrites(t *testing.T) {
	w := newRecordingWriter()
	w.latency = 100 * time.Millisecond
	c := newCounter(w, Config{Delay: time.Hour, MaxPending: 1})
	id := uuid.New()

	c.RecordVisit(context.Background(), id)
	c.Close()

	assert.Equal(t, []int64{1}, w.get(id))
}

func TestDebouncedCounter_CloseWaitsForTimerWrites(t *testing.T) {
	w := newRecordingWriter()
	w.latency = 100 * time.Millisecond
	c := newCounter(w, Config{Delay: 5 * time.Millisecond})
	id := uuid.New()

	c.RecordVisit(context.Background(), id)
	// таймер сработал, запись в процессе
	require.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return len(c.deltas) == 0
	}, time.Second, time.Millisecond)
	c.Close()

	assert.Equal(t, []int64{1}, w.get(id))
}
