package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "tailscan/pkg/platform/audit"
	"tailscan/pkg/platform/audit/store/memory"
	"tailscan/pkg/requestcontext"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	err := pub.Emit(context.Background(), audit.Event{
		TailNumber: "N9305P",
		Action:     string(audit.EventScanCompleted),
	})
	require.NoError(t, err)

	events, err := store.ListByTail(context.Background(), "N9305P")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventScanCompleted), events[0].Action)
	assert.Equal(t, audit.CategoryScan, events[0].Category)
	assert.NotEmpty(t, events[0].ID)
}

func TestPublisher_FillsDefaultsFromContext(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithRequestID(ctx, "req-1")

	require.NoError(t, pub.Emit(ctx, audit.Event{
		TailNumber: "C-GWKQ",
		Action:     string(audit.EventUtilizationLocked),
	}))

	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, now, events[0].Timestamp)
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, audit.CategoryAccess, events[0].Category)
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))
	defer pub.Close()

	err := pub.Emit(context.Background(), audit.Event{
		TailNumber: "N904GS",
		Action:     string(audit.EventUtilizationServed),
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		events, _ := store.ListByTail(context.Background(), "N904GS")
		return len(events) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for range 10 {
		err := pub.Emit(context.Background(), audit.Event{
			TailNumber: "N9305P",
			Action:     string(audit.EventScanCompleted),
		})
		require.NoError(t, err)
	}

	pub.Close()

	events, err := store.ListByTail(context.Background(), "N9305P")
	require.NoError(t, err)
	assert.Len(t, events, 10)
}

func TestPublisher_CloseIsIdempotent(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore(), WithAsyncBuffer(4))
	pub.Close()
	assert.NotPanics(t, pub.Close)
}

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error {
	return errors.New("sink down")
}

func TestPublisher_SyncModeReturnsStoreError(t *testing.T) {
	pub := NewPublisher(failingStore{})
	err := pub.Emit(context.Background(), audit.Event{Action: string(audit.EventScanCompleted)})
	require.Error(t, err)
}

func TestPublisher_AsyncModeSwallowsStoreError(t *testing.T) {
	pub := NewPublisher(failingStore{}, WithAsyncBuffer(4))
	defer pub.Close()
	err := pub.Emit(context.Background(), audit.Event{Action: string(audit.EventScanCompleted)})
	require.NoError(t, err)
}

func TestPublisher_ConcurrentEmit(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1000))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pub.Emit(context.Background(), audit.Event{
				TailNumber: "N12345",
				Action:     string(audit.EventScanNotFound),
			})
		}()
	}
	wg.Wait()
	pub.Close()

	events, err := store.ListByTail(context.Background(), "N12345")
	require.NoError(t, err)
	assert.Len(t, events, 50)
}

func TestRingBuffer_DropsOldestWhenFull(t *testing.T) {
	buf := NewRingBuffer(2)
	assert.False(t, buf.Enqueue(audit.Event{ID: "1"}))
	assert.False(t, buf.Enqueue(audit.Event{ID: "2"}))
	assert.True(t, buf.Enqueue(audit.Event{ID: "3"}))

	batch := buf.DequeueBatch(10)
	require.Len(t, batch, 2)
	assert.Equal(t, "2", batch[0].ID)
	assert.Equal(t, "3", batch[1].ID)
	assert.Equal(t, int64(1), buf.Dropped())
	assert.Equal(t, 0, buf.Len())
}
