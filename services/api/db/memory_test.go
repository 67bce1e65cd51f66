package db

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryStoreInsertAndLatest(t *testing.T) {
	clock := &stepClock{now: time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(clock.Now)
	ctx := context.Background()

	latest, err := store.LatestSample(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	first, err := store.InsertSample(ctx, NewSample{ReadingCM: 100, ReportedFeet: 3.28, ReportedThreshold: "normal"})
	require.NoError(t, err)
	clock.Advance(time.Minute)
	second, err := store.InsertSample(ctx, NewSample{ReadingCM: 170, ReportedFeet: 5.58, ReportedThreshold: "danger"})
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
	latest, err = store.LatestSample(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, 170.0, latest.ReadingCM)
}

func TestMemoryStoreConcurrentInsertsGetDistinctIDs(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	const n = 50
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(cm float64) {
			defer wg.Done()
			s, err := store.InsertSample(ctx, NewSample{ReadingCM: cm})
			assert.NoError(t, err)
			ids <- s.ID
		}(float64(i))
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, store.Len())
}

func TestMemoryStoreSamplesBetweenIsInclusiveAndOrdered(t *testing.T) {
	base := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	clock := &stepClock{now: base}
	store := NewMemoryStore(clock.Now)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.InsertSample(ctx, NewSample{ReadingCM: float64(100 + i)})
		require.NoError(t, err)
		clock.Advance(time.Hour)
	}

	got, err := store.SamplesBetween(ctx, base.Add(time.Hour), base.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 101.0, got[0].ReadingCM)
	assert.Equal(t, 103.0, got[2].ReadingCM)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.Before(got[i-1].CreatedAt))
	}
}

func TestMemoryStoreDeleteSamplesBefore(t *testing.T) {
	base := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	clock := &stepClock{now: base}
	store := NewMemoryStore(clock.Now)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := store.InsertSample(ctx, NewSample{ReadingCM: float64(i)})
		require.NoError(t, err)
		clock.Advance(time.Hour)
	}

	n, err := store.DeleteSamplesBefore(ctx, base.Add(3*time.Hour), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 2, store.Len())

	n, err = store.DeleteSamplesBefore(ctx, base.Add(3*time.Hour), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	latest, err := store.LatestSample(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3.0, latest.ReadingCM)
}

func TestMemoryStoreFail(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()
	boom := errors.New("down")

	store.Fail(boom)
	_, err := store.InsertSample(ctx, NewSample{ReadingCM: 1})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, store.Ping(ctx), boom)
	assert.Equal(t, 0, store.Len())

	store.Fail(nil)
	assert.NoError(t, store.Ping(ctx))
}
