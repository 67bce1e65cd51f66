package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bantaybaha/floodwatch/services/api/db"
)

func seed(t *testing.T, store *db.MemoryStore, clock *time.Time, n int, step time.Duration) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := store.InsertSample(context.Background(), db.NewSample{ReadingCM: float64(i)})
		require.NoError(t, err)
		*clock = clock.Add(step)
	}
}

func TestRunOnceDeletesOnlyExpired(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := db.NewMemoryStore(func() time.Time { return now })
	seed(t, store, &now, 10, time.Hour)

	logger, _ := test.NewNullLogger()
	c := NewCleaner(store, Policy{MaxAge: 4 * time.Hour, BatchSize: 3}, logger)
	c.now = func() time.Time { return now }

	// samples at 0h..9h, now is 10h, cutoff is 6h
	n, err := c.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	assert.Equal(t, 4, store.Len())

	n, err = c.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRunOnceDisabledKeepsEverything(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := db.NewMemoryStore(func() time.Time { return now })
	seed(t, store, &now, 3, 24*time.Hour)

	c := NewCleaner(store, Policy{}, nil)
	n, err := c.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 3, store.Len())
}

func TestRunOnceStoreError(t *testing.T) {
	store := db.NewMemoryStore(nil)
	store.Fail(errors.New("locked"))

	c := NewCleaner(store, Policy{MaxAge: time.Hour}, nil)
	_, err := c.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestNewCleanerDefaults(t *testing.T) {
	c := NewCleaner(db.NewMemoryStore(nil), Policy{MaxAge: time.Hour}, nil)
	assert.Equal(t, DefaultInterval, c.policy.Interval)
	assert.Equal(t, DefaultBatchSize, c.policy.BatchSize)
}

func TestStartStopsWithContext(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := db.NewMemoryStore(func() time.Time { return now })
	seed(t, store, &now, 2, time.Hour)

	logger, hook := test.NewNullLogger()
	c := NewCleaner(store, Policy{MaxAge: time.Minute, Interval: 10 * time.Millisecond}, logger)
	c.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)
	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	assert.Eventually(t, func() bool {
		for _, e := range hook.AllEntries() {
			if e.Message == "retention job stopped" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}
