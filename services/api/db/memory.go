package db

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps samples in process memory. It mirrors Store's semantics
// and is used for local runs and tests.
type MemoryStore struct {
	mu      sync.Mutex
	samples []Sample
	nextID  int64
	now     func() time.Time
	failErr error
}

// NewMemoryStore creates an empty store. A nil clock defaults to time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{now: now, nextID: 1}
}

// Fail makes every following call return err. Passing nil restores the store.
func (m *MemoryStore) Fail(err error) {
	m.mu.Lock()
	m.failErr = err
	m.mu.Unlock()
}

func (m *MemoryStore) InsertSample(_ context.Context, in NewSample) (Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return Sample{}, m.failErr
	}

	s := Sample{
		ID:                m.nextID,
		ReadingCM:         in.ReadingCM,
		ReportedFeet:      in.ReportedFeet,
		ReportedThreshold: in.ReportedThreshold,
		CreatedAt:         m.now().UTC(),
	}
	m.nextID++
	m.samples = append(m.samples, s)
	return s, nil
}

func (m *MemoryStore) LatestSample(_ context.Context) (*Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	if len(m.samples) == 0 {
		return nil, nil
	}
	// ids are appended in increasing order
	s := m.samples[len(m.samples)-1]
	return &s, nil
}

func (m *MemoryStore) SamplesBetween(_ context.Context, from, to time.Time) ([]Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}

	out := make([]Sample, 0)
	for _, s := range m.samples {
		if s.CreatedAt.Before(from) || s.CreatedAt.After(to) {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) DeleteSamplesBefore(_ context.Context, cutoff time.Time, limit int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return 0, m.failErr
	}

	var removed int64
	kept := m.samples[:0]
	for _, s := range m.samples {
		if s.CreatedAt.Before(cutoff) && (limit <= 0 || removed < int64(limit)) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	m.samples = kept
	return removed, nil
}

func (m *MemoryStore) Ping(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failErr
}

// Len reports how many samples are stored.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.samples)
}

func (m *MemoryStore) Close() {}
