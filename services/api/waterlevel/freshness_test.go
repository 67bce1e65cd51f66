package waterlevel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFreshness(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	fresh, age := Freshness(now.Add(-90*time.Second), now, 60*time.Second)
	assert.False(t, fresh)
	assert.Equal(t, 90*time.Second, age)

	fresh, age = Freshness(now.Add(-10*time.Second), now, 60*time.Second)
	assert.True(t, fresh)
	assert.Equal(t, 10*time.Second, age)

	fresh, _ = Freshness(now.Add(-60*time.Second), now, 60*time.Second)
	assert.True(t, fresh, "boundary is inclusive")
}

func TestFreshnessFutureTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fresh, age := Freshness(now.Add(5*time.Second), now, DefaultFreshness)
	assert.True(t, fresh)
	assert.Zero(t, age)
}
