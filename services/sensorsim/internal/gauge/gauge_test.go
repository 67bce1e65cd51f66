package gauge

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bantaybaha/floodwatch/services/api/waterlevel"
)

func ptr(v float64) *float64 { return &v }

func TestNormalizeValue(t *testing.T) {
	assert.Nil(t, NormalizeValue(nil))
	assert.Nil(t, NormalizeValue(ptr(-999)))
	assert.Nil(t, NormalizeValue(ptr(-900)))
	require.NotNil(t, NormalizeValue(ptr(-1)))
	assert.Equal(t, 120.5, *NormalizeValue(ptr(120.5)))
}

func TestRandomWalkStaysInBounds(t *testing.T) {
	w := NewRandomWalk(5, 20, 50, 1)
	for i := 0; i < 500; i++ {
		v := w.Next()
		require.NotNil(t, v)
		assert.GreaterOrEqual(t, *v, 0.0)
		assert.LessOrEqual(t, *v, 50.0)
	}
}

func TestRandomWalkDeterministicPerSeed(t *testing.T) {
	a := NewRandomWalk(100, 5, 300, 7)
	b := NewRandomWalk(100, 5, 300, 7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, *a.Next(), *b.Next())
	}
}

func TestLoadCSV(t *testing.T) {
	r, err := LoadCSV(strings.NewReader("cm,note\n100\n-999,sensor fault\n\n140.5\n"))
	require.NoError(t, err)
	// blank lines are skipped by encoding/csv
	assert.Equal(t, 3, r.Len())

	assert.Equal(t, 100.0, *r.Next())
	assert.Nil(t, r.Next())
	assert.Equal(t, 140.5, *r.Next())
	assert.Equal(t, 100.0, *r.Next(), "replay wraps around")
}

func TestLoadCSVErrors(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = LoadCSV(strings.NewReader("100\nhigh\n"))
	assert.Error(t, err)
}

func TestBuildReading(t *testing.T) {
	r := BuildReading(150, waterlevel.DefaultClassifier())
	assert.Equal(t, 150.0, r.CM)
	assert.Equal(t, 4.92, r.Feet)
	assert.Equal(t, "warning", r.Threshold)

	assert.Equal(t, "danger", BuildReading(170, waterlevel.DefaultClassifier()).Threshold)
	assert.Equal(t, "normal", BuildReading(50, waterlevel.DefaultClassifier()).Threshold)
}

func TestShouldPush(t *testing.T) {
	now := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
	last := &Pushed{CM: 100, TS: now.Add(-time.Minute)}

	assert.True(t, ShouldPush(100, now, nil, 5*time.Minute, 0.5))
	assert.False(t, ShouldPush(100.3, now, last, 5*time.Minute, 0.5))
	assert.True(t, ShouldPush(101, now, last, 5*time.Minute, 0.5))
	assert.True(t, ShouldPush(100, now.Add(4*time.Minute), last, 5*time.Minute, 0.5))
}
