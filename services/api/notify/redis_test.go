package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	channel string
	payload []byte
	err     error
}

func (f *fakeRedis) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)
	return redis.NewIntResult(1, f.err)
}

func TestRedisPublisherPublishesJSON(t *testing.T) {
	fake := &fakeRedis{}
	pub := NewRedisPublisher(fake, "")
	assert.Equal(t, DefaultChannel, pub.Channel())

	ev := Event{ID: 3, WaterLevelCM: 170, Threshold: "danger", RecordedAt: time.Date(2025, 1, 2, 16, 30, 0, 0, time.UTC)}
	require.NoError(t, pub.Publish(context.Background(), ev))
	assert.Equal(t, DefaultChannel, fake.channel)

	var got Event
	require.NoError(t, json.Unmarshal(fake.payload, &got))
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, "danger", got.Threshold)
	assert.True(t, got.RecordedAt.Equal(ev.RecordedAt))
}

func TestRedisPublisherWrapsErrors(t *testing.T) {
	boom := errors.New("connection refused")
	pub := NewRedisPublisher(&fakeRedis{err: boom}, "custom")

	err := pub.Publish(context.Background(), Event{ID: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "custom")
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), Event{}))
}
