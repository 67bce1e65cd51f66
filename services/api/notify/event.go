// Package notify fans accepted samples out to downstream consumers.
package notify

import (
	"context"
	"time"
)

// Event is the message published for every accepted sample.
type Event struct {
	ID           int64     `json:"id"`
	WaterLevelCM float64   `json:"water_level_cm"`
	Threshold    string    `json:"threshold"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
