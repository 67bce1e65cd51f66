// Package gauge produces simulated water-level readings.
package gauge

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/bantaybaha/floodwatch/services/api/waterlevel"
)

// Source yields one raw reading per call. A nil value means the sensor
// reported nothing usable.
type Source interface {
	Next() *float64
}

// NormalizeValue cleans raw sensor values; -999 style sentinels become nil.
func NormalizeValue(v *float64) *float64 {
	if v == nil {
		return nil
	}
	if *v <= -900 || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	val := *v
	return &val
}

// RandomWalk drifts between zero and Max by at most Step per reading.
type RandomWalk struct {
	cur  float64
	step float64
	max  float64
	rng  *rand.Rand
}

func NewRandomWalk(start, step, max float64, seed int64) *RandomWalk {
	return &RandomWalk{cur: start, step: step, max: max, rng: rand.New(rand.NewSource(seed))}
}

func (w *RandomWalk) Next() *float64 {
	w.cur += (w.rng.Float64()*2 - 1) * w.step
	w.cur = math.Max(0, math.Min(w.max, w.cur))
	v := waterlevel.Round(w.cur, 1)
	return &v
}

// Replay cycles through a fixed list of readings.
type Replay struct {
	values []*float64
	pos    int
}

func NewReplay(values []*float64) *Replay {
	return &Replay{values: values}
}

func (r *Replay) Next() *float64 {
	if len(r.values) == 0 {
		return nil
	}
	v := r.values[r.pos]
	r.pos = (r.pos + 1) % len(r.values)
	return NormalizeValue(v)
}

// Len reports how many readings the replay holds.
func (r *Replay) Len() int {
	return len(r.values)
}

// LoadCSV reads the first column of each record as centimeters. A
// non-numeric first row is treated as a header; blank cells become nil.
func LoadCSV(in io.Reader) (*Replay, error) {
	rd := csv.NewReader(in)
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true

	values := make([]*float64, 0)
	for line := 1; ; line++ {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		cell := strings.TrimSpace(rec[0])
		if cell == "" {
			values = append(values, nil)
			continue
		}
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("line %d: invalid reading %q", line, cell)
		}
		values = append(values, &f)
	}
	if len(values) == 0 {
		return nil, errors.New("csv holds no readings")
	}
	return NewReplay(values), nil
}

// Reading is what the sensor submits for one measurement.
type Reading struct {
	CM        float64 `schema:"cm"`
	Feet      float64 `schema:"ft"`
	Threshold string  `schema:"threshold"`
}

// BuildReading derives the feet value and label the way the field device does.
func BuildReading(cm float64, c waterlevel.Classifier) Reading {
	return Reading{
		CM:        cm,
		Feet:      waterlevel.Round(waterlevel.CMToFeet(cm), 2),
		Threshold: string(c.Classify(cm)),
	}
}

// Pushed records the last reading sent upstream.
type Pushed struct {
	CM float64
	TS time.Time
}

// ShouldPush reports whether a reading differs enough from the last one sent,
// or enough time has passed, to be worth sending.
func ShouldPush(cm float64, ts time.Time, last *Pushed, minInterval time.Duration, epsilon float64) bool {
	if last == nil {
		return true
	}
	if ts.Sub(last.TS) >= minInterval {
		return true
	}
	return math.Abs(cm-last.CM) > epsilon
}
