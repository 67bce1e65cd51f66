package waterlevel

import (
	"fmt"
	"strings"
)

// Level is the safety category of a water level.
type Level string

const (
	Normal  Level = "normal"
	Warning Level = "warning"
	Danger  Level = "danger"
)

// Default cut points in meters (4 ft and 5.4 ft).
const (
	DefaultWarningM = 1.219
	DefaultDangerM  = 1.651
)

// Classifier maps a reading to a Level using two cut points in meters.
type Classifier struct {
	WarningM float64
	DangerM  float64
}

// DefaultClassifier returns a Classifier with the default cut points.
func DefaultClassifier() Classifier {
	return Classifier{WarningM: DefaultWarningM, DangerM: DefaultDangerM}
}

// Validate checks that the cut points are positive and ordered.
func (c Classifier) Validate() error {
	if c.WarningM <= 0 || c.DangerM <= 0 {
		return fmt.Errorf("threshold cut points must be positive (warning=%v danger=%v)", c.WarningM, c.DangerM)
	}
	if c.WarningM >= c.DangerM {
		return fmt.Errorf("warning cut point %v must be below danger cut point %v", c.WarningM, c.DangerM)
	}
	return nil
}

// Classify returns the Level for a centimeter reading.
func (c Classifier) Classify(cm float64) Level {
	m := CMToMeters(cm)
	switch {
	case m >= c.DangerM:
		return Danger
	case m >= c.WarningM:
		return Warning
	default:
		return Normal
	}
}

// ParseLevel normalizes a caller-supplied label. Matching is case-insensitive,
// "caution" is an alias of warning and anything unrecognized is normal.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "danger":
		return Danger
	case "warning", "caution":
		return Warning
	default:
		return Normal
	}
}
