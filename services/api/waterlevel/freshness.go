package waterlevel

import "time"

// DefaultFreshness matches a 30 second client poll interval.
const DefaultFreshness = 60 * time.Second

// Freshness reports whether a sample recorded at recordedAt is still live at
// now. Timestamps ahead of now (clock skew) count as age zero.
func Freshness(recordedAt, now time.Time, maxAge time.Duration) (bool, time.Duration) {
	age := now.Sub(recordedAt)
	if age < 0 {
		age = 0
	}
	return age <= maxAge, age
}
