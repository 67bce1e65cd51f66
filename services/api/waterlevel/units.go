// Package waterlevel holds the pure rules applied to water-level samples:
// unit conversion, threshold classification, display time and freshness.
package waterlevel

import (
	"fmt"
	"math"
)

const (
	cmPerMeter = 100.0
	cmPerFoot  = 30.48
)

// CMToMeters converts a centimeter reading to meters.
func CMToMeters(cm float64) float64 {
	return cm / cmPerMeter
}

// CMToFeet converts a centimeter reading to feet. Caller-supplied feet values
// are never used in its place.
func CMToFeet(cm float64) float64 {
	return cm / cmPerFoot
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// FeetInches renders a centimeter reading as whole feet and inches, e.g. 4'11".
func FeetInches(cm float64) string {
	feet := CMToFeet(cm)
	whole := math.Floor(feet)
	inches := math.Round((feet - whole) * 12)
	if inches >= 12 {
		whole++
		inches = 0
	}
	return fmt.Sprintf("%d'%02d\"", int(whole), int(inches))
}

// ValidReading reports whether cm is an acceptable sensor measurement.
func ValidReading(cm float64) bool {
	return !math.IsNaN(cm) && !math.IsInf(cm, 0) && cm >= 0
}
