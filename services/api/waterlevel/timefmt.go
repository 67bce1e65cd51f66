package waterlevel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone names resolve without a system zoneinfo
)

var offsetPattern = regexp.MustCompile(`^(?:UTC|GMT)?([+-])(\d{1,2})(?::?(\d{2}))?$`)

// LoadLocation resolves an IANA zone name or a fixed offset such as "+08:00",
// "UTC+8" or "GMT-0530".
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty timezone")
	}
	if m := offsetPattern.FindStringSubmatch(name); m != nil {
		hours, _ := strconv.Atoi(m[2])
		minutes := 0
		if m[3] != "" {
			minutes, _ = strconv.Atoi(m[3])
		}
		if hours > 14 || minutes > 59 {
			return nil, fmt.Errorf("invalid timezone offset %q", name)
		}
		secs := hours*3600 + minutes*60
		if m[1] == "-" {
			secs = -secs
		}
		return time.FixedZone(name, secs), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// Normalizer renders stored UTC timestamps in the display timezone. Stored
// values are never converted; conversion happens only when rendering.
type Normalizer struct {
	Location *time.Location
	Layout   string
}

// Display formats t in the display timezone.
func (n Normalizer) Display(t time.Time) string {
	layout := n.Layout
	if layout == "" {
		layout = time.RFC3339
	}
	loc := n.Location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(layout)
}
