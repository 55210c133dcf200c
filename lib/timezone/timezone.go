package timezone

import (
	"fmt"
	"strings"
	"time"
)

const DefaultName = "America/New_York"

// Load resolves an IANA timezone name, an empty name resolves to DefaultName.
func Load(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// Clock is what anything depending on the current time should use, Now()
// always returns a time in the clock's location.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type SystemClock struct {
	location *time.Location
}

func NewSystemClock(loc *time.Location) SystemClock {
	return SystemClock{location: loc}
}

func (c SystemClock) Now() time.Time {
	return time.Now().In(c.location)
}

func (c SystemClock) Location() *time.Location {
	return c.location
}

// FixedClock always returns the same instant, used by tests and dry runs.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

func (c FixedClock) Location() *time.Location {
	return c.At.Location()
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// layouts without an offset, these are interpreted as wall clock time
// in the configured location
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an absolute timestamp, timestamps lacking an offset
// are localized to loc instead of silently becoming UTC. The result is
// always expressed in loc.
func ParseTimestamp(text string, loc *time.Location) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range zonedLayouts {
		t, err := time.Parse(layout, text)
		if err == nil {
			return t.In(loc), nil
		}
	}
	for _, layout := range naiveLayouts {
		t, err := time.ParseInLocation(layout, text, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", text)
}
