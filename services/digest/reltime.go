package digest

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// unparseable relative times are assumed to be older than any window the
// relative filter is used with
const relativeFallback = 48 * time.Hour

var relativeUnits = map[byte]time.Duration{
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
}

// ParseRelative turns a compact relative time like "5m", "2h" or "3d" into an
// absolute time before now. Anything else resolves to 48 hours before now.
func ParseRelative(text string, now time.Time) time.Time {
	text = strings.ToLower(strings.TrimSpace(text))
	if len(text) < 2 {
		return now.Add(-relativeFallback)
	}
	unit, ok := relativeUnits[text[len(text)-1]]
	if !ok {
		return now.Add(-relativeFallback)
	}
	digits := text[:len(text)-1]
	for _, c := range digits {
		if c < '0' || c > '9' {
			return now.Add(-relativeFallback)
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n > math.MaxInt64/int64(unit) {
		return now.Add(-relativeFallback)
	}
	return now.Add(-time.Duration(n) * unit)
}
