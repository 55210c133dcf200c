package digest

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTimeframe = errors.New("timeframe must be 'daily', 'weekly', or 'monthly'")

type Timeframe string

const (
	Daily   Timeframe = "daily"
	Weekly  Timeframe = "weekly"
	Monthly Timeframe = "monthly"
)

var Timeframes = []Timeframe{Daily, Weekly, Monthly}

// digests close at this local hour
const cutoffHour = 21

func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(strings.ToLower(strings.TrimSpace(s)))
	switch tf {
	case Daily, Weekly, Monthly:
		return tf, nil
	}
	return "", fmt.Errorf("%w, got %q", ErrInvalidTimeframe, s)
}

// Window is a closed interval of time.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func atCutoff(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), cutoffHour, 0, 0, 0, t.Location())
}

// lastSunday is the most recent sunday on or before now, at midnight.
func lastSunday(now time.Time) time.Time {
	d := now.AddDate(0, 0, -int(now.Weekday()))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
}

// Boundary computes the exact window a digest covers. now must already be in
// the configured location.
//
//   - daily: yesterday 21:00 to today 21:00
//   - weekly: the latest completed sunday 21:00 to sunday 21:00 week
//   - monthly: the 1st 21:00 to the last day of the month 21:00
func (tf Timeframe) Boundary(now time.Time) Window {
	switch tf {
	case Weekly:
		end := atCutoff(lastSunday(now))
		if end.After(now) {
			end = end.AddDate(0, 0, -7)
		}
		return Window{Start: end.AddDate(0, 0, -7), End: end}
	case Monthly:
		first := time.Date(now.Year(), now.Month(), 1, cutoffHour, 0, 0, 0, now.Location())
		last := time.Date(now.Year(), now.Month()+1, 0, cutoffHour, 0, 0, 0, now.Location())
		return Window{Start: first, End: last}
	default:
		end := atCutoff(now)
		return Window{Start: atCutoff(now.AddDate(0, 0, -1)), End: end}
	}
}

// FetchWindow is the coarse window fetched before the exact boundary is
// applied, wide enough to cover the boundary.
func (tf Timeframe) FetchWindow(now time.Time) Window {
	days := 2
	switch tf {
	case Weekly:
		days = 14
	case Monthly:
		days = 32
	}
	return Window{Start: now.AddDate(0, 0, -days), End: now}
}

func (tf Timeframe) Title() string {
	switch tf {
	case Weekly:
		return "Weekly Liked Tweets Summary"
	case Monthly:
		return "Monthly Liked Tweets Recap"
	default:
		return "Daily Liked Tweets Digest"
	}
}

func (tf Timeframe) Subject(now time.Time) string {
	switch tf {
	case Weekly:
		return "Your Weekly Liked Tweets Summary - Week of " + tf.Boundary(now).Start.Format("January 02")
	case Monthly:
		return "Your Liked Tweets Recap - " + now.Format("January 2006")
	default:
		return "Your Liked Tweets Digest - " + now.Format("January 02, 2006")
	}
}
