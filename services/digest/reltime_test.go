package digest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseRelative(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.FixedZone("EST", -5*60*60))
	fallback := now.Add(-48 * time.Hour)

	cases := []struct {
		text   string
		expect time.Time
	}{
		{text: "5m", expect: now.Add(-5 * time.Minute)},
		{text: "3h", expect: now.Add(-3 * time.Hour)},
		{text: "2d", expect: now.Add(-48 * time.Hour)},
		{text: " 4H ", expect: now.Add(-4 * time.Hour)},
		{text: "0m", expect: now},
		{text: "xyz", expect: fallback},
		{text: "", expect: fallback},
		{text: "h", expect: fallback},
		{text: "1.5h", expect: fallback},
		{text: "-2h", expect: fallback},
		{text: "Mar 3", expect: fallback},
		{text: "2w", expect: fallback},
		{text: "200000d", expect: fallback},
		{text: "999999999d", expect: fallback},
		{text: "99999999999999999999m", expect: fallback},
	}

	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			got := ParseRelative(c.text, now)
			require.True(t, c.expect.Equal(got), "expected %v, got %v", c.expect, got)
			require.Equal(t, now.Location(), got.Location())
		})
	}
}
