package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	loc, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultName, loc.String())

	loc, err = Load(" America/Chicago ")
	require.NoError(t, err)
	require.Equal(t, "America/Chicago", loc.String())

	_, err = Load("Mars/Olympus_Mons")
	require.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	loc, err := Load("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		text   string
		expect time.Time
	}{
		{
			text:   "2024-03-15T15:00:00.000Z",
			expect: time.Date(2024, time.March, 15, 11, 0, 0, 0, loc),
		},
		{
			text:   "2024-03-15T10:00:00-05:00",
			expect: time.Date(2024, time.March, 15, 11, 0, 0, 0, loc),
		},
		{
			// no offset, treated as new york wall clock
			text:   "2024-03-15T10:00:00",
			expect: time.Date(2024, time.March, 15, 10, 0, 0, 0, loc),
		},
		{
			text:   "2024-01-02 03:04:05",
			expect: time.Date(2024, time.January, 2, 3, 4, 5, 0, loc),
		},
	}

	for _, test := range cases {
		parsed, err := ParseTimestamp(test.text, loc)
		require.NoError(t, err, test.text)
		require.True(t, test.expect.Equal(parsed), "%s: expected %s, got %s", test.text, test.expect, parsed)
		require.Equal(t, loc, parsed.Location())
	}

	_, err = ParseTimestamp("yesterday", loc)
	require.Error(t, err)
}

func TestFixedClock(t *testing.T) {
	loc, err := Load("America/Los_Angeles")
	if err != nil {
		t.Fatal(err)
	}
	at := time.Date(2024, time.August, 26, 0, 0, 0, 0, loc)
	clock := FixedClock{At: at}
	require.Equal(t, at, clock.Now())
	require.Equal(t, loc, clock.Location())

	system := NewSystemClock(loc)
	require.Equal(t, loc, system.Now().Location())
}
