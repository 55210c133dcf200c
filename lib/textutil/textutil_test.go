package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	require.Equal(t, "jackreposted", Fold(" Jack \n Reposted\t"))
	require.Equal(t, "", Fold("   "))
}

func TestContainsAny(t *testing.T) {
	markers := []string{"retweeted", "Re posted"}

	cases := []struct {
		label  string
		expect bool
	}{
		{label: "Jack Retweeted", expect: true},
		{label: " jack \n reposted", expect: true},
		{label: "You reposted", expect: true},
		{label: "Jack liked", expect: false},
		{label: "", expect: false},
	}
	for _, c := range cases {
		require.Equal(t, c.expect, ContainsAny(c.label, markers...), c.label)
	}

	require.False(t, ContainsAny("anything", ""))
}
