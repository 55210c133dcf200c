package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		in     string
		expect string
	}{
		{in: "  hello   world \n", expect: "hello world"},
		{in: "line one\r\nline two", expect: "line one\nline two"},
		{in: "a\u00a0\u00a0b", expect: "a b"},
		{in: "zero\u200bwidth", expect: "zerowidth"},
		{in: "para\n\n\n\n\nnext", expect: "para\n\nnext"},
		{in: "\t\n  \n", expect: ""},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, NormalizeText(test.in), "%q", test.in)
	}
}

func TestSelectionText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div id="t"><span>good morning </span><img alt="☀️" src="x.png"><br><span>second</span></div>`,
	))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "good morning ☀️\nsecond", SelectionText(doc.Find("#t")))
}

func TestAbsoluteURL(t *testing.T) {
	require.Equal(t, "https://twitter.com/jack/status/20", AbsoluteURL("https://twitter.com", "/jack/status/20"))
	require.Equal(t, "https://x.com/a/status/1", AbsoluteURL("https://twitter.com", "https://x.com/a/status/1"))
	require.Equal(t, "", AbsoluteURL("https://twitter.com", "  "))
}
