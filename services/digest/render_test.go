package digest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseDigest(t testing.TB, d Digest) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(d.HTML))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestRenderEmpty(t *testing.T) {
	r := Renderer{Location: newYork(t)}
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, r.Location)

	for _, tf := range Timeframes {
		d, err := r.Render(context.Background(), nil, tf, now)
		require.NoError(t, err)
		require.Contains(t, d.HTML, "No liked tweets found for this period.")
		require.Contains(t, d.HTML, tf.Title())
		require.Equal(t, tf.Subject(now), d.Subject)
		require.Equal(t, 0, parseDigest(t, d).Find("a.permalink").Length())
	}
}

func TestRenderPosts(t *testing.T) {
	ny := newYork(t)
	r := Renderer{Location: ny}
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, ny)

	posts := []Post{
		{
			ID:        "3",
			Text:      "newest <script>alert(1)</script>",
			Author:    Author{Handle: "jack", DisplayName: "Jack"},
			CreatedAt: at(time.Date(2024, time.March, 15, 1, 5, 0, 0, time.UTC)),
			URL:       "https://twitter.com/jack/status/3",
			Media: []Media{
				{Type: MediaImage, URL: "https://pbs.twimg.com/media/a.jpg"},
				{Type: MediaVideo, URL: "https://pbs.twimg.com/thumb.jpg"},
			},
		},
		{
			ID:     "1",
			Text:   "no timestamp",
			Author: Author{Handle: UnknownHandle, DisplayName: UnknownDisplayName},
			URL:    "https://twitter.com/unknown/status/1",
		},
		{
			ID:        "2",
			Text:      "oldest",
			Author:    Author{Handle: "alice", DisplayName: "Alice"},
			CreatedAt: at(time.Date(2024, time.March, 14, 22, 0, 0, 0, ny)),
			URL:       "https://twitter.com/alice/status/2",
		},
	}
	original := append([]Post(nil), posts...)

	d, err := r.Render(context.Background(), posts, Daily, now)
	require.NoError(t, err)
	require.Equal(t, original, posts)
	require.NotContains(t, d.HTML, "<script>")
	require.Contains(t, d.HTML, "Found 3 liked tweets")

	doc := parseDigest(t, d)
	var hrefs []string
	doc.Find("a.permalink").Each(func(_ int, s *goquery.Selection) {
		require.Equal(t, "View Tweet", s.Text())
		hrefs = append(hrefs, s.AttrOr("href", ""))
	})
	require.Equal(t, []string{
		"https://twitter.com/jack/status/3",
		"https://twitter.com/unknown/status/1",
		"https://twitter.com/alice/status/2",
	}, hrefs)

	blocks := doc.Find("div.post")
	require.Equal(t, 3, blocks.Length())

	first := blocks.Eq(0)
	require.Equal(t, "https://twitter.com/jack", first.Find("a.author").AttrOr("href", ""))
	require.Equal(t, "@jack", first.Find("a.author").Text())
	require.Equal(t, 2, first.Find("img").Length())
	require.Contains(t, first.Text(), "Liked: March 14, 2024 at 09:05 PM")

	require.Contains(t, blocks.Eq(1).Text(), "Liked: unknown time")
	require.Contains(t, blocks.Eq(2).Text(), "Liked: March 14, 2024 at 10:00 PM")
}

func TestRenderSingular(t *testing.T) {
	r := Renderer{}
	d, err := r.Render(context.Background(), []Post{{ID: "1", Text: "one"}}, Monthly, time.Now())
	require.NoError(t, err)
	require.Contains(t, d.HTML, "Found 1 liked tweet<")
	require.Equal(t, 0, parseDigest(t, d).Find("a.permalink").Length())
}
