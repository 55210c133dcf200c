package digest

import (
	"context"
	"likedigest/lib/scrapers/twitter"
	"likedigest/lib/timezone"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func testNormalizer(t testing.TB) Normalizer {
	ny := newYork(t)
	return Normalizer{
		Clock: timezone.FixedClock{At: time.Date(2024, time.March, 15, 10, 0, 0, 0, ny)},
	}
}

func article(t testing.TB, inner string) DOMRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body><article data-testid="tweet">` + inner + `</article></body></html>`,
	))
	if err != nil {
		t.Fatal(err)
	}
	return DOMRecord{Selection: doc.Find(twitter.SelectorTweet).First()}
}

const fullArticle = `
<div data-testid="User-Name">
  <a href="/jack"><span><span>Jack Dorsey</span></span></a>
  <a href="/jack"><span>@jack</span></a>
  <span>·</span>
  <a href="/jack/status/123"><time datetime="2024-03-15T01:00:00.000Z">Mar 15</time></a>
</div>
<div data-testid="tweetText" lang="en"><span>hello   world</span><img alt="🎉" src="https://abs.twimg.com/emoji/v2/svg/1f389.svg"><br><span>second line</span></div>
<div data-testid="tweetPhoto"><img src="https://pbs.twimg.com/media/abc.jpg?name=small"></div>
<img src="https://pbs.twimg.com/profile_images/1/avatar.jpg">
<video poster="https://pbs.twimg.com/ext_tw_video_thumb/1/pu/img/thumb.jpg"></video>
<video></video>
<div role="link"><a href="/other/status/999">quoted post</a></div>
`

func TestNormalizeDOM(t *testing.T) {
	n := testNormalizer(t)
	ny := n.Clock.Location()

	cases := []struct {
		name   string
		html   string
		skip   SkipReason
		expect Post
	}{
		{
			name: "full",
			html: fullArticle,
			expect: Post{
				ID:   "123",
				Text: "hello world🎉\nsecond line",
				Author: Author{
					Handle:      "jack",
					DisplayName: "Jack Dorsey",
				},
				CreatedAt: at(time.Date(2024, time.March, 14, 21, 0, 0, 0, ny)),
				URL:       "https://twitter.com/jack/status/123",
				Media: []Media{
					{Type: MediaImage, URL: "https://pbs.twimg.com/media/abc.jpg?name=small"},
					{Type: MediaVideo, URL: "https://pbs.twimg.com/ext_tw_video_thumb/1/pu/img/thumb.jpg"},
				},
			},
		},
		{
			name: "relative time",
			html: `<a href="/alice/status/7"><time>2h</time></a><div data-testid="tweetText">hi</div>`,
			expect: Post{
				ID:        "7",
				Text:      "hi",
				Author:    Author{Handle: "alice", DisplayName: UnknownDisplayName},
				CreatedAt: at(time.Date(2024, time.March, 15, 8, 0, 0, 0, ny)),
				URL:       "https://twitter.com/alice/status/7",
			},
		},
		{
			name: "unparseable relative time",
			html: `<a href="/alice/status/7"><time>Mar 3</time></a><div data-testid="tweetText">hi</div>`,
			expect: Post{
				ID:        "7",
				Text:      "hi",
				Author:    Author{Handle: "alice", DisplayName: UnknownDisplayName},
				CreatedAt: at(time.Date(2024, time.March, 13, 10, 0, 0, 0, ny)),
				URL:       "https://twitter.com/alice/status/7",
			},
		},
		{
			name: "no permalink or author",
			html: `<div data-testid="tweetText"> just   text </div>`,
			expect: Post{
				ID:     "dom:unknown:just text",
				Text:   "just text",
				Author: Author{Handle: UnknownHandle, DisplayName: UnknownDisplayName},
			},
		},
		{
			name: "no text element",
			html: `<a href="/jack/status/1"><time datetime="2024-03-15T01:00:00.000Z"></time></a>`,
			skip: SkipEmptyText,
		},
		{
			name: "blank text",
			html: `<div data-testid="tweetText">  &nbsp; </div>`,
			skip: SkipEmptyText,
		},
		{
			name: "promoted label outside body",
			html: `<span>Promoted</span><div data-testid="tweetText">Buy now</div>`,
			expect: Post{
				ID:     "dom:unknown:Buy now",
				Text:   "Buy now",
				Author: Author{Handle: UnknownHandle, DisplayName: UnknownDisplayName},
			},
		},
		{
			name: "promoted body",
			html: `<div data-testid="tweetText">Promoted deal of the day</div>`,
			skip: SkipPromoted,
		},
		{
			name: "repost",
			html: `<div data-testid="socialContext">Jack  Reposted</div><div data-testid="tweetText">hello</div>`,
			skip: SkipRepost,
		},
		{
			name: "legacy retweet label",
			html: `<div data-testid="socialContext">You Retweeted</div><div data-testid="tweetText">hello</div>`,
			skip: SkipRepost,
		},
		{
			name: "bad absolute timestamp",
			html: `<time datetime="yesterday"></time><div data-testid="tweetText">hello</div>`,
			skip: SkipMalformed,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := n.Normalize(article(t, c.html))
			require.Equal(t, c.skip, res.Skip)
			if c.skip != SkipNone {
				require.Equal(t, Post{}, res.Post)
				if c.skip == SkipMalformed {
					require.Error(t, res.Err)
				}
				return
			}
			require.NoError(t, res.Err)
			if diff := cmp.Diff(c.expect, res.Post); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestNormalizeDOMMissingTime(t *testing.T) {
	n := testNormalizer(t)
	res := n.Normalize(article(t, `<a href="/jack/status/5">link</a><div data-testid="tweetText">hi</div>`))
	require.Equal(t, SkipNone, res.Skip)
	require.Nil(t, res.Post.CreatedAt)
	require.Equal(t, "5", res.Post.ID)
}

func TestNormalizeAPI(t *testing.T) {
	n := testNormalizer(t)
	ny := n.Clock.Location()

	jack := &twitter.User{ID: "7", Username: "jack", Name: "Jack Dorsey"}

	cases := []struct {
		name   string
		tweet  twitter.ExpandedTweet
		skip   SkipReason
		expect Post
	}{
		{
			name: "full",
			tweet: twitter.ExpandedTweet{
				Tweet: twitter.Tweet{
					ID:        "123",
					Text:      "fish &amp; chips &lt;3",
					AuthorID:  "7",
					CreatedAt: "2024-03-15T01:00:00.000Z",
					ReferencedTweets: []twitter.ReferencedTweet{
						{Type: "quoted", ID: "100"},
					},
				},
				Author: jack,
				Media: []twitter.Media{
					{MediaKey: "3_1", Type: twitter.MediaPhoto, URL: "https://pbs.twimg.com/media/a.jpg"},
					{MediaKey: "7_1", Type: twitter.MediaVideo, PreviewImageURL: "https://pbs.twimg.com/thumb.jpg"},
					{MediaKey: "16_1", Type: twitter.MediaAnimatedGif},
				},
			},
			expect: Post{
				ID:        "123",
				Text:      "fish & chips <3",
				Author:    Author{Handle: "jack", DisplayName: "Jack Dorsey"},
				CreatedAt: at(time.Date(2024, time.March, 14, 21, 0, 0, 0, ny)),
				URL:       "https://twitter.com/jack/status/123",
				Media: []Media{
					{Type: MediaImage, URL: "https://pbs.twimg.com/media/a.jpg"},
					{Type: MediaVideo, URL: "https://pbs.twimg.com/thumb.jpg"},
				},
			},
		},
		{
			name: "unresolved author and no timestamp",
			tweet: twitter.ExpandedTweet{
				Tweet: twitter.Tweet{ID: "5", Text: "hi", AuthorID: "404"},
			},
			expect: Post{
				ID:     "5",
				Text:   "hi",
				Author: Author{Handle: UnknownHandle, DisplayName: UnknownDisplayName},
				URL:    "https://twitter.com/unknown/status/5",
			},
		},
		{
			name: "retweet",
			tweet: twitter.ExpandedTweet{
				Tweet: twitter.Tweet{
					ID:               "6",
					Text:             "RT @jack: hi",
					ReferencedTweets: []twitter.ReferencedTweet{{Type: "retweeted", ID: "1"}},
				},
				Author: jack,
			},
			skip: SkipRepost,
		},
		{
			name:  "empty",
			tweet: twitter.ExpandedTweet{Tweet: twitter.Tweet{ID: "8", Text: "   "}},
			skip:  SkipEmptyText,
		},
		{
			name:  "promoted",
			tweet: twitter.ExpandedTweet{Tweet: twitter.Tweet{ID: "9", Text: "Promoted: try this"}},
			skip:  SkipPromoted,
		},
		{
			name:  "bad timestamp",
			tweet: twitter.ExpandedTweet{Tweet: twitter.Tweet{ID: "10", Text: "hi", CreatedAt: "last tuesday"}},
			skip:  SkipMalformed,
		},
		{
			name:  "missing id",
			tweet: twitter.ExpandedTweet{Tweet: twitter.Tweet{Text: "hi"}},
			skip:  SkipMalformed,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := n.Normalize(APIRecord{Tweet: c.tweet})
			require.Equal(t, c.skip, res.Skip)
			if c.skip != SkipNone {
				require.Equal(t, Post{}, res.Post)
				return
			}
			if diff := cmp.Diff(c.expect, res.Post); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	n := testNormalizer(t)
	records := []Record{
		APIRecord{Tweet: twitter.ExpandedTweet{Tweet: twitter.Tweet{ID: "1", Text: "one"}}},
		APIRecord{Tweet: twitter.ExpandedTweet{Tweet: twitter.Tweet{ID: "2", Text: ""}}},
		article(t, `<a href="/a/status/3">x</a><div data-testid="tweetText">three</div>`),
		article(t, `<div data-testid="tweetText">Promoted</div>`),
		article(t, `<time datetime="nope"></time><div data-testid="tweetText">bad</div>`),
		nil,
	}

	posts, stats := n.NormalizeAll(context.Background(), records)
	require.Equal(t, []string{"1", "3"}, postIDs(posts))
	require.Equal(t, SkipStats{
		SkipEmptyText: 1,
		SkipPromoted:  1,
		SkipMalformed: 2,
	}, stats)
	require.Equal(t, 4, stats.Total())
}
