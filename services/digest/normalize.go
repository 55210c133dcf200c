package digest

import (
	"context"
	"errors"
	"fmt"
	"likedigest/lib/htmlutil"
	"likedigest/lib/scrapers/twitter"
	"likedigest/lib/textutil"
	"likedigest/lib/timezone"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/net/html"
)

type SkipReason string

const (
	SkipNone      SkipReason = ""
	SkipEmptyText SkipReason = "empty_text"
	SkipPromoted  SkipReason = "promoted"
	SkipRepost    SkipReason = "repost"
	SkipMalformed SkipReason = "malformed"
)

var errMissingID = errors.New("record has no id")

// Result is the outcome of normalizing one record, exactly one of Post or
// Skip is set. Err explains a SkipMalformed.
type Result struct {
	Post Post
	Skip SkipReason
	Err  error
}

func skip(reason SkipReason) Result {
	return Result{Skip: reason}
}

func malformed(err error) Result {
	return Result{Skip: SkipMalformed, Err: err}
}

type Normalizer struct {
	Clock timezone.Clock
	// base of relative links in the feed, defaults to twitter.WebURL
	WebURL string
}

func (n Normalizer) location() *time.Location {
	return n.Clock.Location()
}

func (n Normalizer) webURL() string {
	if n.WebURL == "" {
		return twitter.WebURL
	}
	return n.WebURL
}

// Normalize turns a raw record into a Post or explains why it was skipped.
func (n Normalizer) Normalize(r Record) Result {
	switch r := r.(type) {
	case DOMRecord:
		return n.normalizeDOM(r)
	case APIRecord:
		return n.normalizeAPI(r)
	default:
		return malformed(fmt.Errorf("unknown record type %T", r))
	}
}

// policy checks shared by both record variants, in order of precedence
func checkText(text string) SkipReason {
	if text == "" {
		return SkipEmptyText
	}
	if strings.Contains(text, twitter.PromotedMarker) {
		return SkipPromoted
	}
	return SkipNone
}

var statusIdRegex = regexp.MustCompile(`/status/(\d+)`)
var statusHandleRegex = regexp.MustCompile(`^/([^/]+)/status/`)

// statusLink prefers the link wrapping the timestamp since the first status
// link of a container can belong to a quoted post.
func statusLink(sel *goquery.Selection) string {
	href, ok := sel.Find(twitter.SelectorTime).First().Closest("a").Attr("href")
	if ok && statusIdRegex.MatchString(href) {
		return href
	}
	return sel.Find(twitter.SelectorStatusLink).First().AttrOr("href", "")
}

func domAuthor(sel *goquery.Selection, link string) Author {
	author := Author{}
	sel.Find(twitter.SelectorUserName).First().Find("span").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(htmlutil.SelectionText(s))
		switch {
		case text == "" || text == "·":
		case strings.HasPrefix(text, "@"):
			if author.Handle == "" {
				author.Handle = strings.TrimPrefix(text, "@")
			}
		default:
			if author.DisplayName == "" {
				author.DisplayName = htmlutil.NormalizeText(text)
			}
		}
	})
	if author.Handle == "" {
		match := statusHandleRegex.FindStringSubmatch(link)
		if len(match) >= 2 {
			author.Handle = match[1]
		}
	}
	if author.Handle == "" {
		author.Handle = UnknownHandle
	}
	if author.DisplayName == "" {
		author.DisplayName = UnknownDisplayName
	}
	return author
}

func (n Normalizer) domTimestamp(sel *goquery.Selection) (*time.Time, error) {
	timeEl := sel.Find(twitter.SelectorTime).First()
	if timeEl.Length() == 0 {
		return nil, nil
	}
	if datetime := strings.TrimSpace(timeEl.AttrOr("datetime", "")); datetime != "" {
		t, err := timezone.ParseTimestamp(datetime, n.location())
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	t := ParseRelative(timeEl.Text(), n.Clock.Now().In(n.location()))
	return &t, nil
}

func domMedia(sel *goquery.Selection) []Media {
	var media []Media
	sel.Find(twitter.SelectorImage).Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		if strings.Contains(src, "media") {
			media = append(media, Media{Type: MediaImage, URL: src})
		}
	})
	sel.Find(twitter.SelectorVideo).Each(func(_ int, s *goquery.Selection) {
		poster := s.AttrOr("poster", "")
		if poster != "" {
			media = append(media, Media{Type: MediaVideo, URL: poster})
		}
	})
	return media
}

func (n Normalizer) normalizeDOM(r DOMRecord) Result {
	sel := r.Selection
	if sel == nil {
		return malformed(errors.New("empty dom record"))
	}

	textEl := sel.Find(twitter.SelectorTweetText).First()
	text := htmlutil.NormalizeText(htmlutil.SelectionText(textEl))
	if reason := checkText(text); reason != SkipNone {
		return skip(reason)
	}
	social := htmlutil.SelectionText(sel.Find(twitter.SelectorSocialContext))
	if textutil.ContainsAny(social, twitter.RepostMarkers...) {
		return skip(SkipRepost)
	}

	createdAt, err := n.domTimestamp(sel)
	if err != nil {
		return malformed(err)
	}

	link := statusLink(sel)
	author := domAuthor(sel, link)

	id := ""
	if match := statusIdRegex.FindStringSubmatch(link); len(match) >= 2 {
		id = match[1]
	}
	url := ""
	if id != "" {
		url = htmlutil.AbsoluteURL(n.webURL(), link)
	} else {
		id = fmt.Sprintf("dom:%s:%s", author.Handle, text)
	}

	return Result{Post: Post{
		ID:        id,
		Text:      text,
		Author:    author,
		CreatedAt: createdAt,
		URL:       url,
		Media:     domMedia(sel),
	}}
}

func apiMedia(media []twitter.Media) []Media {
	var out []Media
	for _, m := range media {
		switch {
		case m.Type == twitter.MediaPhoto && m.URL != "":
			out = append(out, Media{Type: MediaImage, URL: m.URL})
		case m.PreviewImageURL != "":
			out = append(out, Media{Type: MediaVideo, URL: m.PreviewImageURL})
		}
	}
	return out
}

func (n Normalizer) normalizeAPI(r APIRecord) Result {
	tweet := r.Tweet.Tweet

	// the api escapes &, < and > in post bodies
	text := htmlutil.NormalizeText(html.UnescapeString(tweet.Text))
	if reason := checkText(text); reason != SkipNone {
		return skip(reason)
	}
	for _, ref := range tweet.ReferencedTweets {
		if ref.Type == twitter.ReferencedRetweet {
			return skip(SkipRepost)
		}
	}
	if tweet.ID == "" {
		return malformed(errMissingID)
	}

	var createdAt *time.Time
	if tweet.CreatedAt != "" {
		t, err := timezone.ParseTimestamp(tweet.CreatedAt, n.location())
		if err != nil {
			return malformed(err)
		}
		createdAt = &t
	}

	author := Author{Handle: UnknownHandle, DisplayName: UnknownDisplayName}
	if u := r.Tweet.Author; u != nil {
		if u.Username != "" {
			author.Handle = u.Username
		}
		if u.Name != "" {
			author.DisplayName = u.Name
		}
	}

	return Result{Post: Post{
		ID:        tweet.ID,
		Text:      text,
		Author:    author,
		CreatedAt: createdAt,
		URL:       twitter.Permalink(author.Handle, tweet.ID),
		Media:     apiMedia(r.Tweet.Media),
	}}
}

// SkipStats counts skipped records per reason.
type SkipStats map[SkipReason]int

func (s SkipStats) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// NormalizeAll normalizes every record in order, skipped records are logged
// and counted.
func (n Normalizer) NormalizeAll(ctx context.Context, records []Record) ([]Post, SkipStats) {
	ctx, span := tracer.Start(ctx, "NormalizeAll")
	defer span.End()

	stats := SkipStats{}
	posts := make([]Post, 0, len(records))
	for i, r := range records {
		res := n.Normalize(r)
		outcome := string(res.Skip)
		if res.Skip == SkipNone {
			outcome = "kept"
		}
		recordsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))

		switch res.Skip {
		case SkipNone:
			posts = append(posts, res.Post)
		case SkipMalformed:
			stats[res.Skip]++
			slog.WarnContext(ctx, "skipping malformed record", "index", i, "err", res.Err)
		default:
			stats[res.Skip]++
			slog.DebugContext(ctx, "skipping record", "index", i, "reason", string(res.Skip))
		}
	}

	span.SetAttributes(
		attribute.Int("record_count", len(records)),
		attribute.Int("post_count", len(posts)),
		attribute.Int("skip_count", stats.Total()),
	)
	slog.InfoContext(ctx, "normalized records", "posts", len(posts), "skipped", stats.Total())
	return posts, stats
}
