package browser

import (
	"context"
	"errors"
	"fmt"
	"likedigest/lib/scrapers/twitter"
	"likedigest/lib/session"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type ExtractorOptions struct {
	SessionFile string
	Headless    bool
	// number of scroll passes after the first render
	NumScrolls  int
	ScrollDelay time.Duration
	UserAgent   string
	// defaults to twitter.WebURL
	BaseURL string
}

type Extractor struct {
	opts ExtractorOptions
}

func NewExtractor(opts ExtractorOptions) *Extractor {
	if opts.SessionFile == "" {
		opts.SessionFile = session.DefaultPath
	}
	if opts.NumScrolls < 0 {
		opts.NumScrolls = 0
	}
	if opts.ScrollDelay <= 0 {
		opts.ScrollDelay = DefaultScrollDelay
	}
	if opts.BaseURL == "" {
		opts.BaseURL = twitter.WebURL
	}
	return &Extractor{opts: opts}
}

// Tweets loads the session, opens the likes feed and returns every tweet
// container seen across all scroll passes. The feed is virtualized so the
// same tweet can appear in more than one snapshot.
func (e *Extractor) Tweets(ctx context.Context) ([]*goquery.Selection, error) {
	ctx, span := tracer.Start(ctx, "Tweets")
	defer span.End()

	cookies, err := session.Load(e.opts.SessionFile)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load session")
		return nil, err
	}
	slog.InfoContext(ctx, "loaded session cookies", "count", len(cookies), "file", e.opts.SessionFile)

	inst, err := launch(e.opts.Headless, e.opts.UserAgent)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to launch browser")
		return nil, err
	}
	defer func() {
		err := inst.close()
		if err != nil {
			slog.WarnContext(ctx, "failed to close browser", "err", err)
		}
	}()

	err = inst.context.AddCookies(toPlaywrightCookies(cookies))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to add cookies")
		return nil, fmt.Errorf("add session cookies: %w", err)
	}

	err = e.openLikes(ctx, inst.page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open likes")
		return nil, err
	}

	snapshots, err := e.scroll(ctx, inst.page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to scroll")
		return nil, err
	}

	var tweets []*goquery.Selection
	for i, snapshot := range snapshots {
		found, err := ParseSnapshot(snapshot)
		if err != nil {
			slog.WarnContext(ctx, "failed to parse snapshot", "pass", i, "err", err)
			continue
		}
		tweets = append(tweets, found...)
	}

	span.SetAttributes(attribute.Int("tweet_count", len(tweets)))
	slog.InfoContext(ctx, "extracted tweet containers", "count", len(tweets), "snapshots", len(snapshots))
	return tweets, nil
}

func (e *Extractor) openLikes(ctx context.Context, page playwright.Page) error {
	ctx, span := tracer.Start(ctx, "openLikes")
	defer span.End()

	slog.InfoContext(ctx, "navigating to likes page")
	_, err := page.Goto(strings.TrimSuffix(e.opts.BaseURL, "/")+twitter.LikesPath, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	})
	if err != nil {
		return fmt.Errorf("open likes page: %w", err)
	}
	err = sleep(ctx, settleDelay)
	if err != nil {
		return err
	}

	if twitter.IsLoginURL(page.URL()) || !hasLoginIndicator(page) {
		slog.ErrorContext(ctx, "session expired", "url", page.URL())
		return ErrSessionExpired
	}

	_, err = page.WaitForSelector(twitter.SelectorTweet, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(tweetWaitTimeout.Milliseconds())),
	})
	if errors.Is(err, playwright.ErrTimeout) {
		slog.InfoContext(ctx, "no tweets rendered on likes page, the feed may be empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("wait for tweets: %w", err)
	}
	slog.InfoContext(ctx, "likes page loaded")
	return nil
}

// scroll returns the page markup after the first render and after every
// scroll pass.
func (e *Extractor) scroll(ctx context.Context, page playwright.Page) ([]string, error) {
	content, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("read page content: %w", err)
	}
	snapshots := []string{content}

	for i := 0; i < e.opts.NumScrolls; i++ {
		_, err := page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")
		if err != nil {
			return nil, fmt.Errorf("scroll: %w", err)
		}
		err = sleep(ctx, e.opts.ScrollDelay)
		if err != nil {
			return nil, err
		}

		content, err := page.Content()
		if err != nil {
			return nil, fmt.Errorf("read page content: %w", err)
		}
		snapshots = append(snapshots, content)
		slog.DebugContext(ctx, "completed scroll", "pass", i+1, "of", e.opts.NumScrolls)
	}
	return snapshots, nil
}

// ParseSnapshot returns the tweet containers of a rendered feed.
func ParseSnapshot(html string) ([]*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	var tweets []*goquery.Selection
	doc.Find(twitter.SelectorTweet).Each(func(_ int, s *goquery.Selection) {
		tweets = append(tweets, s)
	})
	return tweets, nil
}
