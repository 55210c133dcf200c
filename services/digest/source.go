package digest

import (
	"context"
	"likedigest/lib/scrapers/twitter"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Source fetches raw records from one of the extractors.
type Source interface {
	Name() string
	Records(ctx context.Context) ([]Record, error)
	// Prefilter coarsely narrows freshly normalized posts to the window
	// that was meant to be fetched.
	Prefilter(posts []Post, fetch Window) []Post
}

type LikedTweetsClient interface {
	LikedTweets(ctx context.Context, userId string) ([]twitter.ExpandedTweet, error)
}

type APISource struct {
	Client LikedTweetsClient
	UserID string
}

func (s APISource) Name() string {
	return "api"
}

func (s APISource) Records(ctx context.Context) ([]Record, error) {
	tweets, err := s.Client.LikedTweets(ctx, s.UserID)
	if err != nil {
		return nil, err
	}
	return APIRecords(tweets), nil
}

func (s APISource) Prefilter(posts []Post, fetch Window) []Post {
	return FilterWindow(posts, fetch)
}

type TweetsExtractor interface {
	Tweets(ctx context.Context) ([]*goquery.Selection, error)
}

type BrowserSource struct {
	Extractor TweetsExtractor
	// only posts from the last Hours hours are kept, 0 uses the span of the
	// fetch window
	Hours int
}

func (s BrowserSource) Name() string {
	return "browser"
}

func (s BrowserSource) Records(ctx context.Context) ([]Record, error) {
	tweets, err := s.Extractor.Tweets(ctx)
	if err != nil {
		return nil, err
	}
	return DOMRecords(tweets), nil
}

func (s BrowserSource) Prefilter(posts []Post, fetch Window) []Post {
	span := fetch.End.Sub(fetch.Start)
	if s.Hours > 0 {
		span = time.Duration(s.Hours) * time.Hour
	}
	return FilterSince(posts, fetch.End.Add(-span))
}
