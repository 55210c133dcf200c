package api

import (
	"context"
	"errors"
	"fmt"
	"likedigest/lib/restyutil"
	"likedigest/lib/scrapers/twitter"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("likedigest/lib/scrapers/twitter/api")

var ErrUnauthorized = errors.New("twitter api rejected the bearer token")

const pageSize = 100

type ClientOptions struct {
	// defaults to twitter.ApiURL
	BaseUrl     string
	BearerToken string
	// 0 follows pagination until the listing is exhausted
	MaxPages int
	// if set every http exchange is dumped here
	Output restyutil.InstrumentOutput
}

type Client struct {
	http     *resty.Client
	maxPages int
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = twitter.ApiURL
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetAuthToken(opts.BearerToken)
	client.SetHeader("accept", "application/json")
	restyutil.InstrumentClient(client, tracer, opts.Output)

	return &Client{
		http:     client,
		maxPages: opts.MaxPages,
	}
}

func likedTweetsQuery() map[string]string {
	return map[string]string{
		"tweet.fields": "created_at,author_id,attachments,referenced_tweets",
		"user.fields":  "username,name",
		"expansions":   "author_id,attachments.media_keys",
		"media.fields": "type,url,preview_image_url",
		"max_results":  strconv.Itoa(pageSize),
	}
}

func (c *Client) fetchPage(ctx context.Context, userId, token string) (twitter.LikedTweetsPage, error) {
	ctx, span := tracer.Start(ctx, "fetchPage")
	defer span.End()

	req := c.http.R().
		SetContext(ctx).
		SetPathParam("id", userId).
		SetQueryParams(likedTweetsQuery()).
		SetResult(&twitter.LikedTweetsPage{})
	if token != "" {
		req.SetQueryParam("pagination_token", token)
	}

	res, err := req.Get("/2/users/{id}/liked_tweets")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return twitter.LikedTweetsPage{}, err
	}
	switch {
	case res.StatusCode() == http.StatusUnauthorized || res.StatusCode() == http.StatusForbidden:
		span.SetStatus(codes.Error, "unauthorized")
		return twitter.LikedTweetsPage{}, fmt.Errorf("%w (%s)", ErrUnauthorized, res.Status())
	case res.IsError():
		span.SetStatus(codes.Error, "unexpected status")
		return twitter.LikedTweetsPage{}, fmt.Errorf("liked tweets: unexpected status %s", res.Status())
	}

	page, ok := res.Result().(*twitter.LikedTweetsPage)
	if !ok || page == nil {
		return twitter.LikedTweetsPage{}, fmt.Errorf("liked tweets: could not decode response")
	}
	span.SetAttributes(attribute.Int("result_count", len(page.Data)))
	return *page, nil
}

// LikedTweets walks the liked tweets listing of a user page by page.
// A page that fails to fetch ends pagination and whatever was accumulated so
// far is returned without an error, except for an authentication failure
// which returns ErrUnauthorized.
func (c *Client) LikedTweets(ctx context.Context, userId string) ([]twitter.ExpandedTweet, error) {
	ctx, span := tracer.Start(ctx, "LikedTweets")
	defer span.End()

	var tweets []twitter.ExpandedTweet
	token := ""
	for pageNum := 1; ; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := c.fetchPage(ctx, userId, token)
		if errors.Is(err, ErrUnauthorized) {
			span.RecordError(err)
			return nil, err
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.WarnContext(
				ctx, "failed to fetch liked tweets page, returning partial results",
				"page", pageNum,
				"accumulated", len(tweets),
				"err", err,
			)
			break
		}
		if page.Data == nil {
			break
		}

		tweets = append(tweets, page.Expand()...)
		slog.DebugContext(ctx, "fetched liked tweets page", "page", pageNum, "count", len(page.Data))

		token = page.Meta.NextToken
		if token == "" {
			break
		}
		if c.maxPages > 0 && pageNum >= c.maxPages {
			slog.InfoContext(ctx, "reached page limit", "max_pages", c.maxPages)
			break
		}
	}

	span.SetAttributes(attribute.Int("tweet_count", len(tweets)))
	slog.InfoContext(ctx, "fetched liked tweets", "count", len(tweets))
	return tweets, nil
}
