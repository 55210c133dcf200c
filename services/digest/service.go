package digest

import (
	"context"
	"fmt"
	"likedigest/lib/timezone"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Mailer interface {
	Send(ctx context.Context, subject, htmlBody string) error
}

type Service struct {
	source     Source
	mailer     Mailer
	clock      timezone.Clock
	normalizer Normalizer
	renderer   Renderer
}

// NewService creates a digest service, mailer may be nil if Run is never
// called.
func NewService(source Source, mailer Mailer, clock timezone.Clock) Service {
	return Service{
		source:     source,
		mailer:     mailer,
		clock:      clock,
		normalizer: Normalizer{Clock: clock},
		renderer:   Renderer{Location: clock.Location()},
	}
}

func (s Service) now() time.Time {
	return s.clock.Now().In(s.clock.Location())
}

func (s Service) collect(ctx context.Context) ([]Post, error) {
	records, err := s.source.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch liked posts (%s): %w", s.source.Name(), err)
	}
	slog.InfoContext(ctx, "fetched records", "source", s.source.Name(), "count", len(records))
	posts, _ := s.normalizer.NormalizeAll(ctx, records)
	return posts, nil
}

// Build fetches, filters and renders the digest of a timeframe without
// sending it.
func (s Service) Build(ctx context.Context, tf Timeframe) (Digest, []Post, error) {
	ctx, span := tracer.Start(ctx, "Build")
	defer span.End()
	span.SetAttributes(attribute.String("timeframe", string(tf)))

	now := s.now()
	posts, err := s.collect(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to collect posts")
		return Digest{}, nil, err
	}

	posts = s.source.Prefilter(posts, tf.FetchWindow(now))
	boundary := tf.Boundary(now)
	posts = FilterWindow(posts, boundary)
	posts = Dedup(posts)
	slog.InfoContext(
		ctx, "selected posts for digest",
		"timeframe", string(tf),
		"start", boundary.Start,
		"end", boundary.End,
		"count", len(posts),
	)

	digest, err := s.renderer.Render(ctx, posts, tf, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to render")
		return Digest{}, nil, err
	}
	return digest, posts, nil
}

// Run builds the digest of a timeframe and mails it.
func (s Service) Run(ctx context.Context, tf Timeframe) (Digest, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	digest, _, err := s.Build(ctx, tf)
	if err != nil {
		return Digest{}, err
	}
	if err := ctx.Err(); err != nil {
		return Digest{}, err
	}
	if s.mailer == nil {
		return Digest{}, fmt.Errorf("no mailer configured")
	}

	err = s.mailer.Send(ctx, digest.Subject, digest.HTML)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send digest")
		slog.ErrorContext(ctx, "failed to send digest", "subject", digest.Subject, "err", err)
		return Digest{}, fmt.Errorf("send digest: %w", err)
	}
	slog.InfoContext(ctx, "sent digest", "subject", digest.Subject)
	return digest, nil
}

// Scrape returns the deduplicated posts liked in the last hours hours,
// hours <= 0 keeps everything.
func (s Service) Scrape(ctx context.Context, hours int) ([]Post, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	posts, err := s.collect(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to collect posts")
		return nil, err
	}
	if hours > 0 {
		posts = FilterSince(posts, s.now().Add(-time.Duration(hours)*time.Hour))
		slog.InfoContext(ctx, "filtered to recent posts", "hours", hours, "count", len(posts))
	}
	return Dedup(posts), nil
}
