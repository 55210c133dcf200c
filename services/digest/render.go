package digest

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"likedigest/lib/scrapers/twitter"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var digestTemplate = template.Must(template.ParseFS(templateFS, "templates/digest.html.tmpl"))

const likedTimeLayout = "January 02, 2006 at 03:04 PM"

// Digest is a rendered email.
type Digest struct {
	Subject string
	HTML    string
}

type mediaView struct {
	URL string
	Alt string
}

type postView struct {
	Text        string
	Handle      string
	DisplayName string
	ProfileURL  string
	URL         string
	Liked       string
	Media       []mediaView
}

type digestView struct {
	Title string
	Posts []postView
}

type Renderer struct {
	Location *time.Location
}

func (r Renderer) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

func (r Renderer) view(p Post) postView {
	liked := "unknown time"
	if p.CreatedAt != nil {
		liked = p.CreatedAt.In(r.location()).Format(likedTimeLayout)
	}
	media := make([]mediaView, len(p.Media))
	for i, m := range p.Media {
		alt := "Tweet media"
		if m.Type == MediaVideo {
			alt = "Media preview"
		}
		media[i] = mediaView{URL: m.URL, Alt: alt}
	}
	return postView{
		Text:        p.Text,
		Handle:      p.Author.Handle,
		DisplayName: p.Author.DisplayName,
		ProfileURL:  twitter.ProfileURL(p.Author.Handle),
		URL:         p.URL,
		Liked:       liked,
		Media:       media,
	}
}

// Render formats posts in the order given. now only decides the subject line.
func (r Renderer) Render(ctx context.Context, posts []Post, tf Timeframe, now time.Time) (Digest, error) {
	_, span := tracer.Start(ctx, "Render")
	defer span.End()
	span.SetAttributes(
		attribute.String("timeframe", string(tf)),
		attribute.Int("post_count", len(posts)),
	)

	view := digestView{
		Title: tf.Title(),
		Posts: make([]postView, len(posts)),
	}
	for i, p := range posts {
		view.Posts[i] = r.view(p)
	}

	var buf bytes.Buffer
	err := digestTemplate.Execute(&buf, view)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to execute template")
		return Digest{}, err
	}
	return Digest{
		Subject: tf.Subject(now.In(r.location())),
		HTML:    buf.String(),
	}, nil
}
