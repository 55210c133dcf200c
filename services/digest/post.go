package digest

import "time"

const (
	UnknownHandle      = "unknown"
	UnknownDisplayName = "Unknown User"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Media is an attachment of a post, videos only carry their preview image.
type Media struct {
	Type MediaType
	URL  string
}

type Author struct {
	// without the leading @
	Handle      string
	DisplayName string
}

// Post is a liked post in the shape every later stage works with.
type Post struct {
	// platform id, the dedup key
	ID     string
	Text   string
	Author Author
	// nil if the source had no timestamp at all
	CreatedAt *time.Time
	// absolute permalink, empty when unresolvable
	URL   string
	Media []Media
}
