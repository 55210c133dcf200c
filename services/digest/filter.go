package digest

import "time"

// FilterSince keeps posts created at or after since. Posts without a
// timestamp are kept.
func FilterSince(posts []Post, since time.Time) []Post {
	var out []Post
	for _, p := range posts {
		if p.CreatedAt == nil || !p.CreatedAt.In(since.Location()).Before(since) {
			out = append(out, p)
		}
	}
	return out
}

// FilterWindow keeps posts created inside the window, both ends inclusive.
// Posts without a timestamp cannot be placed and are dropped.
func FilterWindow(posts []Post, window Window) []Post {
	var out []Post
	for _, p := range posts {
		if p.CreatedAt == nil {
			continue
		}
		if window.Contains(p.CreatedAt.In(window.Start.Location())) {
			out = append(out, p)
		}
	}
	return out
}
