package digest

// Dedup drops every post whose id was already seen, keeping the first
// occurrence and the original order.
func Dedup(posts []Post) []Post {
	seen := make(map[string]struct{}, len(posts))
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
