// Package textutil compares short ui labels that only differ in case and
// spacing, like the social context line above a reposted tweet.
package textutil

import (
	"regexp"
	"strings"
)

var spaceRegex = regexp.MustCompile(`\s+`)

// Fold lower-cases a label and drops its whitespace.
func Fold(label string) string {
	return spaceRegex.ReplaceAllString(strings.ToLower(label), "")
}

// ContainsAny reports whether the folded label contains any folded marker.
// Empty markers never match.
func ContainsAny(label string, markers ...string) bool {
	folded := Fold(label)
	for _, m := range markers {
		m = Fold(m)
		if m != "" && strings.Contains(folded, m) {
			return true
		}
	}
	return false
}
