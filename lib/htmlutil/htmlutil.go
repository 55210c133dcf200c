package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// GetText returns the text content of a node, images contribute their alt
// text so that emoji rendered as <img alt="..."> survive extraction.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	switch {
	case node.Type == html.TextNode:
		buffer.WriteString(node.Data)
		return
	case node.Type == html.ElementNode && node.DataAtom == atom.Img:
		for _, a := range node.Attr {
			if a.Key == "alt" {
				buffer.WriteString(a.Val)
				break
			}
		}
		return
	case node.Type == html.ElementNode && node.DataAtom == atom.Br:
		buffer.WriteByte('\n')
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// SelectionText is GetText over every node of a selection.
func SelectionText(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, n := range sel.Nodes {
		getTextRecursive(n, &buffer)
	}
	return buffer.String()
}

var innerWhitespace = regexp.MustCompile(`[^\S\n]+`)
var blankLines = regexp.MustCompile(`\n{3,}`)

func removeInvisible(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if c == '\n' || unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// NormalizeText removes capture artifacts from scraped text: carriage
// returns, non-breaking and zero-width characters, runs of horizontal
// whitespace and surrounding blank space. Line breaks are kept.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = removeInvisible(s)
	s = innerWhitespace.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = strings.Join(lines, "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// AbsoluteURL resolves href against base, it returns "" if either fails
// to parse or href is empty.
func AbsoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	baseUrl, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return baseUrl.ResolveReference(ref).String()
}
