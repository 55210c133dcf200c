package digest

import (
	"likedigest/lib/scrapers/twitter"

	"github.com/PuerkitoBio/goquery"
)

// Record is one raw item from an extractor, it is either a DOMRecord or an
// APIRecord.
type Record interface {
	isRecord()
}

// DOMRecord is a tweet container of the rendered likes feed.
type DOMRecord struct {
	Selection *goquery.Selection
}

// APIRecord is a liked tweet from the api with its includes resolved.
type APIRecord struct {
	Tweet twitter.ExpandedTweet
}

func (DOMRecord) isRecord() {}
func (APIRecord) isRecord() {}

func DOMRecords(selections []*goquery.Selection) []Record {
	records := make([]Record, len(selections))
	for i, s := range selections {
		records[i] = DOMRecord{Selection: s}
	}
	return records
}

func APIRecords(tweets []twitter.ExpandedTweet) []Record {
	records := make([]Record, len(tweets))
	for i, t := range tweets {
		records[i] = APIRecord{Tweet: t}
	}
	return records
}
