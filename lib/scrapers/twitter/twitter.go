// Package twitter holds what both liked-feed extractors share: the site and
// api endpoints, the DOM selectors of the rendered feed and the v2 api wire
// types.
package twitter

import "strings"

const (
	WebURL    = "https://twitter.com"
	LikesPath = "/i/likes"
	LoginPath = "/i/flow/login"
	HomePath  = "/home"

	ApiURL = "https://api.twitter.com"
)

const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DOM markers of the rendered feed.
const (
	SelectorTweet         = `article[data-testid="tweet"]`
	SelectorTweetText     = `[data-testid="tweetText"]`
	SelectorUserName      = `[data-testid="User-Name"]`
	SelectorSocialContext = `[data-testid="socialContext"]`
	SelectorStatusLink    = `a[href*="/status/"]`
	SelectorTime          = `time`
	SelectorImage         = `img[src*="media"]`
	SelectorVideo         = `video`
)

// any of these being present means the page belongs to a logged in session
var LoginIndicators = []string{
	`[data-testid="AppTabBar_Home_Link"]`,
	`[data-testid="SideNav_AccountSwitcher_Button"]`,
	`[data-testid="primaryColumn"]`,
	`[aria-label="Home timeline"]`,
}

// cookies set by these domains make up a session
var SessionDomains = []string{"twitter.com", "x.com"}

// IsLoginURL reports whether the browser got redirected to the login flow.
func IsLoginURL(u string) bool {
	return strings.Contains(u, "login")
}

// marks a liked post that is an ad rather than something the user liked
const PromotedMarker = "Promoted"

// normalized social context labels of plain reposts
var RepostMarkers = []string{"retweeted", "reposted"}

// ReferencedRetweet is the referenced_tweets type of a plain repost.
const ReferencedRetweet = "retweeted"

// Permalink builds the canonical status url of a post.
func Permalink(handle, id string) string {
	return WebURL + "/" + handle + "/status/" + id
}

// ProfileURL builds the profile url of a handle.
func ProfileURL(handle string) string {
	return WebURL + "/" + strings.TrimPrefix(handle, "@")
}
