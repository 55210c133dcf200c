package twitter

// Tweet is a post object of the v2 api.
type Tweet struct {
	ID               string            `json:"id"`
	Text             string            `json:"text"`
	AuthorID         string            `json:"author_id"`
	CreatedAt        string            `json:"created_at"`
	Attachments      *Attachments      `json:"attachments,omitempty"`
	ReferencedTweets []ReferencedTweet `json:"referenced_tweets,omitempty"`
}

type Attachments struct {
	MediaKeys []string `json:"media_keys"`
}

type ReferencedTweet struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Media is an attachment, `url` is only set for photos, videos and gifs
// only expose a preview image.
type Media struct {
	MediaKey        string `json:"media_key"`
	Type            string `json:"type"`
	URL             string `json:"url,omitempty"`
	PreviewImageURL string `json:"preview_image_url,omitempty"`
}

const (
	MediaPhoto       = "photo"
	MediaVideo       = "video"
	MediaAnimatedGif = "animated_gif"
)

type Includes struct {
	Users []User  `json:"users"`
	Media []Media `json:"media"`
}

type Meta struct {
	ResultCount int    `json:"result_count"`
	NextToken   string `json:"next_token"`
}

// LikedTweetsPage is one response of GET /2/users/:id/liked_tweets, a nil
// Data means the listing is exhausted.
type LikedTweetsPage struct {
	Data     []Tweet  `json:"data"`
	Includes Includes `json:"includes"`
	Meta     Meta     `json:"meta"`
}

// ExpandedTweet is a tweet with its author and media references resolved
// against the includes of the page it came from.
type ExpandedTweet struct {
	Tweet  Tweet
	Author *User
	Media  []Media
}

// Expand resolves the author and attachment references of every tweet on
// the page, unresolvable references are left out.
func (p LikedTweetsPage) Expand() []ExpandedTweet {
	users := make(map[string]User, len(p.Includes.Users))
	for _, u := range p.Includes.Users {
		users[u.ID] = u
	}
	media := make(map[string]Media, len(p.Includes.Media))
	for _, m := range p.Includes.Media {
		media[m.MediaKey] = m
	}

	expanded := make([]ExpandedTweet, 0, len(p.Data))
	for _, tweet := range p.Data {
		e := ExpandedTweet{Tweet: tweet}
		if u, ok := users[tweet.AuthorID]; ok {
			e.Author = &u
		}
		if tweet.Attachments != nil {
			for _, key := range tweet.Attachments.MediaKeys {
				if m, ok := media[key]; ok {
					e.Media = append(e.Media, m)
				}
			}
		}
		expanded = append(expanded, e)
	}
	return expanded
}
