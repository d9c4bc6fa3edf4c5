package domain

import "fmt"

// TweetID is the platform-assigned numeric ID of a post.
type TweetID string

// String returns the string representation of the TweetID.
func (id TweetID) String() string {
	return string(id)
}

// FetchRequest describes one video fetch, created per command invocation.
type FetchRequest struct {
	URL string
}

// Video is the result of a successful fetch: the downloaded file plus the
// metadata yt-dlp reported for the post. String fields may be empty but are
// always present.
type Video struct {
	Path        string
	Title       string
	Thumbnail   string
	Author      string
	Handle      string
	Description string
	UploadDate  string
}

// Summary is the user-visible digest of a relayed video, rendered by the
// command surface as a rich embed next to the uploaded file.
type Summary struct {
	Description string
	AuthorName  string
	Handle      string
	AvatarURL   string
	Footer      string
	SizeBytes   int64
}

// AuthorLine formats the embed author as "Name (@handle)", dropping the
// handle part when it is unknown.
func (s Summary) AuthorLine() string {
	if s.Handle != "" {
		return fmt.Sprintf("%s (@%s)", s.AuthorName, s.Handle)
	}
	return s.AuthorName
}
