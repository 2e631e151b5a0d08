// Package types defines the data records exchanged between the submission
// controller, the Reddit client, and the presentation layers.
package types

import (
	"strings"
	"time"
)

const (
	// MaxTitleLength is Reddit's limit for post titles.
	MaxTitleLength = 300
	// MaxBodyLength is Reddit's limit for self-post bodies.
	MaxBodyLength = 40000
)

// Mode selects between simulated and real submission.
type Mode int

const (
	// DryRun performs validation and pacing but never calls the Reddit API.
	DryRun Mode = iota
	// Live submits posts for real.
	Live
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	if m == Live {
		return "live"
	}
	return "dry-run"
}

// PostRecord is one unit of work: a single post to be submitted.
// Records are constructed by the file reader or a UI form and are never
// mutated by the controller. Which of Body, URL, or ImagePath is populated
// determines the effective submission kind; the validator only requires at
// least one of them.
type PostRecord struct {
	// Subreddit is the target subreddit name, without the "r/" prefix.
	Subreddit string `json:"subreddit"`

	// Title of the post. Required, at most MaxTitleLength characters.
	Title string `json:"title"`

	// Body is the self-text content for text posts.
	Body string `json:"content,omitempty"`

	// URL makes this a link post when populated.
	URL string `json:"url,omitempty"`

	// ImagePath is a local file path for image posts.
	ImagePath string `json:"image_path,omitempty"`

	// Flair is an optional free-text category tag. It is resolved against
	// the subreddit's flair templates at submission time.
	Flair string `json:"flair,omitempty"`

	// DelaySeconds overrides the configured inter-post delay for the wait
	// that follows this post. Nil means use the default with jitter.
	DelaySeconds *int `json:"delay,omitempty"`
}

// Kind reports the effective submission kind for the record: "image" if an
// image path is set, "link" if a URL is set, otherwise "self".
func (p *PostRecord) Kind() string {
	switch {
	case strings.TrimSpace(p.ImagePath) != "":
		return "image"
	case strings.TrimSpace(p.URL) != "":
		return "link"
	default:
		return "self"
	}
}

// SubmissionResult is the outcome recorded for one PostRecord. Results are
// created once by the controller and never updated retroactively.
//
// Invariants: if Success is false, Error is non-empty; if Success is true
// and DryRun is false, PostURL is non-empty.
type SubmissionResult struct {
	Subreddit string    `json:"subreddit"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	PostURL   string    `json:"post_url,omitempty"`
	PostID    string    `json:"post_id,omitempty"`
	DryRun    bool      `json:"dry_run"`
}

// Summary aggregates a batch of submission results.
type Summary struct {
	Total       int     `json:"total"`
	Succeeded   int     `json:"succeeded"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"success_rate"`
}

// SubmitReceipt is what the Reddit API returns for a successful submission.
type SubmitReceipt struct {
	// ID is the new post's base36 ID (without the "t3_" prefix).
	ID string
	// Permalink is the site-relative path to the post, e.g.
	// "/r/golang/comments/abc123/my_title/".
	Permalink string
	// URL is the full post URL if the API provided one.
	URL string
}

// FlairTemplate describes one link-flair template offered by a subreddit.
type FlairTemplate struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	ModOnly bool   `json:"mod_only"`
}

// SubredditInfo carries the subset of subreddit metadata the poster needs
// for reachability checks and rule display.
type SubredditInfo struct {
	DisplayName       string  `json:"display_name"`
	Title             string  `json:"title"`
	PublicDescription string  `json:"public_description"`
	Subscribers       int64   `json:"subscribers"`
	SubmissionType    string  `json:"submission_type"`
	AllowImages       bool    `json:"allow_images"`
	Over18            bool    `json:"over18"`
	SubmitTextLabel   *string `json:"submit_text_label"`
	SubmitLinkLabel   *string `json:"submit_link_label"`
}

// AccountInfo identifies the authenticated user.
type AccountInfo struct {
	Name         string `json:"name"`
	LinkKarma    int    `json:"link_karma"`
	CommentKarma int    `json:"comment_karma"`
}
