// Package validation checks post records before submission.
//
// Validation is pure except for the attachment existence check, which
// stats the local filesystem. The same record always yields the same
// verdict. Rules run in a fixed order and the first failure wins.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	pkgerrs "github.com/jamesprial/go-reddit-poster/pkg/errors"
	"github.com/jamesprial/go-reddit-poster/pkg/types"
)

// subredditRegex matches valid target subreddit names (alphanumeric plus
// underscore/hyphen only).
var subredditRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// DefaultImageExtensions is the supported image-format set for attachment
// posts.
var DefaultImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Validator validates post records. The zero value is not usable; use New.
type Validator struct {
	imageExtensions map[string]bool
}

// New creates a Validator. If extensions is empty, DefaultImageExtensions
// is used.
func New(extensions []string) *Validator {
	if len(extensions) == 0 {
		extensions = DefaultImageExtensions
	}
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = true
	}
	return &Validator{imageExtensions: set}
}

// ValidatePost checks that a post record is well-formed. It returns nil if
// the record is valid, or a *errors.ValidationError describing the first
// rule that failed.
//
// Rules, in order:
//  1. subreddit non-empty
//  2. title non-empty
//  3. at least one of body, URL, or image path non-empty after trimming
//  4. image path, if given, exists and has a supported extension
//  5. title within the length limit
//  6. body within the length limit
//  7. subreddit matches the allowed name format
func (v *Validator) ValidatePost(post *types.PostRecord) error {
	if post == nil {
		return &pkgerrs.ValidationError{Message: "post is nil"}
	}

	if strings.TrimSpace(post.Subreddit) == "" {
		return &pkgerrs.ValidationError{Field: "subreddit", Message: "missing required field"}
	}

	if strings.TrimSpace(post.Title) == "" {
		return &pkgerrs.ValidationError{Field: "title", Message: "missing required field"}
	}

	hasBody := strings.TrimSpace(post.Body) != ""
	hasURL := strings.TrimSpace(post.URL) != ""
	hasImage := strings.TrimSpace(post.ImagePath) != ""

	if !hasBody && !hasURL && !hasImage {
		return &pkgerrs.ValidationError{Message: "either content, url, or image_path must be provided"}
	}

	if hasImage {
		imagePath := strings.TrimSpace(post.ImagePath)
		if _, err := os.Stat(imagePath); err != nil {
			return &pkgerrs.ValidationError{Field: "image_path", Message: fmt.Sprintf("image file not found: %s", imagePath)}
		}
		ext := strings.ToLower(filepath.Ext(imagePath))
		if !v.imageExtensions[ext] {
			return &pkgerrs.ValidationError{Field: "image_path", Message: fmt.Sprintf("unsupported image format %q (supported: %s)", ext, strings.Join(v.sortedExtensions(), ", "))}
		}
	}

	if len(post.Title) > types.MaxTitleLength {
		return &pkgerrs.ValidationError{Field: "title", Message: fmt.Sprintf("too long (max %d characters)", types.MaxTitleLength)}
	}

	// The body limit applies regardless of whether the body drives the
	// submission; an empty body trivially passes.
	if len(post.Body) > types.MaxBodyLength {
		return &pkgerrs.ValidationError{Field: "content", Message: fmt.Sprintf("too long (max %d characters)", types.MaxBodyLength)}
	}

	if !subredditRegex.MatchString(strings.TrimSpace(post.Subreddit)) {
		return &pkgerrs.ValidationError{Field: "subreddit", Message: "invalid subreddit name format"}
	}

	return nil
}

func (v *Validator) sortedExtensions() []string {
	// DefaultImageExtensions order when defaults are in use; otherwise
	// map order is fine for an error message.
	out := make([]string, 0, len(v.imageExtensions))
	for _, ext := range DefaultImageExtensions {
		if v.imageExtensions[ext] {
			out = append(out, ext)
		}
	}
	for ext := range v.imageExtensions {
		if !contains(out, ext) {
			out = append(out, ext)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
