package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrs "github.com/jamesprial/go-reddit-poster/pkg/errors"
	"github.com/jamesprial/go-reddit-poster/pkg/types"
)

// writeTempImage creates a file with the given name in a temp dir and
// returns its full path.
func writeTempImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("not really an image"), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestValidatePost(t *testing.T) {
	v := New(nil)
	imagePath := writeTempImage(t, "cat.png")
	badExtPath := writeTempImage(t, "cat.tiff")

	tests := []struct {
		name    string
		post    *types.PostRecord
		wantErr string // substring of the expected error, empty for valid
	}{
		{
			name:    "nil post",
			post:    nil,
			wantErr: "post is nil",
		},
		{
			name:    "missing subreddit",
			post:    &types.PostRecord{Title: "Hello", Body: "World"},
			wantErr: "subreddit",
		},
		{
			name:    "whitespace subreddit",
			post:    &types.PostRecord{Subreddit: "   ", Title: "Hello", Body: "World"},
			wantErr: "subreddit",
		},
		{
			name:    "missing title",
			post:    &types.PostRecord{Subreddit: "test", Body: "World"},
			wantErr: "title",
		},
		{
			name:    "no content at all",
			post:    &types.PostRecord{Subreddit: "test", Title: "Hello"},
			wantErr: "either content, url, or image_path",
		},
		{
			name:    "whitespace-only content does not count",
			post:    &types.PostRecord{Subreddit: "test", Title: "Hello", Body: "   "},
			wantErr: "either content, url, or image_path",
		},
		{
			name: "valid text post",
			post: &types.PostRecord{Subreddit: "test", Title: "Hello", Body: "World"},
		},
		{
			name: "valid link post",
			post: &types.PostRecord{Subreddit: "test", Title: "Hello", URL: "https://example.com"},
		},
		{
			name: "valid image post",
			post: &types.PostRecord{Subreddit: "test", Title: "Hello", ImagePath: imagePath},
		},
		{
			name:    "image file missing",
			post:    &types.PostRecord{Subreddit: "test", Title: "Hello", ImagePath: filepath.Join(t.TempDir(), "nope.png")},
			wantErr: "image file not found",
		},
		{
			name:    "unsupported image extension",
			post:    &types.PostRecord{Subreddit: "test", Title: "Hello", ImagePath: badExtPath},
			wantErr: "unsupported image format",
		},
		{
			name:    "title too long",
			post:    &types.PostRecord{Subreddit: "test", Title: strings.Repeat("a", types.MaxTitleLength+1), Body: "x"},
			wantErr: "too long",
		},
		{
			name: "title at exactly the limit",
			post: &types.PostRecord{Subreddit: "test", Title: strings.Repeat("a", types.MaxTitleLength), Body: "x"},
		},
		{
			name:    "body too long",
			post:    &types.PostRecord{Subreddit: "test", Title: "Hello", Body: strings.Repeat("b", types.MaxBodyLength+1)},
			wantErr: "too long",
		},
		{
			name: "long body within limit when URL drives the post",
			post: &types.PostRecord{Subreddit: "test", Title: "Hello", URL: "https://example.com", Body: strings.Repeat("b", types.MaxBodyLength)},
		},
		{
			name:    "body over the limit fails even for a link post",
			post:    &types.PostRecord{Subreddit: "test", Title: "Hello", URL: "https://example.com", Body: strings.Repeat("b", types.MaxBodyLength+1)},
			wantErr: "too long",
		},
		{
			name:    "subreddit with spaces",
			post:    &types.PostRecord{Subreddit: "my subreddit", Title: "Hello", Body: "World"},
			wantErr: "invalid subreddit name format",
		},
		{
			name:    "subreddit with slash",
			post:    &types.PostRecord{Subreddit: "r/test", Title: "Hello", Body: "World"},
			wantErr: "invalid subreddit name format",
		},
		{
			name: "subreddit with underscore and hyphen",
			post: &types.PostRecord{Subreddit: "go_lang-jobs", Title: "Hello", Body: "World"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePost(tt.post)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidatePost() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidatePost() = nil, want error containing %q", tt.wantErr)
			}
			if _, ok := err.(*pkgerrs.ValidationError); !ok {
				t.Errorf("ValidatePost() error type = %T, want *errors.ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidatePost() = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// Validation must be idempotent: the same record yields the same verdict.
func TestValidatePostIdempotent(t *testing.T) {
	v := New(nil)
	post := &types.PostRecord{Subreddit: "test", Title: "Hello", Body: "World"}

	for i := 0; i < 3; i++ {
		if err := v.ValidatePost(post); err != nil {
			t.Fatalf("pass %d: ValidatePost() = %v, want nil", i, err)
		}
	}

	bad := &types.PostRecord{Subreddit: "test"}
	first := v.ValidatePost(bad)
	second := v.ValidatePost(bad)
	if first == nil || second == nil {
		t.Fatal("expected errors for invalid record")
	}
	if first.Error() != second.Error() {
		t.Errorf("verdict changed between passes: %q vs %q", first.Error(), second.Error())
	}
}

func TestRuleOrderFirstFailureWins(t *testing.T) {
	v := New(nil)

	// Record violating both the title rule (missing) and the subreddit
	// format rule; the earlier rule must win.
	post := &types.PostRecord{Subreddit: "bad name!", Body: "content"}
	err := v.ValidatePost(post)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "title") {
		t.Errorf("expected the title rule to fire first, got %q", err.Error())
	}
}

func TestCustomImageExtensions(t *testing.T) {
	v := New([]string{".bmp"})
	path := writeTempImage(t, "pic.bmp")

	post := &types.PostRecord{Subreddit: "test", Title: "Hello", ImagePath: path}
	if err := v.ValidatePost(post); err != nil {
		t.Fatalf("ValidatePost() = %v, want nil for configured extension", err)
	}

	pngPath := writeTempImage(t, "pic.png")
	post = &types.PostRecord{Subreddit: "test", Title: "Hello", ImagePath: pngPath}
	if err := v.ValidatePost(post); err == nil {
		t.Fatal("ValidatePost() = nil, want error for extension outside configured set")
	}
}
