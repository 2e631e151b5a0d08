package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrs "github.com/jamesprial/go-reddit-poster/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestReadJSONArray(t *testing.T) {
	path := writeFile(t, "posts.json", `[
		{"subreddit": "test", "title": "First", "content": "Hello", "flair": "Discussion", "delay": 90},
		{"subreddit": "golang", "title": "Second", "url": "https://example.com"}
	]`)

	posts, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON() = %v, want nil", err)
	}
	if len(posts) != 2 {
		t.Fatalf("len(posts) = %d, want 2", len(posts))
	}

	first := posts[0]
	if first.Subreddit != "test" || first.Title != "First" || first.Body != "Hello" {
		t.Errorf("first post = %+v", first)
	}
	if first.Flair != "Discussion" {
		t.Errorf("Flair = %q, want Discussion", first.Flair)
	}
	if first.DelaySeconds == nil || *first.DelaySeconds != 90 {
		t.Errorf("DelaySeconds = %v, want 90", first.DelaySeconds)
	}

	second := posts[1]
	if second.URL != "https://example.com" {
		t.Errorf("URL = %q", second.URL)
	}
	if second.DelaySeconds != nil {
		t.Errorf("DelaySeconds = %v, want nil", second.DelaySeconds)
	}
}

func TestReadJSONSingleObject(t *testing.T) {
	path := writeFile(t, "one.json", `{"subreddit": "test", "title": "Solo", "content": "x"}`)

	posts, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON() = %v, want nil", err)
	}
	if len(posts) != 1 || posts[0].Title != "Solo" {
		t.Errorf("posts = %+v, want one post titled Solo", posts)
	}
}

func TestReadJSONMalformed(t *testing.T) {
	path := writeFile(t, "bad.json", `[{"subreddit": `)

	_, err := ReadJSON(path)
	if err == nil {
		t.Fatal("ReadJSON() = nil, want parse error")
	}
	if _, ok := err.(*pkgerrs.ParseError); !ok {
		t.Errorf("error type = %T, want *errors.ParseError", err)
	}
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "posts.csv",
		"subreddit,title,content,flair,delay\n"+
			"test,\"Post One\",\"Some body text\",Discussion,90\n"+
			"golang,\"Post Two\",https://example.com/article,,120\n"+
			"test,\"Post Three\",\"No delay here\",,notanumber\n")

	posts, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV() = %v, want nil", err)
	}
	if len(posts) != 3 {
		t.Fatalf("len(posts) = %d, want 3", len(posts))
	}

	if posts[0].Body != "Some body text" || posts[0].URL != "" {
		t.Errorf("posts[0] = %+v, want plain text post", posts[0])
	}
	if posts[0].DelaySeconds == nil || *posts[0].DelaySeconds != 90 {
		t.Errorf("posts[0].DelaySeconds = %v, want 90", posts[0].DelaySeconds)
	}

	// URL-looking content migrates to the URL field.
	if posts[1].URL != "https://example.com/article" {
		t.Errorf("posts[1].URL = %q, want the migrated URL", posts[1].URL)
	}
	if posts[1].Body != "" {
		t.Errorf("posts[1].Body = %q, want empty after URL migration", posts[1].Body)
	}

	// Unparseable delay falls back to the default (nil).
	if posts[2].DelaySeconds != nil {
		t.Errorf("posts[2].DelaySeconds = %v, want nil", posts[2].DelaySeconds)
	}
}

func TestReadCSVFractionalDelay(t *testing.T) {
	path := writeFile(t, "posts.csv",
		"subreddit,title,content,delay\n"+
			"test,\"Post\",\"body\",90.5\n")

	posts, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV() = %v", err)
	}
	if posts[0].DelaySeconds == nil || *posts[0].DelaySeconds != 90 {
		t.Errorf("DelaySeconds = %v, want truncated 90", posts[0].DelaySeconds)
	}
}

func TestReadFileDispatch(t *testing.T) {
	jsonPath := writeFile(t, "p.json", `[{"subreddit":"test","title":"T","content":"b"}]`)
	if _, err := ReadFile(jsonPath); err != nil {
		t.Errorf("ReadFile(json) = %v", err)
	}

	txtPath := writeFile(t, "p.txt", "hello")
	if _, err := ReadFile(txtPath); err == nil {
		t.Error("ReadFile(txt) = nil, want unsupported-format error")
	} else if !strings.Contains(err.Error(), "unsupported file format") {
		t.Errorf("ReadFile(txt) = %q", err.Error())
	}
}

func TestWriteSamples(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "examples")

	paths, err := WriteSamples(dir)
	if err != nil {
		t.Fatalf("WriteSamples() = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("len(paths) = %d, want 2", len(paths))
	}

	// Both samples must round-trip through the readers.
	for _, p := range paths {
		posts, err := ReadFile(p)
		if err != nil {
			t.Errorf("ReadFile(%s) = %v", p, err)
			continue
		}
		if len(posts) != 2 {
			t.Errorf("ReadFile(%s) returned %d posts, want 2", p, len(posts))
		}
	}
}
