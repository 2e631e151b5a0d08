package poster

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jamesprial/go-reddit-poster/pkg/types"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		results []types.SubmissionResult
		want    types.Summary
	}{
		{
			name: "empty batch",
			want: types.Summary{},
		},
		{
			name: "all succeeded",
			results: []types.SubmissionResult{
				{Success: true},
				{Success: true},
			},
			want: types.Summary{Total: 2, Succeeded: 2, SuccessRate: 100},
		},
		{
			name: "mixed",
			results: []types.SubmissionResult{
				{Success: true},
				{Success: false, Error: "validation failed"},
				{Success: true},
				{Success: false, Error: "submit error"},
			},
			want: types.Summary{Total: 4, Succeeded: 2, Failed: 2, SuccessRate: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.results); got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRecorderPersist(t *testing.T) {
	dir := t.TempDir()
	rec := NewRecorder(dir, nil)
	rec.now = func() time.Time {
		return time.Date(2026, 8, 28, 14, 30, 5, 0, time.UTC)
	}

	results := []types.SubmissionResult{
		{
			Subreddit: "golang",
			Title:     "My Post",
			Timestamp: time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC),
			Success:   true,
			PostURL:   "https://www.reddit.com/r/golang/comments/abc123/",
			PostID:    "abc123",
		},
		{
			Subreddit: "golang",
			Title:     "Bad Post",
			Success:   false,
			Error:     "validation failed for title: title is required",
		},
	}

	path, err := rec.Persist(results)
	if err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	if got := filepath.Base(path); got != "posting_results_20260828_143005.json" {
		t.Errorf("file name = %q", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read results file: %v", err)
	}

	var loaded []types.SubmissionResult
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("results file is not valid JSON: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("len(loaded) = %d, want 2", len(loaded))
	}
	if loaded[0].PostID != "abc123" || !loaded[0].Success {
		t.Errorf("first result round-trip mismatch: %+v", loaded[0])
	}
	if loaded[1].Error == "" {
		t.Error("failure reason should survive the round trip")
	}
}

func TestRecorderPersistEmptyBatch(t *testing.T) {
	rec := NewRecorder(t.TempDir(), nil)
	path, err := rec.Persist(nil)
	if err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read results file: %v", err)
	}
	if string(data) != "null" {
		// An empty batch still writes a parseable file.
		var loaded []types.SubmissionResult
		if err := json.Unmarshal(data, &loaded); err != nil {
			t.Fatalf("results file is not valid JSON: %v", err)
		}
	}
}
