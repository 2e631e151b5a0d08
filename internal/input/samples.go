package input

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jamesprial/go-reddit-poster/pkg/types"
)

// WriteSamples writes example JSON and CSV batch files into dir, creating
// it if necessary. It returns the paths of the files written.
func WriteSamples(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	delay90 := 90
	delay120 := 120
	samplePosts := []*types.PostRecord{
		{
			Subreddit:    "test",
			Title:        "My First Automated Post",
			Body:         "This is a test post created using go-reddit-poster. Please ignore.",
			Flair:        "Test",
			DelaySeconds: &delay90,
		},
		{
			Subreddit:    "test",
			Title:        "Another Test Post",
			Body:         "This is another test post. The tool supports multiple posts with different delays.",
			DelaySeconds: &delay120,
		},
	}

	jsonPath := filepath.Join(dir, "sample_posts.json")
	data, err := json.MarshalIndent(samplePosts, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return nil, err
	}

	csvPath := filepath.Join(dir, "sample_posts.csv")
	csvContent := "subreddit,title,content,flair,delay\n" +
		"test,\"CSV Test Post 1\",\"This post was created from a CSV file.\",Test,90\n" +
		"test,\"CSV Test Post 2\",\"Another CSV post with different timing.\",Discussion,120\n"
	if err := os.WriteFile(csvPath, []byte(csvContent), 0o644); err != nil {
		return nil, err
	}

	return []string{jsonPath, csvPath}, nil
}
