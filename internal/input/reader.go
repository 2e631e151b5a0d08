// Package input parses batch files into post records and writes the sample
// files shipped with the tool. JSON (array of objects) and CSV (header row
// plus rows) are supported.
package input

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	pkgerrs "github.com/jamesprial/go-reddit-poster/pkg/errors"
	"github.com/jamesprial/go-reddit-poster/pkg/types"
)

// ReadFile parses a batch file, dispatching on the file extension.
func ReadFile(path string) ([]*types.PostRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(path)
	case ".csv":
		return ReadCSV(path)
	default:
		return nil, &pkgerrs.ParseError{Path: path, Message: "unsupported file format, use JSON or CSV"}
	}
}

// ReadJSON parses a JSON batch file. The file may hold either an array of
// post objects or a single object, which is treated as a one-element batch.
func ReadJSON(path string) ([]*types.PostRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &pkgerrs.ParseError{Path: path, Err: err}
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var single types.PostRecord
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, &pkgerrs.ParseError{Path: path, Err: err}
		}
		return []*types.PostRecord{&single}, nil
	}

	var posts []*types.PostRecord
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, &pkgerrs.ParseError{Path: path, Err: err}
	}
	return posts, nil
}

// ReadCSV parses a CSV batch file. The first row is a header naming any of
// the columns subreddit, title, content, url, image_path, flair, delay, in
// any order. Content that looks like a URL is moved to the URL field so
// link posts can be expressed in a plain content column. Delay values that
// fail to parse are dropped, falling back to the configured default.
func ReadCSV(path string) ([]*types.PostRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &pkgerrs.ParseError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &pkgerrs.ParseError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, &pkgerrs.ParseError{Path: path, Message: "file is empty"}
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	posts := make([]*types.PostRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		post := &types.PostRecord{
			Subreddit: field(row, "subreddit"),
			Title:     field(row, "title"),
			Body:      field(row, "content"),
			URL:       field(row, "url"),
			ImagePath: field(row, "image_path"),
			Flair:     field(row, "flair"),
		}

		// A URL in the content column means a link post.
		if post.URL == "" && looksLikeURL(post.Body) {
			post.URL = post.Body
			post.Body = ""
		}

		if raw := field(row, "delay"); raw != "" {
			if delay, err := strconv.ParseFloat(raw, 64); err == nil && delay > 0 {
				d := int(delay)
				post.DelaySeconds = &d
			}
		}

		posts = append(posts, post)
	}

	return posts, nil
}

func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
