package poster

import (
	"testing"

	"github.com/jamesprial/go-reddit-poster/pkg/types"
)

func TestResolveFlair(t *testing.T) {
	templates := []types.FlairTemplate{
		{ID: "id-disc", Text: "Discussion"},
		{ID: "id-help", Text: "Help Wanted"},
		{ID: "id-news", Text: "News"},
	}

	tests := []struct {
		name     string
		flair    string
		wantID   string
		wantText string
	}{
		{name: "exact match", flair: "Discussion", wantID: "id-disc"},
		{name: "exact match case insensitive", flair: "dIsCuSsIoN", wantID: "id-disc"},
		{name: "substring match", flair: "help", wantID: "id-help"},
		{name: "exact beats substring", flair: "news", wantID: "id-news"},
		{name: "no match falls back to raw text", flair: "Showcase", wantText: "Showcase"},
		{name: "fallback trims whitespace", flair: "  Showcase  ", wantText: "Showcase"},
		{name: "empty flair", flair: ""},
		{name: "whitespace only flair", flair: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotText := resolveFlair(templates, tt.flair)
			if gotID != tt.wantID {
				t.Errorf("flairID = %q, want %q", gotID, tt.wantID)
			}
			if gotText != tt.wantText {
				t.Errorf("flairText = %q, want %q", gotText, tt.wantText)
			}
		})
	}
}

func TestResolveFlairNoTemplates(t *testing.T) {
	gotID, gotText := resolveFlair(nil, "Discussion")
	if gotID != "" {
		t.Errorf("flairID = %q, want empty", gotID)
	}
	if gotText != "Discussion" {
		t.Errorf("flairText = %q, want raw text", gotText)
	}
}
