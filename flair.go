package poster

import (
	"strings"

	"github.com/jamesprial/go-reddit-poster/pkg/types"
)

// resolveFlair maps a free-text flair to a template ID. Matching is case
// insensitive: an exact text match wins, then the first template whose
// text contains the requested flair. When nothing matches, the raw text is
// returned for submission as flair_text, which subreddits allowing
// user-defined flair will accept.
func resolveFlair(templates []types.FlairTemplate, flair string) (flairID, flairText string) {
	want := strings.ToLower(strings.TrimSpace(flair))
	if want == "" {
		return "", ""
	}

	for _, t := range templates {
		if strings.ToLower(t.Text) == want {
			return t.ID, ""
		}
	}

	for _, t := range templates {
		if strings.Contains(strings.ToLower(t.Text), want) {
			return t.ID, ""
		}
	}

	return "", strings.TrimSpace(flair)
}
