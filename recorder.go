package poster

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jamesprial/go-reddit-poster/pkg/types"
)

const resultsTimestampLayout = "20060102_150405"

// Summarize aggregates a batch of results. SuccessRate is a percentage in
// [0, 100]; an empty batch summarizes to all zeros.
func Summarize(results []types.SubmissionResult) types.Summary {
	s := types.Summary{Total: len(results)}
	for _, r := range results {
		if r.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Succeeded) / float64(s.Total) * 100
	}
	return s
}

// Recorder persists batch results to timestamped JSON files.
type Recorder struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewRecorder writes result files into dir; an empty dir means the current
// working directory.
func NewRecorder(dir string, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Recorder{dir: dir, logger: logger, now: time.Now}
}

// Persist writes the results losslessly to posting_results_<timestamp>.json
// and returns the path. Each call writes a fresh file; nothing is
// overwritten.
func (r *Recorder) Persist(results []types.SubmissionResult) (string, error) {
	name := fmt.Sprintf("posting_results_%s.json", r.now().Format(resultsTimestampLayout))
	path := filepath.Join(r.dir, name)

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode results: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write results file: %w", err)
	}

	r.logger.Info("results saved", "path", path, "count", len(results))
	return path, nil
}
