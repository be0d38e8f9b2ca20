// Package audit writes an append-only, newline-delimited JSON log of every
// event in a translation run, for reproducibility and offline analysis.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Logger appends structured events to a single run's `.jsonl` file, opening
// and closing the file on every write so a crash mid-run never corrupts
// events already flushed to disk.
//
// Not safe for concurrent use without external locking — the pipeline
// serializes writes per run.
type Logger struct {
	RunID   string
	logPath string
}

// New creates a Logger for a fresh run under outputDir, writing the initial
// run_start event immediately. outputDir is created if it does not exist.
func New(outputDir string) (*Logger, error) {
	return NewWithRunID(outputDir, generateRunID())
}

// NewWithRunID creates a Logger for a caller-supplied run id, useful for
// resuming or for deterministic test fixtures.
func NewWithRunID(outputDir, runID string) (*Logger, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("audit: failed to create output dir %s: %w", outputDir, err)
	}

	l := &Logger{
		RunID:   runID,
		logPath: filepath.Join(outputDir, runID+".jsonl"),
	}

	if err := l.writeEvent(map[string]any{
		"type":   "run_start",
		"run_id": l.RunID,
	}); err != nil {
		return nil, err
	}

	return l, nil
}

// generateRunID mirrors the reference implementation's
// `run_<YYYYMMDD_HHMMSS>_<8-hex>` scheme, resolved to UTC per the pipeline
// spec (the reference implementation uses local time; UTC makes run ids
// comparable across machines and is the explicit, non-ambiguous choice).
func generateRunID() string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("run_%s_%s", timestamp, uuid.NewString()[:8])
}

// LogPath returns the path to the current run's log file.
func (l *Logger) LogPath() string {
	return l.logPath
}

func (l *Logger) writeEvent(event map[string]any) error {
	if _, ok := event["timestamp"]; !ok {
		event["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("audit: failed to marshal event: %w", err)
	}

	f, err := os.OpenFile(l.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("audit: failed to open log %s: %w", l.logPath, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("audit: failed to write event to %s: %w", l.logPath, err)
	}
	return nil
}

// LogConfig records the run's configuration settings.
func (l *Logger) LogConfig(config map[string]any) error {
	return l.writeEvent(map[string]any{
		"type":   "config",
		"config": config,
	})
}

// LogTranslation records one segment's candidates, their scores, and which
// candidate was selected.
func (l *Logger) LogTranslation(src string, candidates []string, scores []map[string]any, bestIdx int, prompt string, params map[string]any) error {
	var bestText any
	var bestScore any
	if bestIdx >= 0 && bestIdx < len(candidates) {
		bestText = candidates[bestIdx]
	}
	if bestIdx >= 0 && bestIdx < len(scores) {
		bestScore = scores[bestIdx]["total"]
	}
	if params == nil {
		params = map[string]any{}
	}

	return l.writeEvent(map[string]any{
		"type":       "translation",
		"src":        src,
		"candidates": candidates,
		"scores":     scores,
		"best_idx":   bestIdx,
		"best_text":  bestText,
		"best_score": bestScore,
		"prompt":     prompt,
		"params":     params,
	})
}

// LogMetricEval records a single metric's evaluation of a candidate.
func (l *Logger) LogMetricEval(text, metricName string, score float64, details map[string]any) error {
	return l.writeEvent(map[string]any{
		"type":    "metric_eval",
		"text":    text,
		"metric":  metricName,
		"score":   score,
		"details": details,
	})
}

// LogBanditUpdate records a bandit value-estimate update.
func (l *Logger) LogBanditUpdate(prompt string, reward, newValue float64, counts map[string]int) error {
	return l.writeEvent(map[string]any{
		"type":          "bandit_update",
		"prompt":        prompt,
		"reward":        reward,
		"new_value":     newValue,
		"prompt_counts": counts,
	})
}

// LogError records a run-time error for later debugging.
func (l *Logger) LogError(errorType, message string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return l.writeEvent(map[string]any{
		"type":       "error",
		"error_type": errorType,
		"message":    message,
		"details":    details,
	})
}

// Finalize writes the closing run_end event with its end time and an
// optional summary.
func (l *Logger) Finalize(summary map[string]any) error {
	if summary == nil {
		summary = map[string]any{}
	}
	return l.writeEvent(map[string]any{
		"type":     "run_end",
		"run_id":   l.RunID,
		"end_time": time.Now().UTC().Format(time.RFC3339Nano),
		"summary":  summary,
	})
}
