package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func readEvents(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open log: %v", err)
	}
	defer f.Close()

	var events []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var event map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("line is not valid JSON: %v (%s)", err, scanner.Text())
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scanner error: %v", err)
	}
	return events
}

func TestNewWritesRunStartFirst(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	events := readEvents(t, logger.LogPath())
	if len(events) != 1 {
		t.Fatalf("expected exactly one event after New, got %d", len(events))
	}
	if events[0]["type"] != "run_start" {
		t.Errorf("expected first event to be run_start, got %v", events[0]["type"])
	}
	if events[0]["run_id"] != logger.RunID {
		t.Errorf("expected run_start to carry the run id, got %v", events[0]["run_id"])
	}
}

func TestRunStartPrecedesAllOtherEvents(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := logger.LogConfig(map[string]any{"k": "v"}); err != nil {
		t.Fatalf("LogConfig: %v", err)
	}
	if err := logger.LogError("test_error", "something went wrong", nil); err != nil {
		t.Fatalf("LogError: %v", err)
	}
	if err := logger.Finalize(map[string]any{"count": 2}); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	events := readEvents(t, logger.LogPath())
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[0]["type"] != "run_start" {
		t.Errorf("run_start must be first, got %v", events[0]["type"])
	}
	if events[len(events)-1]["type"] != "run_end" {
		t.Errorf("run_end must be last after Finalize, got %v", events[len(events)-1]["type"])
	}
}

func TestLogTranslationIncludesBestCandidate(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	candidates := []string{"bad translation", "good translation"}
	scores := []map[string]any{
		{"total": 0.2},
		{"total": 0.9},
	}
	if err := logger.LogTranslation("hello", candidates, scores, 1, "prompt-a", nil); err != nil {
		t.Fatalf("LogTranslation: %v", err)
	}

	events := readEvents(t, logger.LogPath())
	last := events[len(events)-1]
	if last["best_text"] != "good translation" {
		t.Errorf("expected best_text to be the candidate at best_idx, got %v", last["best_text"])
	}
	if last["best_score"].(float64) != 0.9 {
		t.Errorf("expected best_score 0.9, got %v", last["best_score"])
	}
}

func TestNewWithRunIDUsesGivenID(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewWithRunID(dir, "run_fixed_id")
	if err != nil {
		t.Fatalf("NewWithRunID: %v", err)
	}
	if logger.RunID != "run_fixed_id" {
		t.Errorf("expected run id run_fixed_id, got %v", logger.RunID)
	}
	if _, err := os.Stat(filepath.Join(dir, "run_fixed_id.jsonl")); err != nil {
		t.Errorf("expected log file to exist: %v", err)
	}
}
