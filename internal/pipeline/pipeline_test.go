package pipeline

import (
	"context"
	"testing"

	"github.com/lokahilabs/rlvr-gym/internal/bandit"
	"github.com/lokahilabs/rlvr-gym/internal/generator"
	"github.com/lokahilabs/rlvr-gym/internal/langpack"
	"github.com/lokahilabs/rlvr-gym/internal/metrics"
)

type stubMetric struct {
	name  string
	score float64
}

func (m stubMetric) Name() string    { return m.name }
func (m stubMetric) Version() string { return "1.0" }
func (m stubMetric) Score(text, _ string) metrics.Result {
	score := m.score
	if text == "best" {
		score = 1.0
	}
	return metrics.Result{Name: m.name, Version: "1.0", Score: score, Details: map[string]any{}}
}

type stubGenerator struct {
	candidates []string
}

func (g *stubGenerator) Generate(_ context.Context, _ string, k int, _ ...generator.Option) ([]string, error) {
	if k < len(g.candidates) {
		return g.candidates[:k], nil
	}
	return g.candidates, nil
}

func newTestPipeline(candidates []string) *Pipeline {
	pack := &langpack.Pack{
		Code:    "haw",
		Weights: map[string]float64{"metric_a": 1.0},
		Generator: langpack.GeneratorConfig{
			Kind:   "mock",
			Params: map[string]string{"prompt_template": "base prompt"},
		},
	}
	return &Pipeline{
		Pack:      pack,
		Metrics:   []metrics.Metric{stubMetric{name: "metric_a", score: 0.2}},
		Generator: &stubGenerator{candidates: candidates},
		Bandit:    bandit.New([]string{"base prompt", "base prompt v2"}, 0.0, 0.5),
	}
}

func TestTranslateStandardReturnsSingleCandidate(t *testing.T) {
	p := newTestPipeline([]string{"best"})
	result, err := p.Translate(context.Background(), ModeStandard, "seg-1", "src", 1, 0.5)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if result.Best != "best" {
		t.Errorf("expected best=%q, got %q", "best", result.Best)
	}
	if len(result.Candidates) != 1 {
		t.Errorf("expected 1 candidate, got %d", len(result.Candidates))
	}
}

func TestTranslateRLVRRanksAndUpdatesBandit(t *testing.T) {
	p := newTestPipeline([]string{"worse", "best", "also worse"})
	result, err := p.Translate(context.Background(), ModeRLVR, "seg-1", "src", 3, 0.7)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if result.Best != "best" {
		t.Errorf("expected best candidate to be ranked first, got %q", result.Best)
	}
	if result.Candidates[0].R != 1.0 {
		t.Errorf("expected top candidate R=1.0, got %v", result.Candidates[0].R)
	}

	prompt := result.Prompt
	if p.Bandit.Counts[prompt] != 1 {
		t.Errorf("expected bandit to record 1 update for %q, got %d", prompt, p.Bandit.Counts[prompt])
	}
}

func TestTranslateFlagsNeedsReviewBelowThreshold(t *testing.T) {
	p := newTestPipeline([]string{"mediocre"})
	p.MinAcceptableReward = 0.5
	result, err := p.Translate(context.Background(), ModeStandard, "seg-1", "src", 1, 0.5)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if !result.NeedsReview {
		t.Error("expected NeedsReview to be true for a low-scoring result")
	}
}

func TestTranslateBreakdownIsUnweighted(t *testing.T) {
	pack := &langpack.Pack{
		Code:    "haw",
		Weights: map[string]float64{"metric_a": 0.5},
		Generator: langpack.GeneratorConfig{
			Kind:   "mock",
			Params: map[string]string{"prompt_template": "base prompt"},
		},
	}
	p := &Pipeline{
		Pack:      pack,
		Metrics:   []metrics.Metric{stubMetric{name: "metric_a", score: 0.4}},
		Generator: &stubGenerator{candidates: []string{"mediocre"}},
		Bandit:    bandit.New([]string{"base prompt"}, 0.0, 0.5),
	}

	result, err := p.Translate(context.Background(), ModeStandard, "seg-1", "src", 1, 0.5)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got := result.Candidates[0].Breakdown["metric_a"]; got != 0.4 {
		t.Errorf("expected unweighted breakdown[metric_a]=0.4, got %v (weighting it by 0.5 would wrongly give 0.2)", got)
	}
}

func TestTranslateEmptyCandidatesErrors(t *testing.T) {
	p := newTestPipeline(nil)
	if _, err := p.Translate(context.Background(), ModeStandard, "seg-1", "src", 1, 0.5); err == nil {
		t.Error("expected an error when the generator returns no candidates")
	}
}
