// Package pipeline orchestrates one translation request end to end:
// candidate generation, scoring, ranking, bandit update, and audit logging.
package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/lokahilabs/rlvr-gym/internal/aggregator"
	"github.com/lokahilabs/rlvr-gym/internal/audit"
	"github.com/lokahilabs/rlvr-gym/internal/bandit"
	"github.com/lokahilabs/rlvr-gym/internal/generator"
	"github.com/lokahilabs/rlvr-gym/internal/langpack"
	"github.com/lokahilabs/rlvr-gym/internal/metrics"
	"github.com/lokahilabs/rlvr-gym/internal/review"
)

// Mode selects how a segment is translated.
type Mode string

const (
	// ModeStandard generates a single candidate with the base prompt.
	ModeStandard Mode = "standard"
	// ModeRLVR generates k candidates via the bandit-selected prompt,
	// scores and ranks them, and updates the bandit.
	ModeRLVR Mode = "rlvr"
	// ModeShowcase serves a curated fixed translation with a detailed
	// process log, and never updates the bandit.
	ModeShowcase Mode = "showcase"
)

// Candidate is one scored candidate translation.
type Candidate struct {
	ID        string             `json:"id"`
	Text      string             `json:"tgt"`
	R         float64            `json:"R"`
	Breakdown map[string]float64 `json:"breakdown"`

	breakdown aggregator.Result
}

// Result is one segment's translation outcome: the ranked candidates, the
// winner, and enough provenance to reproduce the decision.
type Result struct {
	SegmentID   string             `json:"id"`
	Best        string             `json:"best"`
	Candidates  []Candidate        `json:"candidates"`
	Prompt      string             `json:"prompt"`
	Weights     map[string]float64 `json:"weights"`
	NeedsReview bool               `json:"needs_review,omitempty"`
	ProcessLog  any                `json:"process_log,omitempty"`
}

// Pipeline holds the per-language resources one translation request reads:
// its metrics, weights, generator, and bandit.
type Pipeline struct {
	Pack      *langpack.Pack
	Metrics   []metrics.Metric
	Generator generator.Generator
	Bandit    *bandit.Bandit
	Reviewer  review.PostEditReviewer

	// MinAcceptableReward flags a result for review when the best
	// candidate's R falls below it. Zero disables the check.
	MinAcceptableReward float64

	Logger *audit.Logger
}

// scoreText scores one candidate against every configured metric and
// returns the aggregate reward alongside the full per-metric breakdown.
func (p *Pipeline) scoreText(text, src string) (float64, aggregator.Result, []metrics.Result) {
	scores := make([]metrics.Result, 0, len(p.Metrics))
	for _, m := range p.Metrics {
		scores = append(scores, m.Score(text, src))
	}

	weights := p.Pack.Weights
	total := aggregator.Aggregate(scores, weights)
	breakdown := aggregator.BreakdownOf(scores, weights, total)
	return total, breakdown, scores
}

// Translate runs one segment through the pipeline in the given mode.
func (p *Pipeline) Translate(ctx context.Context, mode Mode, segmentID, src string, k int, temperature float64) (Result, error) {
	switch mode {
	case ModeShowcase:
		return p.translateShowcase(ctx, segmentID, src, k)
	case ModeRLVR:
		return p.translateRLVR(ctx, segmentID, src, k, temperature)
	default:
		return p.translateStandard(ctx, segmentID, src)
	}
}

func (p *Pipeline) translateStandard(ctx context.Context, segmentID, src string) (Result, error) {
	prompt := p.Pack.Generator.Params["prompt_template"]

	candidates, err := p.Generator.Generate(ctx, src, 1, generator.WithPrompt(prompt))
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: generate: %w", err)
	}
	if len(candidates) == 0 {
		return Result{}, fmt.Errorf("pipeline: generator returned no candidates for segment %q", segmentID)
	}

	return p.scoreAndSelect(segmentID, src, prompt, candidates)
}

func (p *Pipeline) translateRLVR(ctx context.Context, segmentID, src string, k int, temperature float64) (Result, error) {
	prompt := p.Bandit.Pick()

	candidates, err := p.Generator.Generate(ctx, src, k,
		generator.WithPrompt(prompt), generator.WithTemperature(temperature))
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: generate: %w", err)
	}
	if len(candidates) == 0 {
		return Result{}, fmt.Errorf("pipeline: generator returned no candidates for segment %q", segmentID)
	}

	result, err := p.scoreAndSelect(segmentID, src, prompt, candidates)
	if err != nil {
		return Result{}, err
	}

	if err := p.Bandit.Update(prompt, result.Candidates[0].R); err != nil {
		return Result{}, fmt.Errorf("pipeline: bandit update: %w", err)
	}
	if p.Logger != nil {
		_ = p.Logger.LogBanditUpdate(prompt, result.Candidates[0].R, p.Bandit.Values[prompt], p.Bandit.Counts)
	}

	return result, nil
}

func (p *Pipeline) translateShowcase(ctx context.Context, segmentID, src string, k int) (Result, error) {
	candidates, err := p.Generator.Generate(ctx, src, k)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: generate: %w", err)
	}
	if len(candidates) == 0 {
		return Result{}, fmt.Errorf("pipeline: generator returned no candidates for segment %q", segmentID)
	}

	result, err := p.scoreAndSelect(segmentID, src, "Showcase mode - curated demonstration", candidates)
	if err != nil {
		return Result{}, err
	}

	if sg, ok := p.Generator.(*generator.Showcase); ok {
		result.ProcessLog = sg.GetProcessLog(src)
	}

	return result, nil
}

// scoreAndSelect scores every candidate, sorts them by R descending (ties
// broken by generation order), and assembles the Result. Bandit updates are
// applied by the caller, which alone knows whether this mode uses one.
func (p *Pipeline) scoreAndSelect(segmentID, src, prompt string, candidates []string) (Result, error) {
	scored := make([]Candidate, len(candidates))
	scoreLog := make([]map[string]any, len(candidates))
	origIndex := make([]int, len(candidates))

	for i, text := range candidates {
		total, breakdown, componentScores := p.scoreText(text, src)
		scored[i] = Candidate{
			ID:        fmt.Sprintf("c%d", i),
			Text:      text,
			R:         total,
			Breakdown: breakdown.Scores,
			breakdown: breakdown,
		}
		origIndex[i] = i

		details := make(map[string]any, len(componentScores))
		for _, cs := range componentScores {
			details[cs.Name] = cs.Details
		}
		scoreLog[i] = map[string]any{
			"total":   total,
			"details": details,
		}
	}

	sort.SliceStable(origIndex, func(i, j int) bool { return scored[origIndex[i]].R > scored[origIndex[j]].R })
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].R > scored[j].R })

	best := scored[0]
	bestIdx := origIndex[0]
	weights := p.Pack.Weights

	result := Result{
		SegmentID:  segmentID,
		Best:       best.Text,
		Candidates: scored,
		Prompt:     prompt,
		Weights:    weights,
	}
	if p.MinAcceptableReward > 0 && best.R < p.MinAcceptableReward {
		result.NeedsReview = true
		if p.Reviewer != nil && p.Reviewer.Enabled() {
			_ = p.Reviewer.Review(context.Background(), segmentID, src, best.Text)
		}
	}

	if p.Logger != nil {
		_ = p.Logger.LogTranslation(src, candidates, scoreLog, bestIdx, prompt, nil)
	}

	return result, nil
}
