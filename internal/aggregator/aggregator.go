// Package aggregator combines a candidate's per-metric scores into a single
// scalar reward.
package aggregator

import "github.com/lokahilabs/rlvr-gym/internal/metrics"

// Result is a weighted-mean reward plus the inputs that produced it, kept
// together so the pipeline can drop the whole thing straight into an audit
// event without re-deriving it.
type Result struct {
	Total          float64            `json:"total"`
	Components     []metrics.Result   `json:"components"`
	Weights        map[string]float64 `json:"weights"`
	Scores         map[string]float64 `json:"scores"`
	WeightedScores map[string]float64 `json:"weighted_scores"`
}

// Aggregate computes the weighted mean of scores restricted to the metrics
// named in weights:
//
//	R = Σ w_m·s_m / Σ w_m   over m in scores ∩ weights
//
// R is 0 if no score's metric name appears in weights (or weights is empty).
func Aggregate(scores []metrics.Result, weights map[string]float64) float64 {
	var total, totalWeight float64
	for _, s := range scores {
		w, ok := weights[s.Name]
		if !ok {
			continue
		}
		total += w * s.Score
		totalWeight += w
	}
	if totalWeight > 0 {
		return total / totalWeight
	}
	return 0.0
}

// BreakdownOf builds the full transparency record for an already-computed
// total: per-metric component results, the weight table used, and the
// per-metric weighted contribution to the total.
func BreakdownOf(scores []metrics.Result, weights map[string]float64, total float64) Result {
	raw := make(map[string]float64, len(scores))
	weighted := make(map[string]float64)
	for _, s := range scores {
		raw[s.Name] = s.Score
		w, ok := weights[s.Name]
		if !ok {
			continue
		}
		weighted[s.Name] = s.Score * w
	}
	return Result{
		Total:          total,
		Components:     scores,
		Weights:        weights,
		Scores:         raw,
		WeightedScores: weighted,
	}
}
