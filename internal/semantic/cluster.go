package semantic

import "context"

// DuplicateGroup names one cluster of near-duplicate candidates, by index
// into the original candidate slice.
type DuplicateGroup struct {
	Indices    []int   `json:"indices"`
	Similarity float64 `json:"similarity"`
}

// FindNearDuplicates groups candidates greedily, using provider to embed
// each one: each not-yet-grouped candidate collects every later ungrouped
// candidate whose cosine similarity to it meets threshold. Members of a
// group are compared only with its first candidate, not with each other,
// and only groups of two or more are returned; Similarity is the highest
// similarity found. Returns nil (not an error) if provider is nil or there
// are fewer than two candidates — callers treat a nil embedder as "this
// diagnostic is unavailable".
func FindNearDuplicates(ctx context.Context, provider EmbeddingProvider, candidates []string, threshold float64) ([]DuplicateGroup, error) {
	if provider == nil || len(candidates) < 2 {
		return nil, nil
	}

	embeddings := make([][]float32, len(candidates))
	for i, c := range candidates {
		emb, err := provider.Embed(ctx, c)
		if err != nil {
			return nil, err
		}
		embeddings[i] = emb
	}

	assigned := make([]bool, len(candidates))
	var groups []DuplicateGroup

	for i := range candidates {
		if assigned[i] {
			continue
		}
		group := []int{i}
		maxSim := 0.0
		for j := i + 1; j < len(candidates); j++ {
			if assigned[j] {
				continue
			}
			sim := CosineSimilarity(embeddings[i], embeddings[j])
			if sim >= threshold {
				group = append(group, j)
				assigned[j] = true
				if sim > maxSim {
					maxSim = sim
				}
			}
		}
		if len(group) > 1 {
			assigned[i] = true
			groups = append(groups, DuplicateGroup{Indices: group, Similarity: maxSim})
		}
	}

	return groups, nil
}
