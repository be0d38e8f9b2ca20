package semantic

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"
)

// ChromemStore is an in-process, in-memory vector store backed by
// chromem-go, scoped to one collection per process (candidate near-
// duplicate detection doesn't need persistence across runs).
type ChromemStore struct {
	collection *chromem.Collection
}

// NewChromemStore creates a fresh in-memory collection whose embeddings are
// produced by provider.
func NewChromemStore(provider EmbeddingProvider) (*ChromemStore, error) {
	db := chromem.NewDB()

	embeddingFunc := func(ctx context.Context, text string) ([]float32, error) {
		return provider.Embed(ctx, text)
	}

	collection, err := db.CreateCollection("rlvr-candidates", nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("semantic: create chromem collection: %w", err)
	}
	return &ChromemStore{collection: collection}, nil
}

// Add embeds and indexes text under id.
func (s *ChromemStore) Add(ctx context.Context, id, text string) error {
	if err := s.collection.AddDocument(ctx, chromem.Document{ID: id, Content: text}); err != nil {
		return fmt.Errorf("semantic: add document %s: %w", id, err)
	}
	return nil
}

// SearchSimilar returns up to limit previously-added documents whose
// cosine similarity to text meets or exceeds minSimilarity, most similar
// first.
func (s *ChromemStore) SearchSimilar(ctx context.Context, text string, limit int, minSimilarity float64) ([]Match, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	results, err := s.collection.Query(ctx, text, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("semantic: query chromem collection: %w", err)
	}

	matches := make([]Match, 0, len(results))
	for _, r := range results {
		if r.Similarity >= float32(minSimilarity) {
			matches = append(matches, Match{ID: r.ID, Similarity: float64(r.Similarity)})
		}
	}
	return matches, nil
}

// Close is a no-op: chromem-go's in-memory collections hold no external
// resources to release.
func (s *ChromemStore) Close() error { return nil }
