package semantic

import (
	"context"
	"testing"
)

type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return f.vectors[text], nil
}

func (f *fakeEmbedder) Dimension() int { return 2 }

func TestCosineSimilarityIdenticalVectors(t *testing.T) {
	a := []float32{1, 0}
	if got := CosineSimilarity(a, a); got != 1.0 {
		t.Errorf("expected similarity 1.0, got %v", got)
	}
}

func TestCosineSimilarityOrthogonalVectors(t *testing.T) {
	got := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
	if got != 0 {
		t.Errorf("expected similarity 0, got %v", got)
	}
}

func TestCosineSimilarityMismatchedLengthReturnsZero(t *testing.T) {
	got := CosineSimilarity([]float32{1, 0, 0}, []float32{1, 0})
	if got != 0 {
		t.Errorf("expected 0 for mismatched lengths, got %v", got)
	}
}

func TestFindNearDuplicatesGroupsSimilarCandidates(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"Ua pau ka hōʻike.": {1, 0},
		"Ua pau ke hoike.":  {0.99, 0.01},
		"Mai hele ʻoe.":     {0, 1},
	}}

	groups, err := FindNearDuplicates(context.Background(), embedder,
		[]string{"Ua pau ka hōʻike.", "Ua pau ke hoike.", "Mai hele ʻoe."}, 0.9)
	if err != nil {
		t.Fatalf("FindNearDuplicates: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 duplicate group, got %d: %+v", len(groups), groups)
	}
	if len(groups[0].Indices) != 2 {
		t.Errorf("expected group of 2, got %v", groups[0].Indices)
	}
}

func TestFindNearDuplicatesNilProviderReturnsNil(t *testing.T) {
	groups, err := FindNearDuplicates(context.Background(), nil, []string{"a", "b"}, 0.9)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if groups != nil {
		t.Errorf("expected nil groups, got %+v", groups)
	}
}

func TestFindNearDuplicatesSingleCandidateReturnsNil(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{"only one": {1, 0}}}
	groups, err := FindNearDuplicates(context.Background(), embedder, []string{"only one"}, 0.9)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if groups != nil {
		t.Errorf("expected nil groups for a single candidate, got %+v", groups)
	}
}
