package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
)

func init() {
	Register("mock", newMock)
}

var mockTranslations = map[string][]string{
	"We already finished the report.": {
		"Ua pau ka hōʻike.",
		"Ua pau ke hoike.",
		"Ua pau ka hoike.",
		"Ua pau ke hōʻike.",
	},
	"Do not go there.": {
		"Mai hele ʻoe i laila.",
		"Mai hele oe i laila.",
		"ʻAʻole hele i laila.",
		"No hele i laila.",
	},
	"It is not raining.": {
		"ʻAʻole e ua ana.",
		"ʻAʻole ua.",
		"Aole e ua ana.",
		"ʻAʻole i ua.",
	},
	"The children are playing.": {
		"Ke pāʻani nei nā keiki.",
		"Ke paani nei na keiki.",
		"Ka pāʻani nei nā keiki.",
		"E pāʻani ana nā keiki.",
	},
}

var mockDiacriticReplacer = strings.NewReplacer("ʻ", "", "ā", "a", "ō", "o")

// Mock returns deterministic fixture translations for a small set of known
// source sentences, and generic filler for anything else. Makes no network
// calls — intended for tests and local development.
type Mock struct{}

func newMock(map[string]string) (Generator, error) {
	return &Mock{}, nil
}

func (m *Mock) Generate(_ context.Context, src string, k int, _ ...Option) ([]string, error) {
	if fixtures, ok := mockTranslations[src]; ok {
		candidates := append([]string(nil), fixtures...)
		for len(candidates) < k {
			base := candidates[rand.Intn(len(candidates))]
			candidates = append(candidates, mockDiacriticReplacer.Replace(base))
		}
		if len(candidates) > k {
			candidates = candidates[:k]
		}
		return candidates, nil
	}

	baseTranslations := []string{
		fmt.Sprintf("Hawaiian translation of: %s", src),
		fmt.Sprintf("Ke %s nei.", src),
		fmt.Sprintf("ʻO ka %s.", src),
		fmt.Sprintf("Ua %s.", src),
	}

	candidates := make([]string, 0, k)
	for i := 0; i < k; i++ {
		if i < len(baseTranslations) {
			candidates = append(candidates, baseTranslations[i])
		} else {
			candidates = append(candidates, fmt.Sprintf("Translation %d: %s", i+1, src))
		}
	}
	return candidates, nil
}
