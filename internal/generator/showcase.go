package generator

import (
	"context"
	"fmt"
)

func init() {
	Register("showcase", newShowcase)
}

// ShowcaseSentence is one curated demonstration sentence: a known-good
// Hawaiian translation of an English source, annotated with which grammar
// metrics it's meant to exercise.
type ShowcaseSentence struct {
	Hawaiian       string   `json:"hawaiian"`
	English        string   `json:"english"`
	PrimaryMetrics []string `json:"primary_metrics"`
	Description    string   `json:"description"`
}

// ProcessStep is one stage of the curated generation process a showcase
// sentence walks through, for display in a demo UI.
type ProcessStep struct {
	Stage       string  `json:"stage"`
	Description string  `json:"description"`
	Score       float64 `json:"score,omitempty"`
}

// ProcessLog is the detailed, pre-authored walkthrough returned for a
// showcase sentence: the candidates considered, why the winner won, and
// which metrics drove the decision.
type ProcessLog struct {
	Source         string        `json:"source"`
	Candidates     []string      `json:"candidates"`
	Best           string        `json:"best"`
	Steps          []ProcessStep `json:"steps"`
	PrimaryMetrics []string      `json:"primary_metrics"`
}

var showcaseSentences = []ShowcaseSentence{
	{
		Hawaiian:       "Ua pau ka hōʻike.",
		English:        "We already finished the report.",
		PrimaryMetrics: []string{"diacritics", "tam_particles"},
		Description:    "Demonstrates the completive TAM marker 'ua' alongside correct ʻokina and kahakō placement.",
	},
	{
		Hawaiian:       "Mai hele ʻoe i laila.",
		English:        "Do not go there.",
		PrimaryMetrics: []string{"tam_particles", "diacritics"},
		Description:    "Demonstrates negative-imperative 'mai' construction, distinct from the declarative negator 'ʻaʻole'.",
	},
	{
		Hawaiian:       "ʻAʻole e ua ana.",
		English:        "It is not raining.",
		PrimaryMetrics: []string{"tam_particles", "diacritics"},
		Description:    "Demonstrates declarative negation paired with the future/continuative 'e...ana' frame.",
	},
	{
		Hawaiian:       "Ke pāʻani nei nā keiki.",
		English:        "The children are playing.",
		PrimaryMetrics: []string{"diacritics", "articles_ke_ka"},
		Description:    "Demonstrates the continuative 'ke...nei' frame and plural article 'nā' before the noun 'keiki'.",
	},
}

// Showcase serves a fixed, curated set of source/translation pairs with
// an accompanying process log, for demos that need reproducible output
// rather than a live generation call.
type Showcase struct {
	sentences map[string]ShowcaseSentence
}

func newShowcase(map[string]string) (Generator, error) {
	index := make(map[string]ShowcaseSentence, len(showcaseSentences))
	for _, s := range showcaseSentences {
		index[s.English] = s
	}
	return &Showcase{sentences: index}, nil
}

// Generate returns the curated translation for src, padded to k with
// identical copies of it if src is a known showcase sentence, or a single
// apologetic placeholder if it is not.
func (s *Showcase) Generate(_ context.Context, src string, k int, _ ...Option) ([]string, error) {
	entry, ok := s.sentences[src]
	if !ok {
		return []string{fmt.Sprintf("[no showcase translation curated for: %s]", src)}, nil
	}

	candidates := make([]string, 0, k)
	candidates = append(candidates, entry.Hawaiian)
	for len(candidates) < k {
		candidates = append(candidates, entry.Hawaiian)
	}
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}

// GetShowcaseSentences returns every curated sentence, in a stable
// declaration order suitable for listing in a demo UI.
func (s *Showcase) GetShowcaseSentences() []ShowcaseSentence {
	return append([]ShowcaseSentence(nil), showcaseSentences...)
}

// GetProcessLog returns the curated walkthrough for src, or a log noting
// that no walkthrough exists for an unrecognized sentence.
func (s *Showcase) GetProcessLog(src string) ProcessLog {
	entry, ok := s.sentences[src]
	if !ok {
		return ProcessLog{
			Source:     src,
			Candidates: nil,
			Best:       "",
			Steps: []ProcessStep{
				{Stage: "lookup", Description: "no curated showcase entry for this sentence"},
			},
		}
	}

	return ProcessLog{
		Source:     src,
		Candidates: []string{entry.Hawaiian},
		Best:       entry.Hawaiian,
		Steps: []ProcessStep{
			{Stage: "generate", Description: "curated candidate retrieved from showcase fixtures"},
			{Stage: "score", Description: entry.Description, Score: 1.0},
			{Stage: "select", Description: "single curated candidate selected as best"},
		},
		PrimaryMetrics: entry.PrimaryMetrics,
	}
}
