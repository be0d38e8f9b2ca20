package metrics

import (
	"fmt"
	"regexp"
	"strings"
)

func init() {
	Register("rlvr.metrics.articles_ke_ka", "articles_ke_ka", newArticlesKeKa)
}

var keKaPunctRe = regexp.MustCompile(`[.,!?;:"]`)

// ArticlesKeKa checks Hawaiian definite-article usage against the KEAO
// rule (ke before k/e/a/o/ʻ-initial words, plus an exception list; ka
// otherwise).
type ArticlesKeKa struct {
	keExceptions map[string]struct{}
}

func newArticlesKeKa(resources Resources) (Metric, error) {
	path, ok := resources["ke_exceptions"]
	if !ok {
		return nil, fmt.Errorf("articles_ke_ka: missing resource %q", "ke_exceptions")
	}
	exceptions, err := loadLexicon(path)
	if err != nil {
		return nil, fmt.Errorf("articles_ke_ka: %w", err)
	}
	return &ArticlesKeKa{keExceptions: exceptions}, nil
}

func (m *ArticlesKeKa) Name() string    { return "articles_ke_ka" }
func (m *ArticlesKeKa) Version() string { return "1.0" }

func (m *ArticlesKeKa) normalizeWord(word string) string {
	return strings.TrimSpace(keKaPunctRe.ReplaceAllString(word, ""))
}

// shouldUseKe applies the KEAO rule: k, e, a, o, or ʻ as the first letter,
// or an explicit exception, calls for "ke"; everything else calls for "ka".
func (m *ArticlesKeKa) shouldUseKe(word string) bool {
	normalized := strings.ToLower(m.normalizeWord(word))
	if _, ok := m.keExceptions[normalized]; ok {
		return true
	}
	runes := []rune(normalized)
	if len(runes) == 0 {
		return false
	}
	switch runes[0] {
	case 'k', 'e', 'a', 'o', 'ʻ':
		return true
	default:
		return false
	}
}

func (m *ArticlesKeKa) Score(text string, _ string) Result {
	words := strings.Fields(text)

	type pair struct {
		article, next string
	}
	var pairs []pair
	for i := 0; i < len(words)-1; i++ {
		lower := strings.ToLower(words[i])
		if lower == "ke" || lower == "ka" {
			pairs = append(pairs, pair{words[i], words[i+1]})
		}
	}

	if len(pairs) == 0 {
		return Result{
			Name:    m.Name(),
			Version: m.Version(),
			Score:   1.0,
			Details: map[string]any{
				"checked": 0,
				"correct": 0,
				"pairs":   []map[string]any{},
			},
		}
	}

	correct := 0
	details := make([]map[string]any, 0, len(pairs))
	errs := make([]map[string]any, 0)
	for _, p := range pairs {
		shouldBeKe := m.shouldUseKe(p.next)
		isCorrect := (shouldBeKe && strings.ToLower(p.article) == "ke") ||
			(!shouldBeKe && strings.ToLower(p.article) == "ka")
		if isCorrect {
			correct++
		}
		should := "ka"
		if shouldBeKe {
			should = "ke"
		}
		reason := "KEAO rule"
		if _, ok := m.keExceptions[strings.ToLower(p.next)]; ok {
			reason = "exception"
		}
		entry := map[string]any{
			"article":    p.article,
			"word":       p.next,
			"correct":    isCorrect,
			"should_be":  should,
			"reason":     reason,
		}
		details = append(details, entry)
		if !isCorrect {
			errs = append(errs, entry)
		}
	}

	return Result{
		Name:    m.Name(),
		Version: m.Version(),
		Score:   clamp(float64(correct) / float64(len(pairs))),
		Details: map[string]any{
			"checked": len(pairs),
			"correct": correct,
			"pairs":   details,
			"errors":  errs,
		},
	}
}
