package metrics

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/lokahilabs/rlvr-gym/internal/textutil"
)

func init() {
	Register("rlvr.metrics.diacritics", "diacritics", newDiacritics)
}

var diacriticsPunctRe = regexp.MustCompile(`[.,!?;:"]`)

// Diacritics checks that Hawaiian words which require a specific
// ʻokina/macron placement appear with that exact placement.
type Diacritics struct {
	requiredForms map[string]struct{}
}

func newDiacritics(resources Resources) (Metric, error) {
	path, ok := resources["lex_diacritics"]
	if !ok {
		return nil, fmt.Errorf("diacritics: missing resource %q", "lex_diacritics")
	}
	forms, err := loadLexicon(path)
	if err != nil {
		return nil, fmt.Errorf("diacritics: %w", err)
	}
	return &Diacritics{requiredForms: forms}, nil
}

func (d *Diacritics) Name() string    { return "diacritics" }
func (d *Diacritics) Version() string { return "1.0" }

func (d *Diacritics) Score(text string, _ string) Result {
	words := strings.Fields(text)

	type checked struct {
		word       string
		normalized string
		required   string
		correct    bool
	}
	var toCheck []checked
	correctCount := 0

	for _, word := range words {
		normalized := strings.ToLower(diacriticsPunctRe.ReplaceAllString(word, ""))
		normalized = strings.TrimSpace(normalized)
		base := textutil.StripDiacritics(normalized)

		for required := range d.requiredForms {
			if textutil.StripDiacritics(required) == base {
				correct := normalized == required
				toCheck = append(toCheck, checked{word, normalized, required, correct})
				if correct {
					correctCount++
				}
				break
			}
		}
	}

	score := 1.0
	if len(toCheck) > 0 {
		score = float64(correctCount) / float64(len(toCheck))
	}

	wordsChecked := make([]string, 0, len(toCheck))
	errs := make([]map[string]any, 0)
	for _, c := range toCheck {
		wordsChecked = append(wordsChecked, c.word)
		if !c.correct {
			errs = append(errs, map[string]any{
				"word":     c.word,
				"required": c.required,
			})
		}
	}

	return Result{
		Name:    d.Name(),
		Version: d.Version(),
		Score:   clamp(score),
		Details: map[string]any{
			"checked":       len(toCheck),
			"correct":       correctCount,
			"words_checked": wordsChecked,
			"errors":        errs,
		},
	}
}

// loadLexicon reads a newline-delimited word list, skipping blank lines and
// lines beginning with '#'.
func loadLexicon(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon %s: %w", path, err)
	}
	defer f.Close()

	out := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon %s: %w", path, err)
	}
	return out, nil
}
