package metrics

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

func init() {
	Register("rlvr.metrics.english_articles", "articles_a_an", newArticlesAAn)
}

var (
	aAnPattern       = regexp.MustCompile(`(?i)\b(a|an)\s+(\w+)`)
	silentHPattern   = regexp.MustCompile(`(?i)^(hour|honest|honor|honour|heir)`)
	uConsonantPrefix = regexp.MustCompile(`(?i)^(uni|use|usu|uti|ufo)`)
	vowelSounds      = "aeiouAEIOU"
)

// ArticlesAAn checks English indefinite-article usage (a vs. an) against a
// phonetic vowel-sound heuristic plus two exception word lists.
type ArticlesAAn struct {
	exceptionsUseA  map[string]struct{}
	exceptionsUseAn map[string]struct{}
}

func newArticlesAAn(resources Resources) (Metric, error) {
	m := &ArticlesAAn{
		exceptionsUseA:  map[string]struct{}{},
		exceptionsUseAn: map[string]struct{}{},
	}
	if path, ok := resources["article_exceptions"]; ok {
		if _, err := os.Stat(path); err == nil {
			if err := m.loadExceptions(path); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// loadExceptions parses a two-section text file: a `# use "a"` heading
// introduces vowel-spelled-but-consonant-sounding words, and a
// `# use "an"` heading introduces silent-h / vowel-sounding words.
func (m *ArticlesAAn) loadExceptions(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var section string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if strings.Contains(line, `use "a"`) {
				section = "a"
			} else if strings.Contains(line, `use "an"`) {
				section = "an"
			}
			continue
		}
		switch section {
		case "a":
			m.exceptionsUseA[strings.ToLower(line)] = struct{}{}
		case "an":
			m.exceptionsUseAn[strings.ToLower(line)] = struct{}{}
		}
	}
	return scanner.Err()
}

func (m *ArticlesAAn) Name() string    { return "articles_a_an" }
func (m *ArticlesAAn) Version() string { return "1.0" }

func (m *ArticlesAAn) shouldUseAn(word string) bool {
	if word == "" {
		return false
	}
	lower := strings.ToLower(word)
	if _, ok := m.exceptionsUseAn[lower]; ok {
		return true
	}
	if _, ok := m.exceptionsUseA[lower]; ok {
		return false
	}
	if silentHPattern.MatchString(word) {
		return true
	}
	if strings.ToLower(word[:1]) == "u" && uConsonantPrefix.MatchString(word) {
		return false
	}
	return strings.ContainsRune(vowelSounds, rune(word[0]))
}

func (m *ArticlesAAn) Score(text string, _ string) Result {
	matches := aAnPattern.FindAllStringSubmatchIndex(text, -1)

	checks := make([]map[string]any, 0, len(matches))
	errs := make([]map[string]any, 0)

	for _, idx := range matches {
		article := strings.ToLower(text[idx[2]:idx[3]])
		word := text[idx[4]:idx[5]]
		pos := idx[0]

		checks = append(checks, map[string]any{
			"article":  article,
			"word":     word,
			"position": pos,
		})

		shouldBeAn := m.shouldUseAn(word)
		if article == "a" && shouldBeAn {
			errs = append(errs, map[string]any{
				"found":     "a " + word,
				"should_be": "an " + word,
				"position":  pos,
				"type":      "a_should_be_an",
			})
		} else if article == "an" && !shouldBeAn {
			errs = append(errs, map[string]any{
				"found":     "an " + word,
				"should_be": "a " + word,
				"position":  pos,
				"type":      "an_should_be_a",
			})
		}
	}

	denom := len(checks)
	if denom == 0 {
		denom = 1
	}
	score := 1.0 - float64(len(errs))/float64(denom)
	if score < 0 {
		score = 0
	}

	return Result{
		Name:    m.Name(),
		Version: m.Version(),
		Score:   clamp(score),
		Details: map[string]any{
			"checked":    len(checks),
			"errors":     len(errs),
			"error_list": errs,
		},
	}
}
