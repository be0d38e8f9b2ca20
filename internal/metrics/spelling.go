package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

func init() {
	Register("rlvr.metrics.english_spelling", "spelling", newSpelling)
}

// commonMisspellingsFile is the on-disk shape of the `common_misspellings`
// resource: a flat map of misspelling -> correction, plus homophone groups
// keyed by the commonly confused word.
type commonMisspellingsFile struct {
	CommonErrors map[string]string   `json:"common_errors"`
	Homophones   map[string][]string `json:"homophones"`
}

var doubleLetterErrors = map[string]string{
	"untill":      "until",
	"allways":     "always",
	"wellcome":    "welcome",
	"tommorrow":   "tomorrow",
	"dissappoint": "disappoint",
	"occassion":   "occasion",
}

var contractions = map[string]string{
	"cant":     "can't",
	"wont":     "won't",
	"dont":     "don't",
	"doesnt":   "doesn't",
	"didnt":    "didn't",
	"isnt":     "isn't",
	"arent":    "aren't",
	"wasnt":    "wasn't",
	"werent":   "weren't",
	"havent":   "haven't",
	"hasnt":    "hasn't",
	"hadnt":    "hadn't",
	"wouldnt":  "wouldn't",
	"couldnt":  "couldn't",
	"shouldnt": "shouldn't",
}

var spellingWordRe = regexp.MustCompile(`\b\w+(?:'t|'s|'re|'ve|'ll|'d)?\b`)

var theirVerbRe = regexp.MustCompile(`(?i)\btheir\s+(is|are|was|were)\b`)
var overTheirRe = regexp.MustCompile(`(?i)\bover\s+their\b`)
var overTheirPluralRe = regexp.MustCompile(`(?i)\bover\s+their\s+\w+s\b`)
var yourVerbIngRe = regexp.MustCompile(`(?i)\byour\s+(going|coming|doing|making|taking)`)
var itsAuxRe = regexp.MustCompile(`(?i)\bits\s+(been|going|coming|getting|become)`)

// Spelling checks English text against a small set of common misspellings,
// double-letter transpositions, missing contraction apostrophes, and a
// handful of homophone heuristics reported as non-scoring warnings.
type Spelling struct {
	errorToCorrect map[string]string
}

func newSpelling(resources Resources) (Metric, error) {
	errorToCorrect := map[string]string{}
	for k, v := range doubleLetterErrors {
		errorToCorrect[k] = v
	}

	if path, ok := resources["common_misspellings"]; ok {
		if _, statErr := os.Stat(path); statErr == nil {
			raw, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("spelling: failed to read %s: %w", path, err)
			}
			var parsed commonMisspellingsFile
			if err := json.Unmarshal(raw, &parsed); err != nil {
				return nil, fmt.Errorf("spelling: failed to parse %s: %w", path, err)
			}
			for k, v := range parsed.CommonErrors {
				errorToCorrect[strings.ToLower(k)] = v
			}
		}
	}

	return &Spelling{errorToCorrect: errorToCorrect}, nil
}

func (m *Spelling) Name() string    { return "spelling" }
func (m *Spelling) Version() string { return "1.0" }

// checkWordSpelling reports a correction for word, checking the merged
// common-errors/double-letter table first, then the contractions table.
func (m *Spelling) checkWordSpelling(word string) (string, bool) {
	lower := strings.ToLower(word)
	if correct, ok := m.errorToCorrect[lower]; ok {
		return correct, true
	}
	if correct, ok := contractions[lower]; ok {
		return correct, true
	}
	return "", false
}

// checkHomophones reports context-based homophone warnings. These never
// affect the score; they are advisory only.
func (m *Spelling) checkHomophones(text string) []map[string]any {
	lower := strings.ToLower(text)
	warnings := make([]map[string]any, 0)

	if strings.Contains(lower, "their") || strings.Contains(lower, "there") ||
		strings.Contains(lower, "they're") || strings.Contains(lower, "theyre") {
		if theirVerbRe.MatchString(lower) {
			warnings = append(warnings, map[string]any{
				"found":      "their",
				"context":    "before a verb",
				"suggestion": "they're (they are)",
				"type":       "homophone_warning",
			})
		}
		if overTheirRe.MatchString(lower) && !overTheirPluralRe.MatchString(lower) {
			warnings = append(warnings, map[string]any{
				"found":      "their",
				"context":    `after "over"`,
				"suggestion": "there",
				"type":       "homophone_warning",
			})
		}
	}

	if yourVerbIngRe.MatchString(lower) {
		warnings = append(warnings, map[string]any{
			"found":      "your",
			"context":    "before verb+ing",
			"suggestion": "you're (you are)",
			"type":       "homophone_warning",
		})
	}

	if itsAuxRe.MatchString(lower) {
		warnings = append(warnings, map[string]any{
			"found":      "its",
			"context":    "before auxiliary/verb",
			"suggestion": "it's (it is/has)",
			"type":       "homophone_warning",
		})
	}

	return warnings
}

func (m *Spelling) Score(text string, _ string) Result {
	matches := spellingWordRe.FindAllStringIndex(text, -1)

	errs := make([]map[string]any, 0)
	wordsChecked := 0
	for _, idx := range matches {
		word := text[idx[0]:idx[1]]
		wordsChecked++
		if correct, bad := m.checkWordSpelling(word); bad {
			errs = append(errs, map[string]any{
				"found":     word,
				"suggested": correct,
				"position":  idx[0],
			})
		}
	}

	warnings := m.checkHomophones(text)

	denom := wordsChecked
	if denom == 0 {
		denom = 1
	}
	score := 1.0 - float64(len(errs))/float64(denom)
	if score < 0 {
		score = 0
	}

	limitedErrs := errs
	if len(limitedErrs) > 10 {
		limitedErrs = limitedErrs[:10]
	}
	limitedWarnings := warnings
	if len(limitedWarnings) > 5 {
		limitedWarnings = limitedWarnings[:5]
	}

	return Result{
		Name:    m.Name(),
		Version: m.Version(),
		Score:   clamp(score),
		Details: map[string]any{
			"words_checked": wordsChecked,
			"errors_found":  len(errs),
			"errors":        limitedErrs,
			"warnings":      limitedWarnings,
		},
	}
}
