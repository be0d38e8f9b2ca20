package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

func init() {
	Register("rlvr.metrics.tam_particles", "tam_particles", newTAMParticles)
}

// tamRuleFile is the on-disk shape of the `tam_regex` resource: a marker
// pattern for negation, plus ordered lists of valid/invalid surface
// patterns for the negative and affirmative branches. Every pattern may
// contain the literal placeholder "VERB", substituted at load time with
// verbPattern.
type tamRuleFile struct {
	Neg struct {
		Marker  string   `json:"marker"`
		Valid   []string `json:"valid"`
		Invalid []string `json:"invalid"`
	} `json:"neg"`
	Aff struct {
		Valid []string `json:"valid"`
	} `json:"aff"`
	VerbPattern string `json:"verb_pattern"`
}

const defaultVerbPattern = `[A-Za-zāēīōūĀĒĪŌŪ][a-zāēīōū]*`

// TAMParticles checks Hawaiian tense-aspect-mood particle usage, with
// special attention to the forbidden negation + realized-past combination.
type TAMParticles struct {
	negMarker   *regexp.Regexp
	negValid    []patternMatch
	negInvalid  []patternMatch
	affValid    []patternMatch
}

type patternMatch struct {
	template string
	re       *regexp.Regexp
}

func newTAMParticles(resources Resources) (Metric, error) {
	path, ok := resources["tam_regex"]
	if !ok {
		return nil, fmt.Errorf("tam_particles: missing resource %q", "tam_regex")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tam_particles: failed to read %s: %w", path, err)
	}
	var rules tamRuleFile
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("tam_particles: failed to parse %s: %w", path, err)
	}

	verbPattern := rules.VerbPattern
	if verbPattern == "" {
		verbPattern = defaultVerbPattern
	}

	negMarker, err := regexp.Compile("(?i)" + rules.Neg.Marker)
	if err != nil {
		return nil, fmt.Errorf("tam_particles: invalid neg.marker: %w", err)
	}

	compile := func(templates []string) ([]patternMatch, error) {
		out := make([]patternMatch, 0, len(templates))
		for _, tmpl := range templates {
			expanded := strings.ReplaceAll(tmpl, "VERB", verbPattern)
			re, err := regexp.Compile("(?i)" + expanded)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", tmpl, err)
			}
			out = append(out, patternMatch{template: tmpl, re: re})
		}
		return out, nil
	}

	negValid, err := compile(rules.Neg.Valid)
	if err != nil {
		return nil, fmt.Errorf("tam_particles: %w", err)
	}
	negInvalid, err := compile(rules.Neg.Invalid)
	if err != nil {
		return nil, fmt.Errorf("tam_particles: %w", err)
	}
	affValid, err := compile(rules.Aff.Valid)
	if err != nil {
		return nil, fmt.Errorf("tam_particles: %w", err)
	}

	return &TAMParticles{
		negMarker:  negMarker,
		negValid:   negValid,
		negInvalid: negInvalid,
		affValid:   affValid,
	}, nil
}

func (m *TAMParticles) Name() string    { return "tam_particles" }
func (m *TAMParticles) Version() string { return "1.0" }

func matchingTemplates(matches []patternMatch, text string) []string {
	out := make([]string, 0)
	for _, p := range matches {
		if p.re.MatchString(text) {
			out = append(out, p.template)
		}
	}
	return out
}

func (m *TAMParticles) Score(text string, _ string) Result {
	if !m.negMarker.MatchString(text) {
		validPatterns := matchingTemplates(m.affValid, text)
		// Affirmative sentences are treated as valid whenever any aff.valid
		// pattern matches, or when none match at all (a stative sentence
		// needs no TAM particle). Intentionally lenient, see version note.
		score := 1.0
		details := map[string]any{
			"has_negative":   false,
			"valid":          true,
			"valid_patterns": validPatterns,
			"details":        fmt.Sprintf("Found %d TAM patterns", len(validPatterns)),
		}
		return Result{Name: m.Name(), Version: m.Version(), Score: clamp(score), Details: details}
	}

	validPatterns := matchingTemplates(m.negValid, text)
	invalidPatterns := matchingTemplates(m.negInvalid, text)
	isValid := len(validPatterns) > 0 && len(invalidPatterns) == 0

	var score float64
	switch {
	case isValid:
		score = 1.0
	case len(invalidPatterns) > 0:
		score = 0.0 // hard fail: e.g. "ʻAʻole ua"
	default:
		score = 0.5 // neither valid nor invalid pattern found
	}

	details := map[string]any{
		"has_negative":     true,
		"valid":            isValid,
		"valid_patterns":   validPatterns,
		"invalid_patterns": invalidPatterns,
		"details":          fmt.Sprintf("Found %d valid, %d invalid patterns", len(validPatterns), len(invalidPatterns)),
	}
	return Result{Name: m.Name(), Version: m.Version(), Score: clamp(score), Details: details}
}
