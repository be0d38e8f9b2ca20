package metrics

import (
	"regexp"
	"strings"
)

func init() {
	Register("rlvr.metrics.english_punctuation", "punctuation", newPunctuation)
}

var sentenceEndings = map[byte]struct{}{'.': {}, '!': {}, '?': {}}

var commonAbbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "sr": {}, "jr": {},
	"jan": {}, "feb": {}, "mar": {}, "apr": {}, "jun": {}, "jul": {}, "aug": {},
	"sep": {}, "sept": {}, "oct": {}, "nov": {}, "dec": {},
	"mon": {}, "tue": {}, "tues": {}, "wed": {}, "thu": {}, "thurs": {}, "fri": {}, "sat": {}, "sun": {},
	"st": {}, "nd": {}, "rd": {}, "th": {},
	"vs": {}, "etc": {}, "inc": {}, "ltd": {}, "co": {},
}

var multiPunctRe = regexp.MustCompile(`[.!?]{2,}`)
var missingCapAfterPeriodRe = regexp.MustCompile(`[.!?]\s+[a-z]`)
var randomMidWordCapRe = regexp.MustCompile(`\b\w*[a-z][A-Z]\w*\b`)
var commaNoSpaceRe = regexp.MustCompile(`,[a-zA-Z0-9]`)
var spaceBeforeCommaRe = regexp.MustCompile(`\s,`)
var doubleCommaRe = regexp.MustCompile(`,,`)

var punctSentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// Punctuation checks English text for missing terminal punctuation, stray
// or doubled punctuation, capitalization slips, and comma spacing.
type Punctuation struct{}

func newPunctuation(Resources) (Metric, error) {
	return &Punctuation{}, nil
}

func (m *Punctuation) Name() string    { return "punctuation" }
func (m *Punctuation) Version() string { return "1.0" }

func (m *Punctuation) checkSentencePunctuation(text string) []map[string]any {
	errs := make([]map[string]any, 0)

	trimmed := strings.TrimSpace(text)
	if trimmed != "" {
		last := trimmed[len(trimmed)-1]
		if _, ok := sentenceEndings[last]; !ok {
			errs = append(errs, map[string]any{
				"type": "missing_terminal_punctuation",
				"note": "sentence does not end with . ! or ?",
			})
		}
	}

	if trimmed != "" && (strings.HasSuffix(trimmed, `".`) || strings.HasSuffix(trimmed, `'.`)) {
		errs = append(errs, map[string]any{
			"type":     "incorrect_quote_punctuation",
			"found":    trimmed[len(trimmed)-2:],
			"position": len(trimmed) - 2,
		})
	}

	for _, loc := range multiPunctRe.FindAllStringIndex(text, -1) {
		found := text[loc[0]:loc[1]]
		if found == "?!" || found == "!?" || found == "..." {
			continue
		}
		errs = append(errs, map[string]any{
			"type":     "repeated_punctuation",
			"found":    found,
			"position": loc[0],
		})
	}

	return errs
}

func endsWithAbbreviation(before string) bool {
	word := strings.TrimRight(strings.TrimSpace(before), ".!?")
	fields := strings.Fields(word)
	if len(fields) == 0 {
		return false
	}
	last := strings.ToLower(fields[len(fields)-1])
	_, ok := commonAbbreviations[last]
	return ok
}

func (m *Punctuation) checkCapitalization(text string) []map[string]any {
	errs := make([]map[string]any, 0)

	trimmed := strings.TrimLeft(text, " \t\n")
	if trimmed != "" {
		first := []rune(trimmed)[0]
		if first >= 'a' && first <= 'z' {
			errs = append(errs, map[string]any{
				"type": "missing_capital_at_start",
				"note": "text should start with a capital letter",
			})
		}
	}

	for _, loc := range missingCapAfterPeriodRe.FindAllStringIndex(text, -1) {
		before := text[:loc[0]+1]
		if endsWithAbbreviation(before) {
			continue
		}
		errs = append(errs, map[string]any{
			"type":     "missing_capital_after_period",
			"found":    text[loc[0]:loc[1]],
			"position": loc[0],
		})
	}

	for _, loc := range randomMidWordCapRe.FindAllStringIndex(text, -1) {
		word := text[loc[0]:loc[1]]
		lower := strings.ToLower(word)
		if len(word) >= 4 && (strings.HasPrefix(lower, "i") || strings.HasPrefix(lower, "e")) {
			continue
		}
		errs = append(errs, map[string]any{
			"type":     "unexpected_midword_capital",
			"found":    word,
			"position": loc[0],
		})
	}

	return errs
}

func (m *Punctuation) checkCommaUsage(text string) []map[string]any {
	errs := make([]map[string]any, 0)

	for _, loc := range commaNoSpaceRe.FindAllStringIndex(text, -1) {
		errs = append(errs, map[string]any{
			"type":     "missing_space_after_comma",
			"found":    text[loc[0]:loc[1]],
			"position": loc[0],
		})
	}
	for _, loc := range spaceBeforeCommaRe.FindAllStringIndex(text, -1) {
		errs = append(errs, map[string]any{
			"type":     "space_before_comma",
			"found":    text[loc[0]:loc[1]],
			"position": loc[0],
		})
	}
	for _, loc := range doubleCommaRe.FindAllStringIndex(text, -1) {
		errs = append(errs, map[string]any{
			"type":     "doubled_comma",
			"found":    text[loc[0]:loc[1]],
			"position": loc[0],
		})
	}

	return errs
}

func (m *Punctuation) Score(text string, _ string) Result {
	sentenceErrs := m.checkSentencePunctuation(text)
	capErrs := m.checkCapitalization(text)
	commaErrs := m.checkCommaUsage(text)

	allErrs := make([]map[string]any, 0, len(sentenceErrs)+len(capErrs)+len(commaErrs))
	allErrs = append(allErrs, sentenceErrs...)
	allErrs = append(allErrs, capErrs...)
	allErrs = append(allErrs, commaErrs...)

	sentences := punctSentenceSplitRe.Split(strings.TrimSpace(text), -1)
	commas := strings.Count(text, ",")
	totalChecks := len(sentences)*2 + commas + 1

	denom := totalChecks
	if denom == 0 {
		denom = 1
	}
	score := 1.0 - float64(len(allErrs))/float64(denom)
	if score < 0 {
		score = 0
	}

	limited := allErrs
	if len(limited) > 10 {
		limited = limited[:10]
	}

	return Result{
		Name:    m.Name(),
		Version: m.Version(),
		Score:   clamp(score),
		Details: map[string]any{
			"total_checks": totalChecks,
			"errors_found": len(allErrs),
			"errors":       limited,
		},
	}
}
