package metrics

import (
	"regexp"
	"strings"
)

func init() {
	Register("rlvr.metrics.english_subject_verb", "subject_verb_agreement", newSubjectVerb)
}

// Surface patterns tried per sentence, in order; every pattern that matches
// contributes one check (this mirrors the reference implementation's loop,
// which — despite its comment claiming "first valid pattern only" — takes
// the first match of *each* pattern in the list, not just the first
// pattern overall).
var subjectVerbPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(I|you|he|she|it|we|they)\s+(\w+)`),
	regexp.MustCompile(`(?i)\b(a|an|the)\s+(\w+)\s+(\w+)`),
	regexp.MustCompile(`(?i)\b(this|that|these|those|every|each)\s+(\w+)\s+(\w+)`),
	regexp.MustCompile(`(?i)^(\w+)\s+(\w+)`),
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

var svIgnoredVerbs = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"with": {}, "to": {}, "for": {}, "in": {}, "on": {}, "at": {},
}

var singularSubjects = map[string]struct{}{
	"he": {}, "she": {}, "it": {}, "this": {}, "that": {}, "everyone": {},
	"everybody": {}, "someone": {}, "somebody": {}, "anyone": {}, "anybody": {},
	"no one": {}, "nobody": {}, "each": {}, "either": {}, "neither": {},
	"one": {}, "every": {}, "a": {}, "an": {},
}

var pluralSubjects = map[string]struct{}{
	"they": {}, "we": {}, "these": {}, "those": {}, "many": {}, "few": {},
	"several": {}, "both": {}, "all": {}, "some": {}, "most": {},
}

var beSingular = map[string]struct{}{"is": {}, "was": {}}
var bePlural = map[string]struct{}{"are": {}, "were": {}}
var beFirstPerson = map[string]struct{}{"am": {}}

var haveSingular = map[string]struct{}{"has": {}}
var havePlural = map[string]struct{}{"have": {}}

var doSingular = map[string]struct{}{"does": {}}
var doPlural = map[string]struct{}{"do": {}}

var svAuxExceptions = map[string]struct{}{
	"was": {}, "is": {}, "has": {}, "does": {}, "can": {}, "will": {},
	"would": {}, "could": {}, "should": {}, "may": {}, "might": {},
}

// SubjectVerb checks English subject-verb agreement using a small set of
// surface heuristics. Known-imprecise: a signal, not a verdict.
type SubjectVerb struct{}

func newSubjectVerb(Resources) (Metric, error) {
	return &SubjectVerb{}, nil
}

func (m *SubjectVerb) Name() string    { return "subject_verb_agreement" }
func (m *SubjectVerb) Version() string { return "1.0" }

func identifySubjectType(subject string) string {
	lower := strings.ToLower(strings.TrimSpace(subject))
	switch lower {
	case "i":
		return "first_person_singular"
	case "you":
		return "second_person"
	}
	if _, ok := singularSubjects[lower]; ok {
		return "singular"
	}
	if _, ok := pluralSubjects[lower]; ok {
		return "plural"
	}
	if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") {
		return "plural"
	}
	if strings.Contains(lower, " and ") {
		return "plural"
	}
	return "singular"
}

func addSToVerb(verb string) string {
	lower := strings.ToLower(verb)
	if strings.HasSuffix(lower, "y") && len(verb) > 1 && !strings.ContainsRune("aeiou", rune(lower[len(lower)-2])) {
		return verb[:len(verb)-1] + "ies"
	}
	for _, suffix := range []string{"s", "x", "z", "ch", "sh"} {
		if strings.HasSuffix(lower, suffix) {
			return verb + "es"
		}
	}
	return verb + "s"
}

func isThirdPersonPronoun(subject string) bool {
	switch strings.ToLower(subject) {
	case "he", "she", "it":
		return true
	default:
		return false
	}
}

func checkVerbAgreement(subject, verb string) map[string]any {
	subjectType := identifySubjectType(subject)
	verbLower := strings.ToLower(verb)

	_, isBeSing := beSingular[verbLower]
	_, isBePlu := bePlural[verbLower]
	_, isBeFirst := beFirstPerson[verbLower]
	if isBeSing || isBePlu || isBeFirst {
		if subjectType == "singular" && isBePlu {
			suggestion := "was"
			if verbLower == "are" {
				suggestion = "is"
			}
			return map[string]any{"error": "singular_subject_plural_verb", "subject": subject, "verb": verb, "suggestion": suggestion}
		}
		if subjectType == "plural" && isBeSing {
			suggestion := "were"
			if verbLower == "is" {
				suggestion = "are"
			}
			return map[string]any{"error": "plural_subject_singular_verb", "subject": subject, "verb": verb, "suggestion": suggestion}
		}
		if subjectType == "first_person_singular" && verbLower != "am" && verbLower != "was" {
			suggestion := "was"
			if verbLower == "is" || verbLower == "are" {
				suggestion = "am"
			}
			return map[string]any{"error": "first_person_wrong_verb", "subject": subject, "verb": verb, "suggestion": suggestion}
		}
		return nil
	}

	_, isHaveSing := haveSingular[verbLower]
	_, isHavePlu := havePlural[verbLower]
	if isHaveSing || isHavePlu {
		if (subjectType == "singular" || subjectType == "first_person_singular") && verbLower == "have" {
			if isThirdPersonPronoun(subject) {
				return map[string]any{"error": "third_person_singular_have", "subject": subject, "verb": verb, "suggestion": "has"}
			}
			return nil
		}
		if subjectType == "plural" && verbLower == "has" {
			return map[string]any{"error": "plural_subject_has", "subject": subject, "verb": verb, "suggestion": "have"}
		}
		return nil
	}

	_, isDoSing := doSingular[verbLower]
	_, isDoPlu := doPlural[verbLower]
	if isDoSing || isDoPlu {
		if subjectType == "plural" && verbLower == "does" {
			return map[string]any{"error": "plural_subject_does", "subject": subject, "verb": verb, "suggestion": "do"}
		}
		if subjectType == "singular" && isThirdPersonPronoun(subject) && verbLower == "do" {
			return map[string]any{"error": "third_person_singular_do", "subject": subject, "verb": verb, "suggestion": "does"}
		}
		return nil
	}

	if subjectType == "plural" && strings.HasSuffix(verbLower, "s") && !strings.HasSuffix(verbLower, "ss") {
		base := verb
		if strings.HasSuffix(verb, "s") {
			base = verb[:len(verb)-1]
		}
		return map[string]any{"error": "plural_subject_s_verb", "subject": subject, "verb": verb, "suggestion": base}
	}

	if subjectType == "singular" && isThirdPersonPronoun(subject) {
		if !strings.HasSuffix(verbLower, "s") {
			if _, exempt := svAuxExceptions[verbLower]; !exempt {
				return map[string]any{"error": "third_person_singular_missing_s", "subject": subject, "verb": verb, "suggestion": addSToVerb(verb)}
			}
		}
	}

	return nil
}

func truncateSentence(sentence string) string {
	if len(sentence) > 50 {
		return sentence[:50] + "..."
	}
	return sentence
}

func (m *SubjectVerb) Score(text string, _ string) Result {
	sentences := sentenceSplitRe.Split(strings.TrimSpace(text), -1)

	var checks []map[string]any
	var errs []map[string]any

	for _, sent := range sentences {
		sent = strings.TrimSpace(sent)
		if sent == "" {
			continue
		}

		for _, pattern := range subjectVerbPatterns {
			match := pattern.FindStringSubmatch(sent)
			if match == nil {
				continue
			}
			groups := match[1:]

			var subject, verb string
			switch len(groups) {
			case 2:
				subject, verb = groups[0], groups[1]
			case 3:
				subject = groups[0] + " " + groups[1]
				verb = groups[2]
			default:
				continue
			}

			if _, skip := svIgnoredVerbs[strings.ToLower(verb)]; skip {
				continue
			}

			check := map[string]any{
				"subject":  subject,
				"verb":     verb,
				"sentence": truncateSentence(sent),
			}
			checks = append(checks, check)

			if err := checkVerbAgreement(subject, verb); err != nil {
				err["sentence"] = truncateSentence(sent)
				errs = append(errs, err)
			}
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

	limitedErrs := errs
	if len(limitedErrs) > 5 {
		limitedErrs = limitedErrs[:5]
	}
	if limitedErrs == nil {
		limitedErrs = []map[string]any{}
	}

	return Result{
		Name:    m.Name(),
		Version: m.Version(),
		Score:   clamp(score),
		Details: map[string]any{
			"checks_performed": len(checks),
			"errors_found":     len(errs),
			"errors":           limitedErrs,
		},
	}
}
