package metrics

import "testing"

func TestPunctuationCleanSentenceScoresOne(t *testing.T) {
	m, err := newPunctuation(nil)
	if err != nil {
		t.Fatalf("newPunctuation: %v", err)
	}
	result := m.Score("The quick brown fox jumps over the lazy dog.", "")
	if result.Score != 1.0 {
		t.Errorf("expected score 1.0, got %v (details: %v)", result.Score, result.Details)
	}
}

func TestPunctuationMissingTerminalPunctuation(t *testing.T) {
	m, err := newPunctuation(nil)
	if err != nil {
		t.Fatalf("newPunctuation: %v", err)
	}
	result := m.Score("The quick brown fox jumps over the lazy dog", "")
	if result.Score >= 1.0 {
		t.Errorf("expected a penalized score for missing terminal punctuation, got %v", result.Score)
	}
}

func TestPunctuationMissingCapitalAtStart(t *testing.T) {
	m, err := newPunctuation(nil)
	if err != nil {
		t.Fatalf("newPunctuation: %v", err)
	}
	result := m.Score("the dog ran.", "")
	if result.Score >= 1.0 {
		t.Errorf("expected a penalized score for missing capital at start, got %v", result.Score)
	}
}

func TestPunctuationAbbreviationSkipsCapitalizationCheck(t *testing.T) {
	m, err := newPunctuation(nil)
	if err != nil {
		t.Fatalf("newPunctuation: %v", err)
	}
	result := m.Score("I saw Dr. smith at the clinic.", "")
	for _, e := range result.Details["errors"].([]map[string]any) {
		if e["type"] == "missing_capital_after_period" {
			t.Errorf("abbreviation should suppress missing_capital_after_period, got %v", e)
		}
	}
}

func TestPunctuationQuoteBeforePeriodOnlyFlaggedAtEndOfText(t *testing.T) {
	m, err := newPunctuation(nil)
	if err != nil {
		t.Fatalf("newPunctuation: %v", err)
	}

	midText := m.Score(`He said "Stop". Then he left.`, "")
	for _, e := range midText.Details["errors"].([]map[string]any) {
		if e["type"] == "incorrect_quote_punctuation" {
			t.Errorf("mid-text quoted dialogue should not be flagged, got %v", e)
		}
	}

	endOfText := m.Score(`She said "stop".`, "")
	found := false
	for _, e := range endOfText.Details["errors"].([]map[string]any) {
		if e["type"] == "incorrect_quote_punctuation" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected incorrect_quote_punctuation when the quote-period sequence ends the text, got %v", endOfText.Details["errors"])
	}
}

func TestPunctuationDoubledPunctuationFlagged(t *testing.T) {
	m, err := newPunctuation(nil)
	if err != nil {
		t.Fatalf("newPunctuation: %v", err)
	}
	result := m.Score("Wait what??", "")
	found := false
	for _, e := range result.Details["errors"].([]map[string]any) {
		if e["type"] == "repeated_punctuation" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a repeated_punctuation error, got %v", result.Details["errors"])
	}
}
