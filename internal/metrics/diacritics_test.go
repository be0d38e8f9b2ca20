package metrics

import "testing"

func TestDiacriticsCorrectFormScoresOne(t *testing.T) {
	path := writeTempLexicon(t, "# required forms", "ʻaʻole", "mahalo")
	m, err := newDiacritics(Resources{"lex_diacritics": path})
	if err != nil {
		t.Fatalf("newDiacritics: %v", err)
	}
	result := m.Score("Mahalo nui loa.", "")
	if result.Score != 1.0 {
		t.Errorf("expected score 1.0, got %v (details %v)", result.Score, result.Details)
	}
}

func TestDiacriticsMissingOkinaPenalized(t *testing.T) {
	path := writeTempLexicon(t, "ʻaʻole")
	m, err := newDiacritics(Resources{"lex_diacritics": path})
	if err != nil {
		t.Fatalf("newDiacritics: %v", err)
	}
	result := m.Score("Aole pono.", "")
	if result.Score != 0.0 {
		t.Errorf("expected score 0.0 for missing ʻokina, got %v (details %v)", result.Score, result.Details)
	}
}

func TestDiacriticsVacuousPassWhenNothingToCheck(t *testing.T) {
	path := writeTempLexicon(t, "ʻaʻole")
	m, err := newDiacritics(Resources{"lex_diacritics": path})
	if err != nil {
		t.Fatalf("newDiacritics: %v", err)
	}
	result := m.Score("Hello there.", "")
	if result.Score != 1.0 {
		t.Errorf("expected vacuous pass, got %v", result.Score)
	}
	if result.Details["checked"] != 0 {
		t.Errorf("expected zero checks, got %v", result.Details["checked"])
	}
}
