package metrics

import "testing"

func TestSubjectVerbScoreAgreement(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantScore float64
	}{
		{"simple correct", "She is happy.", 1.0},
		{"third person missing s", "He go to the store.", 0.0},
		{"plural subject singular verb", "They is here.", 0.0},
		{"first person correct", "I am ready.", 1.0},
		{"plural have correct", "We have finished.", 1.0},
		{"plural subject has", "They has arrived.", 0.0},
	}

	m, err := newSubjectVerb(nil)
	if err != nil {
		t.Fatalf("newSubjectVerb: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := m.Score(tt.text, "")
			if result.Score != tt.wantScore {
				t.Errorf("Score(%q) = %v, want %v (details: %v)", tt.text, result.Score, tt.wantScore, result.Details)
			}
		})
	}
}

func TestSubjectVerbNoCheckableSentence(t *testing.T) {
	m, err := newSubjectVerb(nil)
	if err != nil {
		t.Fatalf("newSubjectVerb: %v", err)
	}
	result := m.Score("", "")
	if result.Score != 1.0 {
		t.Errorf("expected vacuous pass score of 1.0, got %v", result.Score)
	}
	if result.Details["checks_performed"] != 0 {
		t.Errorf("expected zero checks, got %v", result.Details["checks_performed"])
	}
}

func TestAddSToVerb(t *testing.T) {
	tests := []struct {
		verb string
		want string
	}{
		{"run", "runs"},
		{"try", "tries"},
		{"watch", "watches"},
		{"fix", "fixes"},
		{"buzz", "buzzes"},
		{"play", "plays"},
	}
	for _, tt := range tests {
		if got := addSToVerb(tt.verb); got != tt.want {
			t.Errorf("addSToVerb(%q) = %q, want %q", tt.verb, got, tt.want)
		}
	}
}
