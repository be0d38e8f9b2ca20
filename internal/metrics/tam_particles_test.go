package metrics

import "testing"

func newTestTAMParticles(t *testing.T) Metric {
	t.Helper()
	path := writeTempJSON(t, `{
		"neg": {
			"marker": "ʻaʻole",
			"valid": ["ʻaʻole\\s+i\\s+VERB", "ʻaʻole\\s+e\\s+VERB\\s+ana"],
			"invalid": ["ʻaʻole\\s+ua\\s+VERB"]
		},
		"aff": {
			"valid": ["ua\\s+VERB", "e\\s+VERB\\s+ana", "e\\s+VERB"]
		}
	}`)
	m, err := newTAMParticles(Resources{"tam_regex": path})
	if err != nil {
		t.Fatalf("newTAMParticles: %v", err)
	}
	return m
}

func TestTAMParticlesAffirmativeAlwaysPasses(t *testing.T) {
	m := newTestTAMParticles(t)
	result := m.Score("Ua hele au.", "")
	if result.Score != 1.0 {
		t.Errorf("affirmative sentences are always lenient, got %v", result.Score)
	}
}

func TestTAMParticlesValidNegative(t *testing.T) {
	m := newTestTAMParticles(t)
	result := m.Score("ʻAʻole i hele au.", "")
	if result.Score != 1.0 {
		t.Errorf("expected valid negative to score 1.0, got %v (details %v)", result.Score, result.Details)
	}
}

func TestTAMParticlesInvalidNegative(t *testing.T) {
	m := newTestTAMParticles(t)
	result := m.Score("ʻAʻole ua hele au.", "")
	if result.Score != 0.0 {
		t.Errorf("expected forbidden negative+realized-past combo to score 0.0, got %v", result.Score)
	}
}

func TestTAMParticlesAmbiguousNegative(t *testing.T) {
	m := newTestTAMParticles(t)
	result := m.Score("ʻAʻole maikaʻi.", "")
	if result.Score != 0.5 {
		t.Errorf("expected ambiguous negative to score 0.5, got %v", result.Score)
	}
}
