package metrics

import "testing"

func TestRegistryLooksUpRegisteredMetric(t *testing.T) {
	m, err := New("rlvr.metrics.diacritics", "diacritics", Resources{"lex_diacritics": writeTempLexicon(t, "mahalo")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Name() != "diacritics" {
		t.Errorf("expected metric name %q, got %q", "diacritics", m.Name())
	}
}

func TestRegistryUnknownModule(t *testing.T) {
	if _, err := New("does.not.exist", "whatever", nil); err == nil {
		t.Error("expected an error for an unknown module")
	}
}

func TestRegistryUnknownMetric(t *testing.T) {
	if _, err := New("rlvr.metrics.diacritics", "whatever", nil); err == nil {
		t.Error("expected an error for an unknown metric within a known module")
	}
}

func TestRegistryDuplicateRegistrationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic on duplicate registration")
		}
	}()
	Register("rlvr.metrics.diacritics", "diacritics", newDiacritics)
}
