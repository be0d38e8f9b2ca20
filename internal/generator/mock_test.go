package generator

import (
	"context"
	"strings"
	"testing"
)

func TestMockKnownSentenceReturnsFixtures(t *testing.T) {
	m := &Mock{}
	got, err := m.Generate(context.Background(), "Do not go there.", 4)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := mockTranslations["Do not go there."]
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestMockPadsBeyondFixtureCountWithDegradedVariants(t *testing.T) {
	m := &Mock{}
	got, err := m.Generate(context.Background(), "It is not raining.", 6)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("expected 6 candidates, got %d", len(got))
	}
	for i, c := range got[4:] {
		if strings.ContainsAny(c, "ʻāō") {
			t.Errorf("padded candidate %d should have diacritics stripped, got %q", i, c)
		}
	}
}

func TestMockTruncatesBelowFixtureCount(t *testing.T) {
	m := &Mock{}
	got, err := m.Generate(context.Background(), "The children are playing.", 2)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
}

func TestMockUnknownSentenceProducesGenericFiller(t *testing.T) {
	m := &Mock{}
	got, err := m.Generate(context.Background(), "The dog barks loudly.", 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	want := []string{
		"Hawaiian translation of: The dog barks loudly.",
		"Ke The dog barks loudly. nei.",
		"ʻO ka The dog barks loudly..",
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("candidate %d: expected %q, got %q", i, w, got[i])
		}
	}
}

func TestMockUnknownSentenceBeyondTemplateCountNumbersFiller(t *testing.T) {
	m := &Mock{}
	got, err := m.Generate(context.Background(), "The dog barks loudly.", 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 candidates, got %d", len(got))
	}
	if got[4] != "Translation 5: The dog barks loudly." {
		t.Errorf("expected numbered filler, got %q", got[4])
	}
}

func TestMockRegisteredUnderKind(t *testing.T) {
	g, err := New("mock", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := g.(*Mock); !ok {
		t.Errorf("expected *Mock, got %T", g)
	}
}
