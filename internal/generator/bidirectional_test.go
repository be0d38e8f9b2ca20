package generator

import (
	"context"
	"testing"
)

func TestDetectDirectionHawaiianDiacriticMark(t *testing.T) {
	if got := detectDirection("Ua pau ka hōʻike."); got != directionHawToEn {
		t.Errorf("expected %q, got %q", directionHawToEn, got)
	}
}

func TestDetectDirectionEnglishDefault(t *testing.T) {
	if got := detectDirection("We already finished the report."); got != directionEnToHaw {
		t.Errorf("expected %q, got %q", directionEnToHaw, got)
	}
}

func TestDetectDirectionHighFunctionWordDensityWithoutDiacritics(t *testing.T) {
	if got := detectDirection("ke ka na he ua e i o no ma aloha"); got != directionHawToEn {
		t.Errorf("expected %q when >20%% words are Hawaiian function words, got %q", directionHawToEn, got)
	}
}

func TestPostProcessEnglishCapitalizesAndPunctuates(t *testing.T) {
	got := postProcessEnglish("the report is done")
	want := "The report is done."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPostProcessEnglishLeavesExistingPunctuation(t *testing.T) {
	got := postProcessEnglish("Already punctuated!")
	if got != "Already punctuated!" {
		t.Errorf("unexpected mutation: %q", got)
	}
}

// A leading quote is not itself a lowercase letter, so capitalization never
// fires on it — it only strips after ensuring terminal punctuation, matching
// the reference implementation's behavior exactly (a known limitation: the
// word after a leading quote is never capitalized by this pass).
func TestPostProcessEnglishLeadingQuoteSkipsCapitalization(t *testing.T) {
	got := postProcessEnglish(`"the report is done`)
	want := "the report is done."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// Punctuation is ensured before quotes are stripped: the added period lands
// after the closing quote, and only the leading quote is trimmed away since
// Trim only peels matching characters contiguously from each edge.
func TestPostProcessEnglishPunctuatesBeforeStrippingQuotes(t *testing.T) {
	got := postProcessEnglish(`"hello"`)
	want := `hello".`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

type fakeCompleter struct {
	responses []string
	calls     int
	err       error
}

func (f *fakeCompleter) complete(_ context.Context, _ string, _ float64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	r := f.responses[f.calls%len(f.responses)]
	f.calls++
	return r, nil
}

func TestBidirectionalDedupesCandidates(t *testing.T) {
	b := &Bidirectional{
		prompts: map[string]string{directionEnToHaw: ""},
		client:  &fakeCompleter{responses: []string{"same", "same", "different"}},
	}
	got, err := b.Generate(context.Background(), "We already finished the report.", 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 unique candidates, got %d: %v", len(got), got)
	}
}

func TestBidirectionalPostProcessesHawToEnDirection(t *testing.T) {
	b := &Bidirectional{
		prompts: map[string]string{directionHawToEn: ""},
		client:  &fakeCompleter{responses: []string{"done already"}},
	}
	got, err := b.Generate(context.Background(), "Ua pau ka hōʻike.", 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(got) != 1 || got[0] != "Done already." {
		t.Errorf("expected post-processed English candidate, got %v", got)
	}
}
