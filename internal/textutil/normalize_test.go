package textutil

import "testing"

func TestNormalizeCollapsesWhitespaceAndTrims(t *testing.T) {
	got := Normalize("  Ua   pau  ka  hōʻike.  ", true)
	want := "Ua pau ka hōʻike."
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalizeLowercasesByDefault(t *testing.T) {
	got := Normalize("Aloha Kākou", false)
	if got != "aloha kākou" {
		t.Errorf("Normalize() = %q, want lowercase", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	text := "  ʻAʻole  e  ua  ana.  "
	once := Normalize(text, true)
	twice := Normalize(once, true)
	if once != twice {
		t.Errorf("Normalize not idempotent: %q != %q", once, twice)
	}
}

func TestNormalizeVariantsMapsApostropheFamily(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"straight quote", "ho'ike", "hoʻike"},
		{"left curly quote", "ho‘ike", "hoʻike"},
		{"right curly quote", "ho’ike", "hoʻike"},
		{"backtick", "ho`ike", "hoʻike"},
		{"modifier letter apostrophe", "hoʼike", "hoʻike"},
		{"prime", "ho′ike", "hoʻike"},
		{"already canonical", "hoʻike", "hoʻike"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeVariants(tt.input); got != tt.want {
				t.Errorf("NormalizeVariants(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripDiacriticsRemovesOkinaAndMacrons(t *testing.T) {
	got := StripDiacritics("hōʻike")
	if got != "hoike" {
		t.Errorf("StripDiacritics() = %q, want %q", got, "hoike")
	}
}

func TestStripDiacriticsIdempotent(t *testing.T) {
	text := "Hōʻike Āēīōū"
	once := StripDiacritics(text)
	twice := StripDiacritics(once)
	if once != twice {
		t.Errorf("StripDiacritics not idempotent: %q != %q", once, twice)
	}
}

func TestStripDiacriticsPreservesPlainText(t *testing.T) {
	if got := StripDiacritics("hello world"); got != "hello world" {
		t.Errorf("StripDiacritics() changed plain text: %q", got)
	}
}
