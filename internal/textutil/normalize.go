// Package textutil provides the Unicode normalization and tokenization
// primitives shared by every metric and generator adapter.
package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// okinaVariants lists every apostrophe-family rune the generator pipeline
// might emit in place of the true Hawaiian glottal stop (U+02BB).
var okinaVariants = []string{
	"'", "‘", "’", "`", "ʼ", "′",
}

const okina = "ʻ"

var macronToPlain = map[rune]rune{
	'ā': 'a', 'ē': 'e', 'ī': 'i', 'ō': 'o', 'ū': 'u',
	'Ā': 'A', 'Ē': 'E', 'Ī': 'I', 'Ō': 'O', 'Ū': 'U',
}

// Normalize applies NFC, collapses runs of whitespace to a single space,
// trims the result, and optionally lowercases it.
func Normalize(text string, preserveCase bool) string {
	composed := norm.NFC.String(text)
	fields := strings.Fields(composed)
	joined := strings.Join(fields, " ")
	if !preserveCase {
		joined = strings.ToLower(joined)
	}
	return joined
}

// NormalizeVariants maps every apostrophe-family rune to the canonical
// ʻokina (U+02BB), then applies NFC.
func NormalizeVariants(text string) string {
	replaced := text
	for _, v := range okinaVariants {
		replaced = strings.ReplaceAll(replaced, v, okina)
	}
	return norm.NFC.String(replaced)
}

// StripDiacritics removes the ʻokina and replaces macron vowels with their
// plain counterparts.
func StripDiacritics(text string) string {
	text = strings.ReplaceAll(text, okina, "")
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if plain, ok := macronToPlain[r]; ok {
			b.WriteRune(plain)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
