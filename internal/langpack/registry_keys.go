package langpack

import "strings"

// normalizeKey trims surrounding whitespace and lowercases a YAML-declared
// module or metric name, so language packs authored with inconsistent
// casing (`TAM_Particles` vs `tam_particles`) still resolve to the same
// registry entry. Grounded on `pkg/ml/category.go`'s
// normalize-then-fallback idiom for mapping loosely-specified external
// strings onto a fixed internal vocabulary.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeMetricRef returns ref with its Module and Name normalized for
// registry lookup.
func NormalizeMetricRef(ref MetricRef) MetricRef {
	return MetricRef{
		Module: normalizeKey(ref.Module),
		Name:   normalizeKey(ref.Name),
	}
}
