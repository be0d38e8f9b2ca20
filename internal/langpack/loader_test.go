package langpack

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestPack(t *testing.T, dir, code, yamlBody string, resourceFiles map[string]string) {
	t.Helper()
	packDir := filepath.Join(dir, code)
	if err := os.MkdirAll(packDir, 0o755); err != nil {
		t.Fatalf("failed to create pack dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(packDir, code+".yaml"), []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("failed to write pack yaml: %v", err)
	}
	for name, content := range resourceFiles {
		if err := os.WriteFile(filepath.Join(packDir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write resource file %s: %v", name, err)
		}
	}
}

func TestLoadResolvesRelativeResourcePaths(t *testing.T) {
	dir := t.TempDir()
	writeTestPack(t, dir, "haw", `
code: haw
display_name: Hawaiian
metrics:
  - module: rlvr.metrics.diacritics
    name: diacritics
weights:
  diacritics: 1.0
generator:
  kind: mock
  params: {}
resources:
  lex_diacritics: lex_diacritics.txt
`, map[string]string{"lex_diacritics.txt": "mahalo\n"})

	pack, err := Load(dir, "haw")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantPath := filepath.Join(dir, "haw", "lex_diacritics.txt")
	if pack.Resources["lex_diacritics"] != wantPath {
		t.Errorf("expected resolved path %q, got %q", wantPath, pack.Resources["lex_diacritics"])
	}
	if _, err := os.Stat(pack.Resources["lex_diacritics"]); err != nil {
		t.Errorf("resolved resource path should exist: %v", err)
	}
}

func TestLoadBuildsMetrics(t *testing.T) {
	dir := t.TempDir()
	writeTestPack(t, dir, "haw", `
code: haw
metrics:
  - module: rlvr.metrics.diacritics
    name: diacritics
weights:
  diacritics: 1.0
generator:
  kind: mock
resources:
  lex_diacritics: lex_diacritics.txt
`, map[string]string{"lex_diacritics.txt": "mahalo\n"})

	pack, err := Load(dir, "haw")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	built, err := pack.BuildMetrics()
	if err != nil {
		t.Fatalf("BuildMetrics: %v", err)
	}
	if len(built) != 1 {
		t.Fatalf("expected 1 metric, got %d", len(built))
	}
	if built[0].Name() != "diacritics" {
		t.Errorf("expected metric name diacritics, got %q", built[0].Name())
	}
}

func TestGetCachesByLanguageCode(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	dir := t.TempDir()
	writeTestPack(t, dir, "en", `
code: en
metrics:
  - module: rlvr.metrics.english_articles
    name: articles_a_an
weights:
  articles_a_an: 1.0
generator:
  kind: mock
resources: {}
`, nil)
	t.Setenv("RLVR_LANG_CONFIG_DIR", dir)

	first, err := Get("en")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	second, err := Get("en")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if first != second {
		t.Error("expected Get to return the same cached *Pack instance on repeated calls")
	}
}

func TestGetUnknownLanguageErrors(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("RLVR_LANG_CONFIG_DIR", t.TempDir())

	if _, err := Get("xx"); err == nil {
		t.Error("expected an error for a language with no config directory")
	}
}
