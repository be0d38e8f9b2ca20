package langpack

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load parses `<dir>/<code>/<code>.yaml` into a Pack, resolving every
// resource path relative to that file's directory.
func Load(dir, code string) (*Pack, error) {
	path := filepath.Join(dir, code, code+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("langpack: failed to read %s: %w", path, err)
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("langpack: failed to parse %s: %w", path, err)
	}

	pack.dir = filepath.Dir(path)
	if pack.Code == "" {
		pack.Code = code
	}

	resolved := make(map[string]string, len(pack.Resources))
	for key, rel := range pack.Resources {
		if filepath.IsAbs(rel) {
			resolved[key] = rel
		} else {
			resolved[key] = filepath.Join(pack.dir, rel)
		}
	}
	pack.Resources = resolved

	return &pack, nil
}

// FindConfigDir searches, in order, an environment-variable override and a
// fixed list of relative candidate paths for a directory containing
// `<code>/<code>.yaml`. Returns "" if none is found. Grounded on
// `pkg/ml/seed_loader.go`'s FindConfigDir: env override first, then a
// descending list of likely locations so the binary works whether it's run
// from the repo root, a built binary's directory, or a container image.
func FindConfigDir(code string) string {
	candidates := []string{
		os.Getenv("RLVR_LANG_CONFIG_DIR"),
		"./lang",
		"../lang",
		"/etc/rlvr-gym/lang",
		"/app/lang",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		testPath := filepath.Join(candidate, code, code+".yaml")
		if _, err := os.Stat(testPath); err == nil {
			return candidate
		}
	}

	return ""
}

// Reset clears the process-wide pack cache. Intended for tests that need a
// clean slate between cases exercising Get's caching behavior.
func Reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = map[string]*Pack{}
}
