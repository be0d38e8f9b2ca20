package httpapi

import (
	"fmt"
	"os"
	"path/filepath"
)

// discoverLanguageCodes lists every subdirectory of dir containing a
// "<code>.yaml" file. If dir is empty, it tries the same candidate
// locations langpack.FindConfigDir searches, using the first one that
// exists at all (unlike FindConfigDir, which needs a specific code to
// probe for).
func discoverLanguageCodes(dir string) ([]string, error) {
	if dir == "" {
		dir = firstExistingDir("./lang", "../lang", "/etc/rlvr-gym/lang", "/app/lang")
	}
	if dir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("httpapi: failed to list language dir %s: %w", dir, err)
	}

	var codes []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		code := entry.Name()
		if _, err := os.Stat(filepath.Join(dir, code, code+".yaml")); err == nil {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

func firstExistingDir(candidates ...string) string {
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return c
		}
	}
	return ""
}
