// Package langpack loads immutable, per-language configuration bundles
// (metrics, weights, generator descriptor, resource paths) from YAML and
// caches them for the lifetime of the process.
package langpack

import (
	"fmt"
	"sync"

	"github.com/lokahilabs/rlvr-gym/internal/metrics"
)

// MetricRef names one metric to instantiate: which registry module it
// belongs to, and which name within that module.
type MetricRef struct {
	Module string `yaml:"module"`
	Name   string `yaml:"name"`
}

// GeneratorConfig describes which candidate generator adapter to build and
// the parameters it should be constructed with (prompt templates, model
// name, API base URL, and so on — adapter-specific).
type GeneratorConfig struct {
	Kind   string            `yaml:"kind"`
	Params map[string]string `yaml:"params"`
}

// Pack is one language's fully-resolved, immutable configuration: ready to
// build metrics, a generator, and a bandit from.
type Pack struct {
	Code        string             `yaml:"code"`
	DisplayName string             `yaml:"display_name"`
	Metrics     []MetricRef        `yaml:"metrics"`
	Weights     map[string]float64 `yaml:"weights"`
	Generator   GeneratorConfig    `yaml:"generator"`
	Resources   map[string]string  `yaml:"resources"`

	// dir is the directory the pack was loaded from, used to resolve
	// relative resource paths.
	dir string
}

var (
	cacheMu sync.RWMutex
	cache   = map[string]*Pack{}
)

// Get returns the cached Pack for code, loading and caching it on first
// use from one of the candidate config directories (see FindConfigDir).
func Get(code string) (*Pack, error) {
	cacheMu.RLock()
	pack, ok := cache[code]
	cacheMu.RUnlock()
	if ok {
		return pack, nil
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	// Another goroutine may have populated the cache while we waited for
	// the write lock.
	if pack, ok := cache[code]; ok {
		return pack, nil
	}

	dir := FindConfigDir(code)
	if dir == "" {
		return nil, fmt.Errorf("langpack: no config directory found for language %q", code)
	}

	pack, err := Load(dir, code)
	if err != nil {
		return nil, err
	}
	cache[code] = pack
	return pack, nil
}

// BuildMetrics instantiates every metric the pack declares, in declared
// order, resolving each (module, name) pair through the metrics registry.
func (p *Pack) BuildMetrics() ([]metrics.Metric, error) {
	resources := metrics.Resources(p.Resources)

	built := make([]metrics.Metric, 0, len(p.Metrics))
	for _, ref := range p.Metrics {
		ref = NormalizeMetricRef(ref)
		m, err := metrics.New(ref.Module, ref.Name, resources)
		if err != nil {
			return nil, fmt.Errorf("langpack %q: %w", p.Code, err)
		}
		built = append(built, m)
	}
	return built, nil
}
