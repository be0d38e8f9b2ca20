package metrics

import "fmt"

// Constructor builds one Metric from a language pack's resolved resources.
type Constructor func(resources Resources) (Metric, error)

// registry maps a (module, name) pair straight to a constructor. This is
// the systems-language replacement for the reference implementation's
// attribute-introspection module loader: adding a metric means adding a
// Register call, never touching the language pack loader.
var registry = map[string]map[string]Constructor{}

// Register installs a constructor for metric name under module. Intended to
// be called from each metric file's init(). Panics on a duplicate
// registration, the same defensive posture as a package-init ordering bug
// in the reference registry this pattern replaces.
func Register(module, name string, ctor Constructor) {
	byName, ok := registry[module]
	if !ok {
		byName = make(map[string]Constructor)
		registry[module] = byName
	}
	if _, exists := byName[name]; exists {
		panic(fmt.Sprintf("metrics: duplicate registration for %s/%s", module, name))
	}
	byName[name] = ctor
}

// New instantiates the metric registered under (module, name), or returns
// an error if no such constructor has been registered.
func New(module, name string, resources Resources) (Metric, error) {
	byName, ok := registry[module]
	if !ok {
		return nil, fmt.Errorf("metrics: unknown module %q", module)
	}
	ctor, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("metrics: unknown metric %q in module %q", name, module)
	}
	return ctor(resources)
}
