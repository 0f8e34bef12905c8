package geodesy

import "sync"

// registryEntry pairs a Constructor with the short description shown by
// diagnostics, mirroring the teacher's RegisterConvertLPToXY(name, desc,
// notes, ctor) call shape.
type registryEntry struct {
	description string
	constructor Constructor
}

var (
	registryMu sync.RWMutex
	registry   = map[string]registryEntry{}
)

// Register adds an operator constructor to the global registry under
// name. Domain kernels call this from an init() in the operations
// subpackage, following the teacher's blank-import registration pattern;
// Register panics on a duplicate name, since that can only be a build
// mistake, never a runtime condition.
func Register(name, description string, constructor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic("geodesy: duplicate operator registration for " + name)
	}
	registry[name] = registryEntry{description: description, constructor: constructor}
}

// lookup resolves an operator name to its Constructor.
func lookup(name string) (Constructor, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	entry, ok := registry[name]
	if !ok {
		return nil, &NotFoundError{Name: name, Hint: "no operator registered under this name"}
	}
	return entry.constructor, nil
}

// Registered lists every operator name currently registered, for
// diagnostics.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
