package dialect

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// Dialect registry. It only maps names to dialects for command-line
// selection; parsing always takes a *Dialect explicitly.
var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]*Dialect)
)

var (
	// ErrDialectRequired is returned when a dialect is required but not provided.
	ErrDialectRequired = errors.New("dialect is required")

	// ErrUnknownDialect is returned when no dialect is registered under a name.
	ErrUnknownDialect = errors.New("unknown dialect")
)

// Get returns a dialect by name.
func Get(name string) (*Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[strings.ToLower(name)]
	return d, ok
}

// Register registers a dialect in the global registry.
// Called by dialect implementations in their init() functions.
func Register(d *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[strings.ToLower(d.Name)] = d
}

// List returns all registered dialect names (sorted).
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
