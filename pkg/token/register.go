package token

import "sync"

var (
	registryMu   sync.RWMutex
	nextCategory = maxBuiltin
	byCategory   = make(map[Category]string)
	byName       = make(map[string]Category)
)

// Register registers a lexer category with the given name and returns it.
// Dialects with extra lexical classes (backtick identifiers, dollar quoting)
// use it at init time. Registering the same name twice returns the same
// category; registering a built-in name returns the built-in.
func Register(name string) Category {
	if c, ok := builtinCategories[name]; ok {
		return c
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if c, ok := byName[name]; ok {
		return c
	}
	nextCategory++
	byCategory[nextCategory] = name
	byName[name] = nextCategory
	return nextCategory
}

func registeredName(c Category) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	name, ok := byCategory[c]
	return name, ok
}

func lookupRegistered(name string) (Category, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := byName[name]
	return c, ok
}

// Scanner reports the byte length of the leaf at the start of src, or 0
// when src does not start with one. The length must end on a rune boundary.
type Scanner func(src string) int

// LexRule adds a lexical class to the lexer. Rules are tried in order at
// each leaf boundary, before the built-in classes.
type LexRule struct {
	Category Category
	Scan     Scanner
}
