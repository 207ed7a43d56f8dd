package interpose

import (
	"sort"

	"github.com/puzpuzpuz/xsync/v3"
)

// registry maps each interposed symbol name to its signature. One unit
// owns a symbol name exactly once: the dynamic linker binds the exported
// entry point to a single definition, so a second descriptor could never
// be reached and would only hide the first.
var registry = xsync.NewMapOf[string, string]()

func registerSymbol(name, signature string) {
	if _, dup := registry.LoadOrStore(name, signature); dup {
		panic("interpose: symbol " + name + " is already interposed in this unit")
	}
}

// Symbols lists the symbol names interposed by this unit, sorted.
func Symbols() []string {
	names := make([]string, 0, registry.Size())
	registry.Range(func(name string, _ string) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}
