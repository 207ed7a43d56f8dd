package interpose

import (
	"github.com/pkg/errors"

	"github.com/eh-steve/interpose/libdl"
)

// Strategy locates the address of the original definition of a symbol,
// skipping the interposing unit itself. Which strategy does that safely is
// a property of the platform's link editor and is fixed at build time:
// probing at runtime is unsound, because on self-matching platforms a
// next-in-search-order lookup that lands back on the interposer is
// indistinguishable from one that found the original.
type Strategy interface {
	Resolve(symbol string) (uintptr, error)
}

type explicitLibrary struct {
	path string
}

// ExplicitLibrary resolves symbols by opening the named library and
// querying it directly. Required where the next-in-search-order query
// would match the interposing unit and recurse. The caller must name the
// exact library that defines the original; version-suffixed alternatives
// are never probed.
func ExplicitLibrary(path string) Strategy {
	return explicitLibrary{path: path}
}

func (e explicitLibrary) Resolve(symbol string) (uintptr, error) {
	if e.path == "" {
		return 0, errors.New("explicit-library strategy needs a library path: pass WithLibrary or set " + libraryEnv)
	}
	h, err := libdl.OpenCached(e.path)
	if err != nil {
		return 0, errors.Wrapf(err, "open %s", e.path)
	}
	addr, err := libdl.LookupSymbol(h, symbol)
	if err != nil {
		return 0, errors.Wrapf(err, "lookup %s in %s", symbol, e.path)
	}
	return addr, nil
}
