// Package soinspect answers whether a shared object dynamically exports a
// symbol. Unit authors use it to validate the library identifier handed to
// the explicit-library strategy before the unit is deployed under a target
// process, where a wrong identifier is only discovered as a fatal
// resolution failure.
package soinspect

import (
	"debug/elf"
	"debug/macho"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

const cacheSize = 16

// Inspector caches the exported dynamic symbols of the objects it has
// parsed, keyed by path.
type Inspector struct {
	cache *lru.Cache[string, map[string]struct{}]
}

func New() *Inspector {
	c, _ := lru.New[string, map[string]struct{}](cacheSize)
	return &Inspector{cache: c}
}

// Exports reports whether the object at path dynamically exports symbol.
// The name is the one dlsym would be given, without the Mach-O leading
// underscore.
func (i *Inspector) Exports(path, symbol string) (bool, error) {
	syms, ok := i.cache.Get(path)
	if !ok {
		var err error
		syms, err = exportedSymbols(path)
		if err != nil {
			return false, err
		}
		i.cache.Add(path, syms)
	}
	_, ok = syms[symbol]
	return ok, nil
}

var defaultInspector = New()

// Exports reports whether the object at path dynamically exports symbol,
// using a process-wide cache.
func Exports(path, symbol string) (bool, error) {
	return defaultInspector.Exports(path, symbol)
}

func exportedSymbols(path string) (map[string]struct{}, error) {
	if ef, err := elf.Open(path); err == nil {
		defer ef.Close()
		return elfExports(ef)
	}
	if mf, err := macho.Open(path); err == nil {
		defer mf.Close()
		return machoExports(mf)
	}
	return nil, errors.Errorf("%s: not an ELF or Mach-O object", path)
}

func elfExports(f *elf.File) (map[string]struct{}, error) {
	syms, err := f.DynamicSymbols()
	if err != nil {
		if errors.Is(err, elf.ErrNoSymbols) {
			return map[string]struct{}{}, nil
		}
		return nil, errors.Wrap(err, "read dynamic symbols")
	}
	out := make(map[string]struct{}, len(syms))
	for _, s := range syms {
		if s.Section == elf.SHN_UNDEF {
			continue
		}
		switch elf.ST_BIND(s.Info) {
		case elf.STB_GLOBAL, elf.STB_WEAK:
			out[s.Name] = struct{}{}
		}
	}
	return out, nil
}

// nlist n_type bits; debug/macho does not name them.
const (
	machoNExt  = 0x01
	machoNType = 0x0e
	machoNSect = 0x0e
)

func machoExports(f *macho.File) (map[string]struct{}, error) {
	if f.Symtab == nil {
		return map[string]struct{}{}, nil
	}
	out := make(map[string]struct{}, len(f.Symtab.Syms))
	for _, s := range f.Symtab.Syms {
		if s.Type&machoNExt == 0 || s.Type&machoNType != machoNSect {
			continue
		}
		out[strings.TrimPrefix(s.Name, "_")] = struct{}{}
	}
	return out, nil
}
