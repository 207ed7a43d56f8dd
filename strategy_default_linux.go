//go:build freebsd || linux
// +build freebsd linux

package interpose

// DefaultStrategy returns the platform's safe resolution strategy. The ELF
// link editors resolve RTLD_NEXT starting after the calling module, so
// next-in-search-order is the default here; a non-empty lib switches to
// the explicit-library strategy instead.
func DefaultStrategy(lib string) Strategy {
	if lib != "" {
		return ExplicitLibrary(lib)
	}
	return NextInSearchOrder()
}
