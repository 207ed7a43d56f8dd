//go:build darwin
// +build darwin

package interpose

// DefaultStrategy returns the platform's safe resolution strategy. dyld's
// RTLD_NEXT lookup matches the interposing image itself, which recurses,
// so darwin always opens the original library explicitly. An empty lib is
// reported at resolution time: there is no safe default to guess.
func DefaultStrategy(lib string) Strategy {
	return ExplicitLibrary(lib)
}
