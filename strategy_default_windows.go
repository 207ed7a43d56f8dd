//go:build windows
// +build windows

package interpose

// DefaultStrategy returns the platform's safe resolution strategy. Windows
// has no next-in-search-order query at all, so the original library must
// always be named explicitly.
func DefaultStrategy(lib string) Strategy {
	return ExplicitLibrary(lib)
}
