//go:build darwin || freebsd || linux
// +build darwin freebsd linux

package interpose

import (
	"github.com/eh-steve/interpose/libdl"
)

type nextInSearchOrder struct{}

// NextInSearchOrder resolves a symbol to its next definition after the
// interposing unit in the dynamic linker's search order (RTLD_NEXT). Only
// use it on platforms whose link editor skips the calling module; see
// DefaultStrategy.
func NextInSearchOrder() Strategy { return nextInSearchOrder{} }

func (nextInSearchOrder) Resolve(symbol string) (uintptr, error) {
	return libdl.LookupNext(symbol)
}
