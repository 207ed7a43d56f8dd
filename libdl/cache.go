package libdl

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	lru "github.com/hashicorp/golang-lru/v2"
)

const handleCacheSize = 64

var logger log.Logger = log.NewNopLogger()

// SetLogger routes libdl debug lines (library opens, handle cache hits).
// Call it before any resolution runs; the logger is not synchronized.
func SetLogger(l log.Logger) { logger = l }

// handles keeps one open handle per library path. Handles are never
// closed: resolved pointers must stay valid for the process lifetime, and
// re-opening an already loaded library only bumps its reference count.
var handles, _ = lru.New[string, uintptr](handleCacheSize)

// OpenCached returns the handle for libName, opening it on first use.
func OpenCached(libName string) (uintptr, error) {
	if h, ok := handles.Get(libName); ok {
		level.Debug(logger).Log("msg", "handle cache hit", "lib", libName)
		return h, nil
	}
	h, err := Open(libName)
	if err != nil {
		return 0, err
	}
	handles.Add(libName, h)
	level.Debug(logger).Log("msg", "opened library", "lib", libName, "handle", fmt.Sprintf("%#x", h))
	return h, nil
}
