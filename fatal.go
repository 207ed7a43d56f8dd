package interpose

import (
	"fmt"
	"io"
	"os"
)

// Seams for the fatal-path tests; production values are never changed.
var (
	osExit           = os.Exit
	stderr io.Writer = os.Stderr
)

// fatalResolve reports an unresolved symbol on stderr and terminates the
// process. Any value the entry point fabricated instead would be
// indistinguishable from silent corruption to the caller, so there is no
// degraded mode.
func fatalResolve(symbol string, err error) {
	fmt.Fprintf(stderr, "interpose: failed to locate original %s: %v\n", symbol, err)
	osExit(1)
}
