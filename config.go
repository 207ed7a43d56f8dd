package interpose

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/xyproto/env/v2"

	"github.com/eh-steve/interpose/libdl"
)

const (
	// debugEnv enables logfmt debug lines on stderr for resolution events.
	debugEnv = "INTERPOSE_DEBUG"
	// libraryEnv overrides the library path of the explicit-library
	// strategy, for deployments where the original lives in a
	// version-suffixed shared object.
	libraryEnv = "INTERPOSE_LIBRARY"
)

func init() {
	if env.Bool(debugEnv) {
		l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
		libdl.SetLogger(log.With(l, "component", "libdl"))
	}
}

func newLogger() log.Logger {
	if !env.Bool(debugEnv) {
		return log.NewNopLogger()
	}
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	return level.NewFilter(log.With(l, "component", "interpose"), level.AllowDebug())
}

func libraryOverride(path string) string {
	return env.Str(libraryEnv, path)
}
