// Package interpose builds dynamic-library interposition units: shared
// libraries that are preloaded ahead of a real library (LD_PRELOAD,
// DYLD_INSERT_LIBRARIES) and stand in for one of its exported functions,
// forwarding every call to the genuine implementation while letting a hook
// observe or rewrite arguments and results.
//
// Each intercepted symbol is a declaration:
//
//	type unameFn = func(unsafe.Pointer) int32
//
//	var unameSym = interpose.New[unameFn]("uname",
//		interpose.WithHook[unameFn](rewriteVersion),
//	)
//
// The exported cgo entry point then calls unameSym.Fn()(...). The original
// implementation is located on the first call only, through a per-platform
// resolution strategy, and cached for the life of the process.
package interpose

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Symbol describes one interposed function: the exported name the dynamic
// linker resolves and the Go function type F matching the C signature. The
// signature must match the original exactly; a mismatch corrupts the ABI
// silently and is not detectable at runtime.
type Symbol[F any] struct {
	name     string
	strategy Strategy
	hook     Hook[F]
	logger   log.Logger
	register func(fnPtr any, addr uintptr)

	once     sync.Once
	original F
	fn       F
	err      error
}

// Option configures a Symbol at declaration time. Options must not be
// applied after the first call.
type Option[F any] func(*Symbol[F])

// WithStrategy overrides the platform default resolution strategy.
func WithStrategy[F any](s Strategy) Option[F] {
	return func(sym *Symbol[F]) { sym.strategy = s }
}

// WithLibrary resolves the original from the named library instead of the
// platform default. INTERPOSE_LIBRARY still takes precedence over path.
func WithLibrary[F any](path string) Option[F] {
	return func(sym *Symbol[F]) { sym.strategy = ExplicitLibrary(libraryOverride(path)) }
}

// WithHook installs the transform hook composed around the original.
func WithHook[F any](h Hook[F]) Option[F] {
	return func(sym *Symbol[F]) { sym.hook = h }
}

// WithLogger overrides the env-configured logger.
func WithLogger[F any](l log.Logger) Option[F] {
	return func(sym *Symbol[F]) { sym.logger = l }
}

// withRegistrar replaces the purego binding of resolved addresses, so tests
// can supply original implementations without touching the dynamic linker.
func withRegistrar[F any](r func(fnPtr any, addr uintptr)) Option[F] {
	return func(sym *Symbol[F]) { sym.register = r }
}

// New declares an interposed symbol. F must be a function type. Declaring
// the same symbol name twice in one unit panics: both descriptors would
// race for the single exported entry point.
func New[F any](name string, opts ...Option[F]) *Symbol[F] {
	ft := reflect.TypeOf((*F)(nil)).Elem()
	if ft.Kind() != reflect.Func {
		panic("interpose: New requires a function type, got " + ft.String())
	}
	sym := &Symbol[F]{
		name:     name,
		strategy: DefaultStrategy(libraryOverride("")),
		logger:   newLogger(),
		register: purego.RegisterFunc,
	}
	for _, opt := range opts {
		opt(sym)
	}
	registerSymbol(name, ft.String())
	return sym
}

// Name returns the exported symbol name.
func (s *Symbol[F]) Name() string { return s.name }

// Fn returns the entry-point body: the hook composed around the resolved
// original, or the original itself when no hook is installed. The first
// call performs resolution; a failed resolution is fatal on this and every
// later call, because an entry point with no original has no semantics to
// offer its caller. After the first call Fn is a lock-free read.
func (s *Symbol[F]) Fn() F {
	s.once.Do(s.bind)
	if s.err != nil {
		fatalResolve(s.name, s.err)
	}
	return s.fn
}

// Original returns the resolved original implementation, bypassing the
// hook. Same resolution and fatality rules as Fn.
func (s *Symbol[F]) Original() F {
	s.once.Do(s.bind)
	if s.err != nil {
		fatalResolve(s.name, s.err)
	}
	return s.original
}

func (s *Symbol[F]) bind() {
	addr, err := s.strategy.Resolve(s.name)
	if err != nil {
		s.err = err
		return
	}
	s.register(&s.original, addr)
	if s.hook != nil {
		s.fn = s.hook(s.original)
	} else {
		s.fn = s.original
	}
	level.Debug(s.logger).Log("msg", "resolved original", "symbol", s.name, "addr", fmt.Sprintf("%#x", addr))
}
