package interpose

// Hook builds the body of an interposed entry point. It receives the
// forward capability bound to the resolved original and returns the
// function the exported symbol will run. The returned function may call
// next zero times (short-circuit) or exactly once per invocation; calling
// it more than once is undefined, since the original's side effects are
// not idempotent in general.
//
// Mutations of output parameters belong after the next call, so the caller
// only ever observes the final state, never a half-rewritten one.
type Hook[F any] func(next F) F

// Passthrough forwards unchanged. It is what an un-hooked Symbol runs and
// is occasionally useful as a Chain element placeholder.
func Passthrough[F any](next F) F { return next }

// Chain composes hooks around a forward capability, first hook outermost.
func Chain[F any](hooks ...Hook[F]) Hook[F] {
	return func(next F) F {
		for i := len(hooks) - 1; i >= 0; i-- {
			next = hooks[i](next)
		}
		return next
	}
}
