package flux

import "github.com/wireframe-dev/flux/internal"

type signalConfig[T any] struct {
	equal func(a, b T) bool
}

// SignalOption configures a Signal or Memo at construction.
type SignalOption[T any] func(*signalConfig[T])

// WithEqual overrides a signal or memo's default (==) equality comparator.
// Writers comparing non-comparable types (slices, maps, funcs) must supply
// one; the zero-value default otherwise panics at the first write.
func WithEqual[T any](equal func(a, b T) bool) SignalOption[T] {
	return func(cfg *signalConfig[T]) {
		cfg.equal = equal
	}
}

// RuntimeOption configures the calling goroutine's runtime.
type RuntimeOption func(*internal.Runtime)

// WithLogger installs a structured logger on the calling goroutine's
// runtime, used for Debug-level scope/effect-queue tracing and Error-level
// unhandled-error reporting.
func WithLogger(logger Logger) RuntimeOption {
	return func(rt *internal.Runtime) {
		rt.SetLogger(adaptLogger(logger))
	}
}

// WithDeferredErrorHandler overrides the hook invoked when a reaction
// panics and no ancestor scope's OnError handled it. The default logs to
// stderr on a spawned goroutine; callers wanting JS-style unhandled-
// rejection semantics (crash the process) can install a stricter one.
func WithDeferredErrorHandler(fn func(error)) RuntimeOption {
	return func(rt *internal.Runtime) {
		rt.SetDeferErrorHook(fn)
	}
}

// Configure applies opts to the calling goroutine's runtime.
func Configure(opts ...RuntimeOption) {
	rt := internal.GetRuntime()
	for _, opt := range opts {
		opt(rt)
	}
}
