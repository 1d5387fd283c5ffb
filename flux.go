// Package flux implements a synchronous fine-grained reactivity runtime, a
// hierarchical scope tree for lifetime and error management, and a lazy
// promise primitive built atop both.
package flux

import "github.com/wireframe-dev/flux/internal"

// as converts an any-typed internal value back to its static Go type,
// treating a nil payload as the zero value — the same narrow helper the
// engine's untyped core needs at every generic wrapper boundary.
func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

// Batch defers the effect queue's drain until fn returns, coalescing any
// number of signal writes made inside fn into a single settle pass.
// Re-entrant batches coalesce into the outermost one.
func Batch[R any](fn func() R) R {
	var result R
	internal.GetRuntime().Batch(func() { result = fn() })
	return result
}

// Untrack runs fn with dependency recording disabled: any signal or memo
// read inside fn is not recorded as a dependency of the reaction currently
// running, if any.
func Untrack[R any](fn func() R) R {
	var result R
	internal.GetRuntime().Untrack(func() { result = fn() })
	return result
}
