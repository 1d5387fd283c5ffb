package flux

import "github.com/wireframe-dev/flux/internal"

// NewEffect registers a reactive effect in the current scope: fn runs
// immediately, then again every time a signal or memo it read changes,
// until the owning scope disposes. Register a cleanup for the previous run
// with OnCleanup from inside fn; it runs before the next re-run and on
// disposal.
func NewEffect(fn func()) {
	internal.GetRuntime().NewEffect(func() func() {
		fn()
		return nil
	})
}

// NewEffectWithCleanup is like NewEffect, but fn may return a cleanup
// function, run before the next re-run and on disposal — the same
// contract the teacher's effect/cleanup pairing exposes as a returned
// closure rather than a separately registered callback.
func NewEffectWithCleanup(fn func() func()) {
	internal.GetRuntime().NewEffect(fn)
}
