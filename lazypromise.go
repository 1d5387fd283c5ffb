package flux

import "github.com/wireframe-dev/flux/internal"

// LazyPromise is a pull-activated, one-shot asynchronous value: its
// producer does not run until the first subscriber appears, and is torn
// down (so a later subscriber restarts it from scratch) once the last
// subscriber's scope disposes. This is the flux/reactivity analogue of a
// cold observable, not a standard eagerly-started promise — see Eager for
// a bridge to one.
type LazyPromise[V any] struct {
	lp *internal.LazyPromise
}

// NewLazyPromise creates a lazy promise owned by scope: producer runs at
// most once per activation, and must call exactly one of resolve/reject.
// Calling either a second time within the same activation panics.
func NewLazyPromise[V any](scope *Scope, producer func(resolve func(V), reject func(error))) *LazyPromise[V] {
	return &LazyPromise[V]{
		lp: internal.GetRuntime().NewLazyPromise(scope.scope, func(resolve func(any), reject func(error)) {
			producer(func(v V) { resolve(v) }, reject)
		}),
	}
}

// Never returns a lazy promise whose producer never settles.
func Never[V any](scope *Scope) *LazyPromise[V] {
	return &LazyPromise[V]{
		lp: internal.GetRuntime().NewNeverLazyPromise(scope.scope),
	}
}

// IsLazyPromise reports whether x is a *LazyPromise[V] for some V.
func IsLazyPromise(x any) bool {
	switch x.(type) {
	case interface{ settled() }:
		return true
	default:
		return false
	}
}

// settled is an unexported marker method solely so IsLazyPromise can
// recognize any *LazyPromise[V] without knowing V.
func (p *LazyPromise[V]) settled() {}

// State reports the promise's current settlement and, once settled, its
// value or error.
func (p *LazyPromise[V]) State() (state PromiseState, value V, err error) {
	s, v, e := p.lp.State()
	return PromiseState(s), as[V](v), e
}

// Subscribe activates production (if not already active) and registers
// onResolve/onReject against the calling goroutine's current scope; they
// fire once settlement happens, and again on every subsequent re-run
// triggered by that scope's tracked reads. A nil onReject leaves a
// rejection unhandled: it panics into the subscribing effect, per the
// promise's unhandled-rejection contract.
func (p *LazyPromise[V]) Subscribe(onResolve func(V), onReject func(error)) {
	internal.GetRuntime().Subscribe(p.lp,
		func(v any) {
			if onResolve != nil {
				onResolve(as[V](v))
			}
		},
		onReject,
	)
}

// PromiseState mirrors internal.PromiseState in the public API.
type PromiseState int8

const (
	Idle     PromiseState = PromiseState(internal.Idle)
	Resolved PromiseState = PromiseState(internal.Resolved)
	Rejected PromiseState = PromiseState(internal.Rejected)
)
