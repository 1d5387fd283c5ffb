package flux

// Lazy wraps an asynchronous callback as a LazyPromise owned by the
// current scope: asyncCb receives an AbortSignal that fires when the
// activation is cancelled (every subscriber unsubscribes, or the owner
// scope disposes), whether or not the callback has already settled, and is
// expected to return (value, nil) on success or (zero, err) on failure.
func Lazy[V any](asyncCb func(signal *AbortSignal) (V, error)) *LazyPromise[V] {
	scope := currentScope()

	return NewLazyPromise(scope, func(resolve func(V), reject func(error)) {
		controller := NewAbortController()
		// the production scope is torn down the instant this activation is
		// cancelled (subscriber count drops to zero, or the owner scope
		// disposes), so registering the abort here against the production
		// scope itself is exactly the cancellation signal asyncCb wants.
		OnCleanup(func() { controller.Abort(nil) })

		v, err := asyncCb(controller.Signal())
		if err != nil {
			reject(err)
			return
		}
		resolve(v)
	})
}

// Map derives a new LazyPromise from source: project runs once source
// resolves, and its result becomes the derived promise's resolution. A
// rejection of source passes through unchanged; project is never called
// for a rejection.
func Map[A, B any](source *LazyPromise[A], project func(A) B) *LazyPromise[B] {
	scope := currentScope()

	return NewLazyPromise(scope, func(resolve func(B), reject func(error)) {
		source.Subscribe(
			func(v A) { resolve(project(v)) },
			func(err error) { reject(err) },
		)
	})
}

// CatchError derives a new LazyPromise from source that never rejects:
// handler runs in place of a rejection and its result becomes the
// resolution instead.
func CatchError[V any](source *LazyPromise[V], handler func(error) V) *LazyPromise[V] {
	scope := currentScope()

	return NewLazyPromise(scope, func(resolve func(V), reject func(error)) {
		source.Subscribe(
			func(v V) { resolve(v) },
			func(err error) { resolve(handler(err)) },
		)
	})
}
