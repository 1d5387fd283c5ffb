package flux

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbortController(t *testing.T) {
	t.Run("abort notifies handlers and is idempotent", func(t *testing.T) {
		var reasons []any

		c := NewAbortController()
		c.Signal().OnAbort(func(reason any) { reasons = append(reasons, reason) })

		assert.False(t, c.Signal().Aborted())

		c.Abort("first")
		c.Abort("second") // no-op: already aborted

		assert.True(t, c.Signal().Aborted())
		assert.Equal(t, []any{"first"}, reasons)
		assert.Equal(t, "first", c.Signal().Reason())
	})

	t.Run("late OnAbort fires immediately", func(t *testing.T) {
		c := NewAbortController()
		c.Abort("done")

		fired := false
		c.Signal().OnAbort(func(reason any) {
			fired = true
			assert.Equal(t, "done", reason)
		})
		assert.True(t, fired)
	})

	t.Run("ThrowIfAborted", func(t *testing.T) {
		c := NewAbortController()
		assert.NoError(t, c.Signal().ThrowIfAborted())

		c.Abort(nil)
		err := c.Signal().ThrowIfAborted()
		assert.ErrorIs(t, err, &AbortError{})
	})

	t.Run("Abort with nil reason defaults to AbortError", func(t *testing.T) {
		c := NewAbortController()
		c.Abort(nil)
		assert.ErrorIs(t, c.Signal().Reason().(error), &AbortError{})
	})
}

func TestAbortAny(t *testing.T) {
	t.Run("aborts when any input aborts", func(t *testing.T) {
		a := NewAbortController()
		b := NewAbortController()

		combined := AbortAny([]*AbortSignal{a.Signal(), b.Signal()})
		assert.False(t, combined.Aborted())

		a.Abort("a gave up")

		assert.True(t, combined.Aborted())
		assert.Equal(t, "a gave up", combined.Reason())
	})

	t.Run("already-aborted input aborts immediately", func(t *testing.T) {
		a := NewAbortController()
		a.Abort("already done")

		combined := AbortAny([]*AbortSignal{a.Signal()})
		assert.True(t, combined.Aborted())
	})

	t.Run("empty input never aborts", func(t *testing.T) {
		combined := AbortAny(nil)
		assert.False(t, combined.Aborted())
	})
}

func TestLazy(t *testing.T) {
	t.Run("aborts the signal when its last subscriber unsubscribes", func(t *testing.T) {
		var gotAborted bool
		var lp *LazyPromise[int]

		owner := NewScope()
		owner.Run(func() {
			lp = Lazy(func(signal *AbortSignal) (int, error) {
				signal.OnAbort(func(any) { gotAborted = true })
				return 1, nil
			})
		})

		sub := NewScope()
		sub.Run(func() {
			lp.Subscribe(func(int) {}, nil)
		})

		assert.False(t, gotAborted) // settled before ever checking the signal

		sub.Dispose() // drops the only subscriber: cancels (and would re-arm) production
		assert.True(t, gotAborted)
	})

	t.Run("a rejecting callback surfaces through onReject", func(t *testing.T) {
		owner := NewScope()
		var lp *LazyPromise[int]
		owner.Run(func() {
			lp = Lazy(func(signal *AbortSignal) (int, error) {
				return 0, errors.New("producer failed")
			})
		})

		var gotErr error
		sub := NewScope()
		sub.Run(func() {
			lp.Subscribe(nil, func(err error) { gotErr = err })
		})

		assert.EqualError(t, gotErr, "producer failed")
	})
}
