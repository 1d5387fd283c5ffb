package flux

import (
	"sync"

	"github.com/wireframe-dev/flux/internal"
)

// AbortError reports that a Lazy production was cancelled via its
// AbortSignal. It is a type alias for the engine's own AbortError so
// errors.Is/As work the same whether the abort came from a subscriber
// count dropping to zero or from explicit cancellation.
type AbortError = internal.AbortError

// AbortSignal communicates cancellation into an asynchronous operation,
// following the W3C DOM AbortController/AbortSignal shape. Safe for
// concurrent use.
type AbortSignal struct {
	mu       sync.RWMutex
	aborted  bool
	reason   any
	handlers []func(reason any)
}

func newAbortSignal() *AbortSignal {
	return &AbortSignal{}
}

// Aborted reports whether the signal has been aborted.
func (s *AbortSignal) Aborted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aborted
}

// Reason returns the abort reason, or nil if not yet aborted.
func (s *AbortSignal) Reason() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reason
}

// OnAbort registers handler to run when the signal aborts, immediately if
// it already has.
func (s *AbortSignal) OnAbort(handler func(reason any)) {
	if handler == nil {
		return
	}

	s.mu.Lock()
	if s.aborted {
		reason := s.reason
		s.mu.Unlock()
		handler(reason)
		return
	}
	s.handlers = append(s.handlers, handler)
	s.mu.Unlock()
}

// ThrowIfAborted returns an *AbortError if the signal has been aborted, or
// nil otherwise — for a producer to check at cancellation points it cannot
// otherwise observe.
func (s *AbortSignal) ThrowIfAborted() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.aborted {
		return &AbortError{Reason: s.reason}
	}
	return nil
}

func (s *AbortSignal) abort(reason any) {
	s.mu.Lock()
	if s.aborted {
		s.mu.Unlock()
		return
	}
	s.aborted = true
	s.reason = reason
	handlers := append([]func(reason any){}, s.handlers...)
	s.mu.Unlock()

	for _, h := range handlers {
		h(reason)
	}
}

// AbortController creates and owns an AbortSignal, exposing the one way to
// transition it into the aborted state.
type AbortController struct {
	signal *AbortSignal
}

// NewAbortController creates a controller with a fresh, unaborted signal.
func NewAbortController() *AbortController {
	return &AbortController{signal: newAbortSignal()}
}

// Signal returns the controller's signal.
func (c *AbortController) Signal() *AbortSignal {
	return c.signal
}

// Abort transitions the controller's signal to aborted with reason,
// running every registered OnAbort handler. A nil reason becomes a default
// *AbortError. Subsequent calls are no-ops.
func (c *AbortController) Abort(reason any) {
	if reason == nil {
		reason = &AbortError{}
	}
	c.signal.abort(reason)
}

// AbortAny returns a signal that aborts as soon as any of signals does,
// carrying that signal's reason.
func AbortAny(signals []*AbortSignal) *AbortSignal {
	composite := newAbortSignal()
	if len(signals) == 0 {
		return composite
	}

	for _, sig := range signals {
		if sig != nil && sig.Aborted() {
			composite.abort(sig.Reason())
			return composite
		}
	}

	var once sync.Once
	for _, sig := range signals {
		if sig == nil {
			continue
		}
		sig.OnAbort(func(reason any) {
			once.Do(func() { composite.abort(reason) })
		})
	}
	return composite
}
