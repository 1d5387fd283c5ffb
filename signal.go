package flux

import "github.com/wireframe-dev/flux/internal"

// Signal is a reactive value cell: Read pulls (tracking a dependency if
// called from within a running reaction, and otherwise just returning the
// current value), Write pushes when the new value differs from the
// current one per the signal's equality comparator.
type Signal[T any] struct {
	signal *internal.Signal
}

// NewSignal creates a signal holding initial, comparing successive writes
// with == unless overridden via WithEqual.
func NewSignal[T any](initial T, opts ...SignalOption[T]) *Signal[T] {
	cfg := signalConfig[T]{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var equal func(a, b any) bool
	if cfg.equal != nil {
		equal = func(a, b any) bool { return cfg.equal(as[T](a), as[T](b)) }
	}

	return &Signal[T]{
		signal: internal.GetRuntime().NewSignal(initial, equal),
	}
}

// Read returns the signal's current value, tracking the dependency if
// called from within a running reaction.
func (s *Signal[T]) Read() T {
	return as[T](s.signal.Read())
}

// Write stores v, triggering dependents if it differs from the current
// value.
func (s *Signal[T]) Write(v T) {
	s.signal.Write(v)
}
