package flux

import "github.com/wireframe-dev/flux/internal"

// Memo is a cached reactive derivation: Read sweeps it up to date first
// (recomputing its body only if a dependency actually changed), then
// returns the cached value, tracking the dependency if called from within
// a running reaction. Recomputing to an unchanged value bails out — a
// memo's dependents never see spurious re-runs.
type Memo[T any] struct {
	memo *internal.Memo
}

// NewMemo creates a memo computed by compute, comparing successive results
// with == unless overridden via WithEqual.
func NewMemo[T any](compute func() T, opts ...SignalOption[T]) *Memo[T] {
	cfg := signalConfig[T]{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var equal func(a, b any) bool
	if cfg.equal != nil {
		equal = func(a, b any) bool { return cfg.equal(as[T](a), as[T](b)) }
	}

	return &Memo[T]{
		memo: internal.GetRuntime().NewMemo(func() any { return compute() }, equal),
	}
}

// Read returns the memo's up-to-date value, tracking the dependency if
// called from within a running reaction.
func (m *Memo[T]) Read() T {
	return as[T](m.memo.Read())
}
