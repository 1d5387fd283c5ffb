package internal

// Signal is a plain mutable subject: a value cell with no computation of
// its own. A write is staged in a pending slot and committed to value at
// once (see commit), before its dependents are pushed.
type Signal struct {
	*ReactiveNode

	equal        func(a, b any) bool
	value        any
	pendingValue *any // nil means no write is pending
}

func (r *Runtime) NewSignal(initial any, equal func(a, b any) bool) *Signal {
	if equal == nil {
		equal = defaultEqual
	}
	return &Signal{
		ReactiveNode: NewSubject(),
		equal:        equal,
		value:        initial,
	}
}

// Read returns the current value, recording a dependency if called from
// within a running reaction.
func (s *Signal) Read() any {
	r := GetRuntime()
	r.Pull(s.ReactiveNode)
	return s.currentValue()
}

// Write stores v, propagating to dependents if it differs from the
// current value per the signal's equality comparator. A no-op write (equal
// to the current value) never touches the graph.
func (s *Signal) Write(v any) {
	if s.equal(s.currentValue(), v) {
		return
	}

	s.pendingValue = &v
	s.commit()

	r := GetRuntime()
	r.Push(s.ReactiveNode)
}

func (s *Signal) currentValue() any {
	if s.pendingValue != nil {
		return *s.pendingValue
	}
	return s.value
}

// commit applies the pending value immediately. Unlike the teacher's
// defer-to-flush commit step, plain subjects here have no recompute of
// their own to race with, so there is nothing gained by delaying it past
// the write that produced it.
func (s *Signal) commit() {
	if s.pendingValue != nil {
		s.value = *s.pendingValue
		s.pendingValue = nil
	}
}

func defaultEqual(a, b any) bool {
	return a == b
}
