package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReactiveNodeLinking(t *testing.T) {
	t.Run("Link records deps and subs in pull order", func(t *testing.T) {
		sub := NewReaction(func() {})
		a := NewSubject()
		b := NewSubject()

		sub.Link(a)
		sub.Link(b)

		var deps []*ReactiveNode
		for d := range sub.Deps() {
			deps = append(deps, d)
		}
		assert.Equal(t, []*ReactiveNode{a, b}, deps)

		var subs []*ReactiveNode
		for s := range a.Subs() {
			subs = append(subs, s)
		}
		assert.Equal(t, []*ReactiveNode{sub}, subs)
	})

	t.Run("ClearDepsFrom trims the stale tail and unregisters subs", func(t *testing.T) {
		sub := NewReaction(func() {})
		a, b, c := NewSubject(), NewSubject(), NewSubject()
		sub.Link(a)
		sub.Link(b)
		sub.Link(c)

		sub.ClearDepsFrom(1)

		var deps []*ReactiveNode
		for d := range sub.Deps() {
			deps = append(deps, d)
		}
		assert.Equal(t, []*ReactiveNode{a}, deps)

		assert.Equal(t, 0, countSubs(b))
		assert.Equal(t, 0, countSubs(c))
		assert.Equal(t, 1, countSubs(a))
	})

	t.Run("DepAt walks to the nth dependency", func(t *testing.T) {
		sub := NewReaction(func() {})
		a, b := NewSubject(), NewSubject()
		sub.Link(a)
		sub.Link(b)

		assert.Same(t, a, sub.DepAt(0))
		assert.Same(t, b, sub.DepAt(1))
		assert.Nil(t, sub.DepAt(2))
	})

	t.Run("Dispose clears deps and marks Clean", func(t *testing.T) {
		sub := NewReaction(func() {})
		a := NewSubject()
		sub.Link(a)
		sub.state = Dirty

		sub.Dispose()

		assert.True(t, sub.disposed)
		assert.Equal(t, Clean, sub.state)
		assert.Equal(t, 0, countSubs(a))
	})
}

func countSubs(n *ReactiveNode) int {
	count := 0
	for range n.Subs() {
		count++
	}
	return count
}
