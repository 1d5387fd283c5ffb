package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeDisposalOrder(t *testing.T) {
	t.Run("own cleanups run LIFO, after children dispose newest-first", func(t *testing.T) {
		var log []string

		parent := NewScope()
		parent.OnCleanup(func() { log = append(log, "parent cleanup 1") })
		parent.OnCleanup(func() { log = append(log, "parent cleanup 2") })

		childA := NewScope()
		parent.AddChild(childA)
		childA.OnCleanup(func() { log = append(log, "childA cleanup") })

		childB := NewScope()
		parent.AddChild(childB)
		childB.OnCleanup(func() { log = append(log, "childB cleanup") })

		parent.Dispose()

		assert.Equal(t, []string{
			"childB cleanup",
			"childA cleanup",
			"parent cleanup 2",
			"parent cleanup 1",
		}, log)
	})

	t.Run("dispose is idempotent", func(t *testing.T) {
		count := 0
		s := NewScope()
		s.OnCleanup(func() { count++ })

		s.Dispose()
		s.Dispose()

		assert.Equal(t, 1, count)
	})

	t.Run("operating on a disposed scope panics", func(t *testing.T) {
		s := NewScope()
		s.Dispose()

		assert.PanicsWithValue(t, ErrScopeDisposed, func() {
			s.Run(func() {})
		})
		assert.PanicsWithValue(t, ErrScopeDisposed, func() {
			s.OnCleanup(func() {})
		})
	})

	t.Run("IsAncestor/IsDescendant across the tree", func(t *testing.T) {
		parent := NewScope()
		child := NewScope()
		parent.AddChild(child)

		assert.True(t, parent.IsAncestor(child))
		assert.True(t, child.IsDescendant(parent))
		assert.False(t, child.IsAncestor(parent))
		assert.True(t, parent.IsAncestor(parent))
	})
}

func TestScopeContextValue(t *testing.T) {
	t.Run("walks ancestors for the nearest set value", func(t *testing.T) {
		key := new(int)

		parent := NewScope()
		parent.SetContextValue(key, "parent value")

		child := NewScope()
		parent.AddChild(child)

		v, ok := child.ContextValue(key)
		assert.True(t, ok)
		assert.Equal(t, "parent value", v)

		_, ok = parent.ContextValue(new(int))
		assert.False(t, ok)
	})
}
