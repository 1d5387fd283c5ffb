package flux

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemo(t *testing.T) {
	t.Run("derives value from signal", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		double := NewMemo(func() int {
			log = append(log, "doubling")
			return count.Read() * 2
		})
		plustwo := NewMemo(func() int {
			log = append(log, "adding")
			return double.Read() + 2
		})

		assert.Equal(t, 1, count.Read())
		assert.Equal(t, 2, double.Read())
		assert.Equal(t, 4, plustwo.Read())

		count.Write(10)
		assert.Equal(t, 10, count.Read())
		assert.Equal(t, 20, double.Read())
		assert.Equal(t, 22, plustwo.Read())

		assert.Equal(t, []string{
			"doubling",
			"adding",
			"doubling",
			"adding",
		}, log)
	})

	t.Run("does not propagate when value unchanged", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		a := NewMemo(func() int {
			log = append(log, "running a")
			return count.Read() * 0 // always returns 0
		})
		b := NewMemo(func() int {
			log = append(log, "running b")
			return a.Read() + 1
		})

		a.Read()
		b.Read()

		count.Write(10)
		b.Read() // recomputes a, bails out before recomputing b

		assert.Equal(t, []string{
			"running a",
			"running b",
			"running a",
		}, log)
	})

	t.Run("diamond dependency stays linear", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		double := NewMemo(func() int { return count.Read() * 2 })
		quad := NewMemo(func() int { return count.Read() * 4 })

		scope := NewScope()
		scope.Run(func() {
			NewEffect(func() {
				log = append(log, fmt.Sprintf("running %d %d", double.Read(), quad.Read()))
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running 0 0",
			"running 20 40",
		}, log)
	})

	t.Run("asymmetric diamond still bails out correctly", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		direct := NewMemo(func() int { return count.Read() })
		throughGate := NewMemo(func() int {
			// a memo that masks count's value entirely
			_ = count.Read()
			return 0
		})

		scope := NewScope()
		scope.Run(func() {
			NewEffect(func() {
				log = append(log, fmt.Sprintf("running %d %d", direct.Read(), throughGate.Read()))
			})
		})

		count.Write(5)

		assert.Equal(t, []string{
			"running 0 0",
			"running 5 0",
		}, log)
	})
}
