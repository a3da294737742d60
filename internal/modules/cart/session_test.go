package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerReturnsSameSessionPerUser(t *testing.T) {
	m := NewManager()

	a := m.Session(100)
	b := m.Session(100)
	c := m.Session(200)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestManagerDropEndsSession(t *testing.T) {
	m := NewManager()
	p := testProduct("tee", 500, map[string]int{"M": 3})

	s := m.Session(100)
	s.Dispatch(AddItem{Product: p, Size: "M"})
	m.Drop(100)

	fresh := m.Session(100)
	assert.NotSame(t, s, fresh)
	assert.Zero(t, fresh.State().ItemCount)
}

func TestSessionDispatchSerializes(t *testing.T) {
	m := NewManager()
	p := testProduct("tee", 500, map[string]int{"M": 64})
	s := m.Session(100)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(AddItem{Product: p, Size: "M"})
		}()
	}
	wg.Wait()

	state := s.State()
	assert.Equal(t, 64, state.ItemCount)
	assert.Equal(t, 64*500.0, state.Total)
}

func TestConcurrentSessionCreation(t *testing.T) {
	m := NewManager()

	var wg sync.WaitGroup
	sessions := make([]*Session, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i] = m.Session(42)
		}(i)
	}
	wg.Wait()

	for _, s := range sessions[1:] {
		assert.Same(t, sessions[0], s)
	}
}
