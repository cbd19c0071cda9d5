package intern

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternIsStable(t *testing.T) {
	in := New()
	a := in.Intern("main")
	b := in.Intern("point")
	require.NotEqual(t, a, b)
	assert.Equal(t, a, in.Intern("main"))
	assert.Equal(t, "main", in.Lookup(a))
	assert.Equal(t, "point", in.Lookup(b))
	assert.Equal(t, 3, in.Len())
}

func TestEmptyStringIsZero(t *testing.T) {
	in := New()
	assert.Equal(t, Symbol(0), in.Intern(""))
	assert.Equal(t, "", in.Lookup(0))
}

func TestGet(t *testing.T) {
	in := New()
	_, ok := in.Get("x")
	assert.False(t, ok)
	sym := in.Intern("x")
	got, ok := in.Get("x")
	assert.True(t, ok)
	assert.Equal(t, sym, got)
}

func TestLookupUnknownPanics(t *testing.T) {
	assert.Panics(t, func() { New().Lookup(42) })
}

func TestConcurrentIntern(t *testing.T) {
	in := New()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				in.Intern(fmt.Sprintf("name%d", i))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 101, in.Len())
	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("name%d", i)
		assert.Equal(t, name, in.Lookup(in.Intern(name)))
	}
}
