package callback

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ID_Stable(t *testing.T) {
	reg := NewRegistry()
	cb := MustFunc(func() {})

	first := reg.ID(cb)
	require.NotEmpty(t, first)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, reg.ID(cb))
	}
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_ID_DistinctCallbacks(t *testing.T) {
	reg := NewRegistry()
	fn := func() {}

	// Same underlying function, two wrappers: two identities.
	a := MustFunc(fn)
	b := MustFunc(fn)

	assert.NotEqual(t, reg.ID(a), reg.ID(b))
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_ID_Nil(t *testing.T) {
	reg := NewRegistry()
	assert.Empty(t, reg.ID(nil))
	assert.Zero(t, reg.Len())
}

func TestRegistry_ID_RetriesTakenIdentifier(t *testing.T) {
	ids := []string{"dup", "dup", "fresh"}
	next := 0
	reg := NewRegistry(WithIDGenerator(func() string {
		id := ids[next]
		next++
		return id
	}))

	assert.Equal(t, "dup", reg.ID(MustFunc(func() {})))
	assert.Equal(t, "fresh", reg.ID(MustFunc(func() {})))
}

func TestRegistry_Invoke(t *testing.T) {
	reg := NewRegistry()
	cb := MustFunc(func(a, b int) int { return a + b })
	id := reg.ID(cb)

	res, found, err := reg.Invoke(context.Background(), id, raw(t, 2, 3, 99))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 5, res)
}

func TestRegistry_Invoke_Unknown(t *testing.T) {
	reg := NewRegistry()

	res, found, err := reg.Invoke(context.Background(), "does-not-exist", raw(t, 1))
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, res)
}

func TestRegistry_ConcurrentRegistration(t *testing.T) {
	reg := NewRegistry()
	shared := MustFunc(func() {})

	const workers = 32
	cbs := make([]*Callback, workers)
	for i := range cbs {
		cbs[i] = MustFunc(func() string { return fmt.Sprint(i) })
	}

	var wg sync.WaitGroup
	sharedIDs := make([]string, workers)
	ownIDs := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sharedIDs[i] = reg.ID(shared)
			ownIDs[i] = reg.ID(cbs[i])
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := 0; i < workers; i++ {
		assert.Equal(t, sharedIDs[0], sharedIDs[i])
		assert.False(t, seen[ownIDs[i]], "identifier %q reused", ownIDs[i])
		seen[ownIDs[i]] = true
	}
	assert.Equal(t, workers+1, reg.Len())
}
