package serializer

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyBuildsOnce(t *testing.T) {
	var builds atomic.Int32
	lazy := NewLazy(func() (Serializer, error) {
		builds.Add(1)
		return NewGoJson(), nil
	})

	assert.Equal(t, int32(0), builds.Load(), "no build before first use")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := lazy.Encode(map[string]int{"a": 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
}

func TestLazyMemoizesFailure(t *testing.T) {
	var builds atomic.Int32
	boom := errors.New("boom")
	lazy := NewLazy(func() (Serializer, error) {
		builds.Add(1)
		return nil, boom
	})

	_, err := lazy.Encode(1)
	require.ErrorIs(t, err, boom)

	err = lazy.Decode([]byte("1"), new(int))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), builds.Load())
}
