package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigcraft/pkg/cache"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	t.Run("get and set", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		_, ok := c.Get("a")
		require.False(t, ok)

		require.NoError(t, c.Set("a", "1"))
		require.NoError(t, c.Set("a", "2"))
		v, ok := c.Get("a")
		require.True(t, ok)
		require.Equal(t, "2", v)
		require.Equal(t, 1, c.Len())
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithMaxEntries(2))
		var evicted []string
		c.SetEvictCallback(func(key string, _ int) { evicted = append(evicted, key) })

		require.NoError(t, c.Set("a", 1))
		require.NoError(t, c.Set("b", 2))
		_, _ = c.Get("a")
		require.NoError(t, c.Set("c", 3))

		require.Equal(t, []string{"b"}, evicted)
		_, ok := c.Get("b")
		require.False(t, ok)
		_, ok = c.Get("a")
		require.True(t, ok)
		require.Equal(t, 2, c.Len())
	})

	t.Run("closed cache rejects writes", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		require.NoError(t, c.Set("a", 1))
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())

		require.Zero(t, c.Len())
		require.ErrorIs(t, c.Set("b", 2), cache.ErrClosed)
	})
}

func TestMemo(t *testing.T) {
	t.Parallel()

	t.Run("computes once per key", func(t *testing.T) {
		t.Parallel()

		memo := cache.NewMemo[int](cache.NewMemory[int]())
		var calls atomic.Int32
		fn := func(context.Context) (int, error) {
			calls.Add(1)
			return 42, nil
		}

		for range 3 {
			v, err := memo.Get(context.Background(), "k", fn)
			require.NoError(t, err)
			require.Equal(t, 42, v)
		}
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("concurrent misses share one call", func(t *testing.T) {
		t.Parallel()

		memo := cache.NewMemo[int](cache.NewMemory[int]())
		var calls atomic.Int32
		release := make(chan struct{})
		fn := func(context.Context) (int, error) {
			calls.Add(1)
			<-release
			return 7, nil
		}

		var wg sync.WaitGroup
		results := make([]int, 8)
		for i := range results {
			wg.Go(func() {
				v, err := memo.Get(context.Background(), "k", fn)
				if err == nil {
					results[i] = v
				}
			})
		}
		close(release)
		wg.Wait()

		for _, v := range results {
			require.Equal(t, 7, v)
		}
		require.LessOrEqual(t, calls.Load(), int32(len(results)))
		require.GreaterOrEqual(t, calls.Load(), int32(1))
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()

		memo := cache.NewMemo[int](cache.NewMemory[int]())
		boom := errors.New("boom")

		_, err := memo.Get(context.Background(), "k", func(context.Context) (int, error) { return 0, boom })
		require.ErrorIs(t, err, boom)

		v, err := memo.Get(context.Background(), "k", func(context.Context) (int, error) { return 3, nil })
		require.NoError(t, err)
		require.Equal(t, 3, v)
	})
}
