package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		m := NewMemory[int](time.Minute, 0)
		defer m.Close()

		require.NoError(t, m.Set(ctx, "total", 42, 0))
		v, err := m.Get(ctx, "total")
		require.NoError(t, err)
		require.Equal(t, 42, v)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		m := NewMemory[int](time.Minute, 0)
		_, err := m.Get(ctx, "nope")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("expiry", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		m := NewMemory[string](time.Minute, 0)
		m.now = func() time.Time { return now }

		require.NoError(t, m.Set(ctx, "k", "v", 10*time.Second))
		now = now.Add(11 * time.Second)
		_, err := m.Get(ctx, "k")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		m := NewMemory[string](time.Second, 0)
		m.now = func() time.Time { return now }

		require.NoError(t, m.Set(ctx, "k", "v", -1))
		now = now.Add(24 * time.Hour)
		v, err := m.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "v", v)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		m := NewMemory[int](time.Minute, 0)
		require.NoError(t, m.Set(ctx, "k", 1, 0))
		require.NoError(t, m.Delete(ctx, "k"))
		_, err := m.Get(ctx, "k")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("closed", func(t *testing.T) {
		t.Parallel()
		m := NewMemory[int](time.Minute, time.Millisecond)
		require.NoError(t, m.Close())
		require.NoError(t, m.Close())
		require.ErrorIs(t, m.Set(ctx, "k", 1, 0), ErrClosed)
	})
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("computes once then serves from cache", func(t *testing.T) {
		t.Parallel()
		m := NewMemory[int](time.Minute, 0)
		var calls atomic.Int32
		fn := func(context.Context) (int, error) {
			calls.Add(1)
			return 7, nil
		}

		for range 3 {
			v, err := GetOrSet(ctx, m, "stats", 0, fn)
			require.NoError(t, err)
			require.Equal(t, 7, v)
		}
		require.EqualValues(t, 1, calls.Load())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()
		m := NewMemory[int](time.Minute, 0)
		boom := errors.New("db down")

		_, err := GetOrSet(ctx, m, "stats", 0, func(context.Context) (int, error) { return 0, boom })
		require.ErrorIs(t, err, boom)

		v, err := GetOrSet(ctx, m, "stats", 0, func(context.Context) (int, error) { return 3, nil })
		require.NoError(t, err)
		require.Equal(t, 3, v)
	})

	t.Run("concurrent misses share one call", func(t *testing.T) {
		t.Parallel()
		m := NewMemory[int](time.Minute, 0)
		var calls atomic.Int32
		release := make(chan struct{})
		fn := func(context.Context) (int, error) {
			calls.Add(1)
			<-release
			return 1, nil
		}

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = GetOrSet(ctx, m, "shared", 0, fn)
			}()
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		require.LessOrEqual(t, calls.Load(), int32(2))
	})
}
