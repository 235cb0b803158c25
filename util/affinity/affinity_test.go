package affinity

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_Do(t *testing.T) {
	e := New()
	e.Run()
	defer func() {
		require.NoError(t, e.Close())
	}()

	var (
		counter int
		wg      sync.WaitGroup
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, e.Do(func() {
				counter++
			}))
		}()
	}
	wg.Wait()

	var got int
	require.NoError(t, e.Do(func() {
		got = counter
	}))
	assert.Equal(t, 100, got)
}

func TestExecutor_GoKeepsOrder(t *testing.T) {
	e := New()
	e.Run()
	defer e.Close()

	var order []int
	for i := 0; i < 10; i++ {
		i := i
		require.NoError(t, e.Go(func() {
			order = append(order, i)
		}))
	}
	var got []int
	require.NoError(t, e.Do(func() {
		got = append(got, order...)
	}))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestExecutor_Close(t *testing.T) {
	t.Run("closed executor rejects", func(t *testing.T) {
		e := New()
		e.Run()
		require.NoError(t, e.Close())
		assert.ErrorIs(t, e.Do(func() {}), ErrClosed)
		assert.ErrorIs(t, e.Go(func() {}), ErrClosed)
		assert.ErrorIs(t, e.Close(), ErrClosed)
	})
	t.Run("close without run", func(t *testing.T) {
		e := New()
		done := make(chan struct{})
		go func() {
			_ = e.Close()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("close blocked")
		}
	})
}
