package periodicsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/anyproto/any-share/app/logger"
)

var l = logger.NewNamed("sync")

func waitForCall(t *testing.T, calls chan struct{}) {
	select {
	case <-calls:
	case <-time.After(time.Second * 5):
		t.Fatal("caller was not called")
	}
}

func TestPeriodicSync_Run(t *testing.T) {
	t.Run("first call on run", func(t *testing.T) {
		times := atomic.NewInt32(0)
		calls := make(chan struct{}, 10)
		pSync := NewPeriodicSyncDuration(time.Minute, 0, func(ctx context.Context) error {
			times.Inc()
			calls <- struct{}{}
			return nil
		}, l)
		pSync.Run()
		waitForCall(t, calls)
		pSync.Close()
		require.Equal(t, int32(1), times.Load())
	})
	t.Run("kick", func(t *testing.T) {
		times := atomic.NewInt32(0)
		calls := make(chan struct{}, 10)
		pSync := NewPeriodicSyncDuration(time.Minute, 0, func(ctx context.Context) error {
			times.Inc()
			calls <- struct{}{}
			return nil
		}, l)
		pSync.Run()
		waitForCall(t, calls)
		pSync.Kick()
		waitForCall(t, calls)
		pSync.Close()
		require.Equal(t, int32(2), times.Load())
	})
	t.Run("ticks and errors", func(t *testing.T) {
		calls := make(chan struct{}, 10)
		withDeadline := atomic.NewBool(true)
		pSync := NewPeriodicSyncDuration(time.Millisecond*10, time.Second, func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); !ok {
				withDeadline.Store(false)
			}
			select {
			case calls <- struct{}{}:
			default:
			}
			return errors.New("remote unavailable")
		}, l)
		pSync.Run()
		waitForCall(t, calls)
		waitForCall(t, calls)
		waitForCall(t, calls)
		pSync.Close()
		require.True(t, withDeadline.Load())
	})
	t.Run("close without run", func(t *testing.T) {
		pSync := NewPeriodicSync(1, 0, func(ctx context.Context) error { return nil }, l)
		pSync.Close()
	})
}
