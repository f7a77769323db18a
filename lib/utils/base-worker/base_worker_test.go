package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRun(t *testing.T) {
	t.Run("periodic run and stop check", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx, cancel := context.WithCancel(context.Background())
		var runs atomic.Int32
		done := make(chan struct{})
		go func() {
			NewInstance("test", time.Millisecond, time.Millisecond).Run(ctx, func(ctx context.Context) {
				runs.Add(1)
			})
			close(done)
		}()
		require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, time.Millisecond)
		cancel()
		<-done
	})
	t.Run("panic does not stop worker check", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx, cancel := context.WithCancel(context.Background())
		var runs atomic.Int32
		done := make(chan struct{})
		go func() {
			NewInstance("test", time.Millisecond, time.Millisecond).Run(ctx, func(ctx context.Context) {
				if runs.Add(1) == 1 {
					panic("boom")
				}
			})
			close(done)
		}()
		require.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, time.Millisecond)
		cancel()
		<-done
	})
}
