package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingTarget struct {
	calls atomic.Int32
}

func (c *countingTarget) Sweep(time.Time) int {
	c.calls.Add(1)
	return 1
}

func TestSweeper_RunsUntilCancelled(t *testing.T) {
	target := &countingTarget{}
	s := NewSweeper("test", target, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return target.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSweeper_DefaultInterval(t *testing.T) {
	s := NewSweeper("test", &countingTarget{}, 0)
	assert.Equal(t, SweepInterval, s.interval)
	assert.Equal(t, 1, s.sweep())
}
