package frame

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timeout")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestLoopTicksUntilFalse(t *testing.T) {
	l := NewLoop(time.Millisecond)
	var n atomic.Int32
	l.Start(func(context.Context) bool {
		return n.Add(1) < 5
	})
	waitFor(t, func() bool { return !l.Running() })
	if got := n.Load(); got != 5 {
		t.Errorf("frames = %d, want 5", got)
	}
}

func TestLoopStop(t *testing.T) {
	l := NewLoop(time.Millisecond)
	var n atomic.Int32
	l.Start(func(context.Context) bool {
		n.Add(1)
		return true
	})
	waitFor(t, func() bool { return n.Load() > 2 })
	l.Stop()
	if l.Running() {
		t.Error("still running after Stop")
	}

	time.Sleep(10 * time.Millisecond)
	after := n.Load()
	time.Sleep(20 * time.Millisecond)
	if n.Load() != after {
		t.Error("frames continued after Stop")
	}
}

func TestLoopRestartCancelsPrevious(t *testing.T) {
	l := NewLoop(time.Millisecond)
	first := make(chan context.Context, 1)
	l.Start(func(ctx context.Context) bool {
		select {
		case first <- ctx:
		default:
		}
		return true
	})
	ctx := <-first

	var second atomic.Int32
	l.Start(func(context.Context) bool {
		second.Add(1)
		return true
	})
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("previous loop not cancelled")
	}
	waitFor(t, func() bool { return second.Load() > 0 })
	if !l.Running() {
		t.Error("second loop should be running")
	}
	l.Stop()
}
