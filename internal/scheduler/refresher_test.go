package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestRefresher_RefreshesOnStartAndTick(t *testing.T) {
	var calls atomic.Int64
	r := NewRefresher(5*time.Millisecond, func(context.Context) {
		calls.Add(1)
	})

	go r.Run(context.Background())
	defer r.Stop()

	deadline := time.After(2 * time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("refresh calls = %d after 2s, want >= 3", calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestRefresher_FocusTriggersRefresh(t *testing.T) {
	var calls atomic.Int64
	r := NewRefresher(time.Hour, func(context.Context) {
		calls.Add(1)
	})

	go r.Run(context.Background())
	defer r.Stop()

	// wait for the mount-time refresh
	deadline := time.After(2 * time.Second)
	for calls.Load() < 1 {
		select {
		case <-deadline:
			t.Fatal("mount-time refresh never ran")
		case <-time.After(time.Millisecond):
		}
	}

	r.Focus()

	deadline = time.After(2 * time.Second)
	for calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("refresh calls = %d after focus, want 2", calls.Load())
		case <-time.After(time.Millisecond):
		}
	}
}

func TestRefresher_StopTearsDown(t *testing.T) {
	var calls atomic.Int64
	r := NewRefresher(time.Millisecond, func(context.Context) {
		calls.Add(1)
	})

	done := make(chan struct{})
	go func() {
		r.Run(context.Background())
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	r.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after Stop()")
	}

	settled := calls.Load()
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != settled {
		t.Error("refresh kept firing after Stop()")
	}

	// Stop is idempotent
	r.Stop()
}

func TestRefresher_ContextCancelTearsDown(t *testing.T) {
	r := NewRefresher(time.Millisecond, func(context.Context) {})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after context cancel")
	}
}
