package shutdown_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"notekeep/pkg/shutdown"
)

func TestWaitExecutesHooksOnContextCancel(t *testing.T) {
	hook1Called := make(chan struct{})
	hook2Called := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())

	waitDone := make(chan struct{})
	go func() {
		shutdown.Wait(ctx, time.Second,
			func(context.Context) error {
				close(hook1Called)
				return nil
			},
			func(context.Context) error {
				close(hook2Called)
				return nil
			},
		)
		close(waitDone)
	}()

	cancel()

	select {
	case <-hook1Called:
	case <-time.After(2 * time.Second):
		t.Fatal("first hook was not called")
	}

	select {
	case <-hook2Called:
	case <-time.After(2 * time.Second):
		t.Fatal("second hook was not called")
	}

	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return")
	}
}

func TestWaitRespectsTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slowHookFinished := false
	start := time.Now()

	shutdown.Wait(ctx, 100*time.Millisecond, func(hookCtx context.Context) error {
		select {
		case <-time.After(5 * time.Second):
			slowHookFinished = true
		case <-hookCtx.Done():
		}
		return nil
	})

	assert.False(t, slowHookFinished, "slow hook should have been cut off by the timeout")
	assert.Less(t, time.Since(start), 2*time.Second)
}
