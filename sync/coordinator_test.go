package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jameswei2019/bfs/config"
)

// fakeRPCClient is the RPCClient double tests substitute for a real
// follower, so replicator behavior can be exercised without a socket.
type fakeRPCClient struct {
	fail bool
}

func (f *fakeRPCClient) AppendLog(ctx context.Context, payload []byte) (bool, error) {
	if f.fail {
		return false, errors.New("fake follower unreachable")
	}
	return true, nil
}

func newTestCoordinator(t *testing.T, rpc RPCClient) *Coordinator {
	cfg := &config.Sync{
		Role:               config.RoleMaster,
		WorkDir:            t.TempDir(),
		RPCTimeoutMS:       200,
		RetryBackoffMS:     10,
		ProgressIntervalMS: 1000,
	}
	c := NewCoordinator(cfg)

	durableLog, currentOffset, err := OpenDurableLog(cfg.WorkDir, 0)
	if err != nil {
		t.Fatalf("OpenDurableLog: %v", err)
	}
	c.log = durableLog
	c.currentOffset = currentOffset
	c.rpcClient = rpc

	c.wg.Add(1)
	go c.runReplicator()
	t.Cleanup(func() {
		c.mu.Lock()
		c.exiting = true
		c.replicatorCond.Broadcast()
		c.completionCond.Broadcast()
		c.mu.Unlock()
		c.wg.Wait()
		c.log.Close()
	})
	return c
}

func TestCoordinatorLogAsyncFiresCallbackOnAck(t *testing.T) {
	c := newTestCoordinator(t, &fakeRPCClient{})

	done := make(chan bool, 1)
	c.LogAsync([]byte("entry one"), func(ok bool) { done <- ok })

	select {
	case ok := <-done:
		if !ok {
			t.Fatalf("callback fired with ok=false, want true")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("callback never fired")
	}
}

func TestCoordinatorLogWaitsForCatchUp(t *testing.T) {
	c := newTestCoordinator(t, &fakeRPCClient{})

	c.Log([]byte("entry two"), time.Second)

	c.mu.Lock()
	caughtUp := c.syncOffset == c.currentOffset
	masterOnly := c.masterOnly
	c.mu.Unlock()

	if !caughtUp {
		t.Fatalf("sync_offset did not catch up to current_offset")
	}
	if masterOnly {
		t.Fatalf("masterOnly = true, want false after a successful catch-up")
	}
}

func TestCoordinatorLogEntersMasterOnlyOnTimeout(t *testing.T) {
	c := newTestCoordinator(t, &fakeRPCClient{fail: true})

	c.Log([]byte("entry three"), 50*time.Millisecond)

	c.mu.Lock()
	masterOnly := c.masterOnly
	c.mu.Unlock()

	if !masterOnly {
		t.Fatalf("masterOnly = false, want true after a replication timeout")
	}
}

func TestCoordinatorShutdownFiresPendingCallbacksWithFalse(t *testing.T) {
	c := newTestCoordinator(t, &fakeRPCClient{fail: true})

	done := make(chan bool, 1)
	c.LogAsync([]byte("never acked"), func(ok bool) { done <- ok })

	if err := c.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	select {
	case ok := <-done:
		if ok {
			t.Fatalf("callback fired with ok=true, want false on shutdown")
		}
	default:
		t.Fatalf("callback never fired by Shutdown")
	}
}

func TestCoordinatorAppendLogInvokesApplyCallback(t *testing.T) {
	cfg := &config.Sync{Role: config.RoleSlave, WorkDir: t.TempDir()}
	c := NewCoordinator(cfg)
	durableLog, _, err := OpenDurableLog(cfg.WorkDir, 0)
	if err != nil {
		t.Fatalf("OpenDurableLog: %v", err)
	}
	c.log = durableLog
	defer c.log.Close()

	var applied []byte
	c.RegisterApplyCallback(func(payload []byte) { applied = payload })

	if _, err := c.AppendLog(context.Background(), []byte("replicated entry")); err != nil {
		t.Fatalf("AppendLog: %v", err)
	}
	if string(applied) != "replicated entry" {
		t.Fatalf("applied = %q, want %q", applied, "replicated entry")
	}
}
