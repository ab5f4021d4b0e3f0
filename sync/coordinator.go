package sync

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jameswei2019/bfs/config"
	"github.com/jameswei2019/bfs/public"
)

// Coordinator is the facade a nameserver's write path talks to: it
// owns the DurableLog, the ProgressStore, the CallbackRegistry, and
// (on the leader) the Replicator and ProgressPersister background
// workers. One Coordinator mutex guards current_offset, sync_offset,
// master_only, and the CallbackRegistry; two condition variables
// bound to it separate "an append happened" from "replication caught
// up".
type Coordinator struct {
	mu sync.Mutex

	replicatorCond *sync.Cond // signaled after an append; waited on by the Replicator
	completionCond *sync.Cond // signaled when sync_offset catches current_offset

	currentOffset uint64
	syncOffset    uint64
	masterOnly    bool
	exiting       bool

	callbacks *CallbackRegistry
	log       *DurableLog
	progress  *ProgressStore

	role      config.Role
	rpcClient RPCClient
	applyCb   func([]byte)

	cfg *config.Sync
	wg  sync.WaitGroup
}

// NewCoordinator constructs an unstarted Coordinator for the given
// role. Call Init to open the log, resume sync_offset, and (on the
// leader) start the background workers.
func NewCoordinator(cfg *config.Sync) *Coordinator {
	c := &Coordinator{
		callbacks: NewCallbackRegistry(),
		progress:  NewProgressStore(cfg.WorkDir),
		role:      cfg.Role,
		cfg:       cfg,
	}
	c.replicatorCond = sync.NewCond(&c.mu)
	c.completionCond = sync.NewCond(&c.mu)
	return c
}

// IsLeader reports the configured role.
func (c *Coordinator) IsLeader() bool {
	return c.role == config.RoleMaster
}

// RegisterApplyCallback sets the follower-side hook invoked once per
// received entry.
func (c *Coordinator) RegisterApplyCallback(cb func([]byte)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyCb = cb
}

// Init loads sync_offset, opens sync.log, asserts the startup
// invariant, and — if this process is the leader — dials the
// follower and starts the Replicator and ProgressPersister.
func (c *Coordinator) Init() error {
	public.CreateDir(c.cfg.WorkDir)

	syncOffset, err := c.progress.Load()
	if err != nil {
		log.Fatalf("[sync] Init: %v", err)
	}

	durableLog, currentOffset, err := OpenDurableLog(c.cfg.WorkDir, syncOffset)
	if err != nil {
		log.Fatalf("[sync] Init: %v", err)
	}
	if currentOffset < syncOffset {
		log.Fatalf("[sync] Init: %v: current_offset=%d sync_offset=%d", public.ErrInvariantViolation, currentOffset, syncOffset)
	}

	c.log = durableLog
	c.syncOffset = syncOffset
	c.currentOffset = currentOffset

	log.Printf("[sync] Init: role=%s current_offset=%d sync_offset=%d free=%dB",
		c.role, c.currentOffset, c.syncOffset, public.DiskFree(c.cfg.WorkDir))

	if !c.IsLeader() {
		return nil
	}

	rpcClient, err := DialRPCClient(c.cfg.SlaveNode)
	if err != nil {
		log.Fatalf("[sync] Init: dial %s: %v", c.cfg.SlaveNode, err)
	}
	c.rpcClient = rpcClient

	c.wg.Add(2)
	go c.runReplicator()
	go c.runProgressPersister()
	return nil
}

// Shutdown stops the background workers, fires any still-pending
// async callbacks with false, and releases the log and RPC handles.
func (c *Coordinator) Shutdown() error {
	c.mu.Lock()
	c.exiting = true
	c.replicatorCond.Broadcast()
	c.completionCond.Broadcast()
	pending := c.callbacks.TakeAll()
	c.mu.Unlock()

	for _, cb := range pending {
		cb(false)
	}

	c.wg.Wait()

	if closer, ok := c.rpcClient.(*grpcRPCClient); ok && closer != nil {
		closer.Close()
	}
	return c.log.Close()
}

// Log is the synchronous submit path: append locally, then wait for
// the follower to catch sync_offset up to current_offset, up to
// timeout. It always returns true — a replication timeout is never
// surfaced as an error here, only as a transition into master-only
// mode.
func (c *Coordinator) Log(entry []byte, timeout time.Duration) bool {
	c.mu.Lock()
	entryStart := c.currentOffset
	written, err := c.log.Append(entry)
	if err != nil {
		c.mu.Unlock()
		log.Fatalf("[sync] Log: %v", err)
	}
	c.currentOffset += written
	c.replicatorCond.Signal()

	// Slave is believed to be far enough behind that waiting for it
	// would just burn the timeout; accept the write and move on.
	if c.masterOnly && c.syncOffset < entryStart {
		c.mu.Unlock()
		return true
	}

	deadline := time.Now().Add(timeout)
	caughtUp := c.waitForCatchUpLocked(deadline)
	if caughtUp {
		if c.masterOnly {
			log.Printf("[sync] leaves master-only mode")
			c.masterOnly = false
		}
	} else {
		log.Printf("[sync] sync log timeout, entering master-only mode")
		c.masterOnly = true
	}
	c.mu.Unlock()
	return true
}

// waitForCatchUpLocked waits on completionCond, rechecking
// sync_offset against the live current_offset on each wake — not
// against a snapshot taken at entry. Under concurrent submits this
// can make an individual caller wait past its own entry's
// acknowledgement, or time out despite it; the wait condition is
// intentionally on the shared current_offset, not the caller's own
// target offset. c.mu must be held on entry; it is held on return.
func (c *Coordinator) waitForCatchUpLocked(deadline time.Time) bool {
	timer := time.AfterFunc(time.Until(deadline), func() {
		c.mu.Lock()
		c.completionCond.Broadcast()
		c.mu.Unlock()
	})
	defer timer.Stop()

	for c.syncOffset != c.currentOffset {
		if !time.Now().Before(deadline) {
			return false
		}
		c.completionCond.Wait()
	}
	return true
}

// LogAsync is the non-blocking submit path: append locally, register
// cb against the entry's start offset, and return immediately. cb
// fires from the Replicator's goroutine once the entry is
// acknowledged, or from Shutdown with false if the process stops
// first.
func (c *Coordinator) LogAsync(entry []byte, cb func(bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entryStart := c.currentOffset
	written, err := c.log.Append(entry)
	if err != nil {
		log.Fatalf("[sync] LogAsync: %v", err)
	}
	c.callbacks.Insert(entryStart, cb)
	c.currentOffset += written
	c.replicatorCond.Signal()
}

// AppendLog is the follower-side RPC handler: persist the record and
// invoke the apply callback synchronously, then acknowledge. No
// acknowledgement is withheld on apply failure — apply is assumed
// infallible by contract.
func (c *Coordinator) AppendLog(ctx context.Context, payload []byte) (bool, error) {
	c.mu.Lock()
	if _, err := c.log.Append(payload); err != nil {
		c.mu.Unlock()
		log.Fatalf("[sync] AppendLog: %v", err)
	}
	cb := c.applyCb
	c.mu.Unlock()

	if cb != nil {
		cb(payload)
	}
	return true, nil
}
