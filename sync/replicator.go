package sync

import (
	"context"
	"log"
	"time"
)

// runReplicator is the background worker active only on the leader.
// It mirrors master_slave.cc's BackgroundLog: wait for work, then
// drain everything currently unsent, in a loop, until told to exit.
func (c *Coordinator) runReplicator() {
	defer c.wg.Done()
	for {
		c.mu.Lock()
		for !c.exiting && c.syncOffset == c.currentOffset {
			c.replicatorCond.Wait()
		}
		if c.exiting {
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()

		c.replicateOneRound()
	}
}

// replicateOneRound drains sync.log from sync_offset up to whatever
// current_offset is at the time each record is read, sending each
// record to the follower in order. It returns early if the
// Coordinator starts shutting down mid-drain.
func (c *Coordinator) replicateOneRound() {
	for {
		c.mu.Lock()
		exiting := c.exiting
		caughtUp := c.syncOffset == c.currentOffset
		c.mu.Unlock()
		if exiting || caughtUp {
			return
		}

		payload, err := c.log.ReadRecord()
		if err != nil {
			// Short/incomplete reads indicate a torn append under the
			// single-writer model this design assumes; there is no
			// way to make forward progress, so this is fatal.
			log.Fatalf("[sync] replicateOneRound: %v", err)
		}

		if !c.sendWithRetry(payload) {
			// Shutdown requested mid-retry; leave this record unsent,
			// it stays on disk and is resent on the next Init.
			return
		}

		c.advanceAfterSend(len(payload))
	}
}

// sendWithRetry sends one AppendLog RPC, retrying forever on failure
// with a fixed backoff between attempts. It returns false only if the
// Coordinator is exiting, so a shutdown doesn't wait out an
// unreachable follower forever.
func (c *Coordinator) sendWithRetry(payload []byte) bool {
	for {
		c.mu.Lock()
		exiting := c.exiting
		syncOffset := c.syncOffset
		currentOffset := c.currentOffset
		c.mu.Unlock()
		if exiting {
			return false
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RPCTimeout())
		success, err := c.rpcClient.AppendLog(ctx, payload)
		cancel()

		if err == nil && success {
			return true
		}
		log.Printf("[sync] replicate log failed (sync_offset=%d current_offset=%d): %v", syncOffset, currentOffset, err)
		time.Sleep(c.cfg.RetryBackoff())
	}
}

// advanceAfterSend fires the callback registered at the
// just-acknowledged offset, advances sync_offset by the whole record
// (4-byte prefix + payload), and signals completionCond once
// sync_offset catches current_offset.
func (c *Coordinator) advanceAfterSend(payloadLen int) {
	c.mu.Lock()
	offset := c.syncOffset
	cb, found := c.callbacks.Take(offset)
	if !found && offset != 0 {
		// A missing callback is tolerated and logged rather than
		// treated as fatal — startup replay of pre-existing log bytes,
		// or an entry appended by a process that died before
		// registering its callback, both land here.
		log.Printf("[sync] no callback registered for offset %d", offset)
	}

	c.syncOffset = offset + 4 + uint64(payloadLen)
	caughtUp := c.syncOffset == c.currentOffset
	if caughtUp {
		c.completionCond.Broadcast()
	}
	c.mu.Unlock()

	if cb != nil {
		cb(true)
	}
}
