package sync

import (
	"log"
	"time"

	"github.com/jameswei2019/bfs/public"
)

// runProgressPersister periodically snapshots sync_offset to disk so
// a restart resumes replication from roughly where it left off
// instead of replaying the whole log, mirroring the ticking
// background-save idiom used elsewhere in this codebase for
// lease/progress bookkeeping. A missed tick just means a slightly
// longer replay on the next startup; it never loses acknowledged
// data, since sync_offset only ever advances past an entry the
// follower has already durably appended.
func (c *Coordinator) runProgressPersister() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cfg.ProgressInterval())
	defer ticker.Stop()

	for {
		c.mu.Lock()
		exiting := c.exiting
		c.mu.Unlock()
		if exiting {
			c.persistProgress()
			return
		}

		<-ticker.C

		c.mu.Lock()
		exiting = c.exiting
		c.mu.Unlock()
		if exiting {
			c.persistProgress()
			return
		}
		c.persistProgress()
	}
}

func (c *Coordinator) persistProgress() {
	c.mu.Lock()
	offset := c.syncOffset
	c.mu.Unlock()

	if err := c.progress.Save(offset); err != nil {
		log.Printf("[sync] progress persist failed at offset %d: %v", offset, err)
	}
	log.Printf("[sync] progress snapshot at offset %d, free=%dB", offset, public.DiskFree(c.cfg.WorkDir))
}
