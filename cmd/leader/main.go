// Command leader runs the replication engine's master side: it opens
// sync.log, dials the configured follower, and exposes a trivial demo
// write path over the store table so the replicated log carries real
// entries.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jameswei2019/bfs/config"
	"github.com/jameswei2019/bfs/store"
	"github.com/jameswei2019/bfs/sync"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config")
	flag.Parse()

	conf := config.LoadOrFatal(*configPath)
	conf = config.Flags(conf)
	if conf.Sync.Role != config.RoleMaster {
		log.Fatalf("[leader] config role=%s, expected master", conf.Sync.Role)
	}

	table, err := store.Open(conf.Sync.WorkDir + "/table")
	if err != nil {
		log.Fatalf("[leader] %v", err)
	}

	coordinator := sync.NewCoordinator(conf.Sync)
	if err := coordinator.Init(); err != nil {
		log.Fatalf("[leader] init: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("[leader] ready, replicating to %s", conf.Sync.SlaveNode)
	demoWriteLoop(ctx, coordinator, table, conf.Sync)

	log.Printf("[leader] shutting down")
	if err := coordinator.Shutdown(); err != nil {
		log.Printf("[leader] shutdown: %v", err)
	}
	if err := table.Close(); err != nil {
		log.Printf("[leader] table close: %v", err)
	}
	os.Exit(0)
}

// demoWriteLoop stands in for the nameserver write path that would
// otherwise call Log/LogAsync: it periodically submits a heartbeat
// entry through the synchronous API so the replication pipeline has
// something flowing until the process receives a shutdown signal.
func demoWriteLoop(ctx context.Context, coordinator *sync.Coordinator, table *store.Table, cfg *config.Sync) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			value := []byte(time.Now().UTC().Format(time.RFC3339))
			payload, err := store.EncodeOp("heartbeat", value)
			if err != nil {
				log.Printf("[leader] encode op: %v", err)
				continue
			}
			coordinator.Log(payload, cfg.RPCTimeout())
			if err := table.Put("heartbeat", value); err != nil {
				log.Printf("[leader] local put: %v", err)
			}
		}
	}
}
