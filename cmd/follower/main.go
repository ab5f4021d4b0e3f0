// Command follower runs the replication engine's slave side: it
// serves AppendLog over gRPC and applies every received entry to a
// local store table.
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/jameswei2019/bfs/config"
	"github.com/jameswei2019/bfs/proto"
	"github.com/jameswei2019/bfs/store"
	"github.com/jameswei2019/bfs/sync"
	"google.golang.org/grpc"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config")
	flag.Parse()

	conf := config.LoadOrFatal(*configPath)
	conf = config.Flags(conf)
	if conf.Sync.Role != config.RoleSlave {
		log.Fatalf("[follower] config role=%s, expected slave", conf.Sync.Role)
	}

	table, err := store.Open(conf.Sync.WorkDir + "/table")
	if err != nil {
		log.Fatalf("[follower] %v", err)
	}

	coordinator := sync.NewCoordinator(conf.Sync)
	coordinator.RegisterApplyCallback(table.Apply)
	if err := coordinator.Init(); err != nil {
		log.Fatalf("[follower] init: %v", err)
	}

	listener, err := net.Listen("tcp", conf.Sync.ListenAddress)
	if err != nil {
		log.Fatalf("[follower] listen %s: %v", conf.Sync.ListenAddress, err)
	}

	grpcServer := grpc.NewServer()
	proto.RegisterSyncServer(grpcServer, sync.NewSyncServer(coordinator))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		log.Printf("[follower] serving AppendLog on %s", conf.Sync.ListenAddress)
		if err := grpcServer.Serve(listener); err != nil {
			log.Printf("[follower] serve: %v", err)
		}
	}()

	<-ctx.Done()

	log.Printf("[follower] shutting down")
	grpcServer.GracefulStop()
	if err := coordinator.Shutdown(); err != nil {
		log.Printf("[follower] shutdown: %v", err)
	}
	if err := table.Close(); err != nil {
		log.Printf("[follower] table close: %v", err)
	}
	os.Exit(0)
}
