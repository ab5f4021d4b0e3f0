package sync

import (
	"context"

	"github.com/jameswei2019/bfs/proto"
)

// SyncServer adapts a Coordinator to proto.SyncServer so it can be
// registered on a grpc.Server with proto.RegisterSyncServer, the same
// handler-wraps-a-domain-object shape namenode/service uses for its
// own RPC surface.
type SyncServer struct {
	proto.UnimplementedSyncServer
	coordinator *Coordinator
}

func NewSyncServer(c *Coordinator) *SyncServer {
	return &SyncServer{coordinator: c}
}

func (s *SyncServer) AppendLog(ctx context.Context, req *proto.AppendLogRequest) (*proto.AppendLogResponse, error) {
	success, err := s.coordinator.AppendLog(ctx, req.GetLogData())
	if err != nil {
		return nil, err
	}
	return &proto.AppendLogResponse{Success: success}, nil
}
