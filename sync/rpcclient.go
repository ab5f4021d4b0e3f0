package sync

import (
	"context"
	"fmt"

	"github.com/jameswei2019/bfs/proto"
	"github.com/jameswei2019/bfs/public"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// RPCClient sends AppendLog to the follower, blocking with a
// per-attempt timeout. The Replicator only depends on this interface,
// not on gRPC directly, so tests can substitute a fake follower
// without a socket.
type RPCClient interface {
	AppendLog(ctx context.Context, payload []byte) (bool, error)
}

// grpcRPCClient is the production RPCClient, wrapping a generated
// proto.SyncClient the way client/client.go's getGrpcC2NConn wraps
// proto.NewC2NClient.
type grpcRPCClient struct {
	conn   *grpc.ClientConn
	client proto.SyncClient
}

// DialRPCClient connects to the follower's gRPC address. The
// connection is kept open for the process lifetime; callers close it
// from Coordinator.Shutdown.
func DialRPCClient(address string) (*grpcRPCClient, error) {
	conn, err := grpc.Dial(address, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithBlock())
	if err != nil {
		return nil, err
	}
	return &grpcRPCClient{conn: conn, client: proto.NewSyncClient(conn)}, nil
}

func (c *grpcRPCClient) AppendLog(ctx context.Context, payload []byte) (bool, error) {
	resp, err := c.client.AppendLog(ctx, &proto.AppendLogRequest{LogData: payload})
	if err != nil {
		return false, fmt.Errorf("%w: %v", public.ErrRPCFailed, err)
	}
	if !resp.GetSuccess() {
		return false, public.ErrRPCFailed
	}
	return true, nil
}

func (c *grpcRPCClient) Close() error {
	return c.conn.Close()
}
