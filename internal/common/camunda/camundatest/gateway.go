// internal/common/camunda/camundatest/gateway.go
package camundatest

import (
	"context"
	"sync"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"google.golang.org/grpc"
)

// Gateway records the job commands a handler sends. Like a real gRPC
// connection it refuses commands whose context is already done.
type Gateway struct {
	pb.GatewayClient

	mu        sync.Mutex
	completed []*pb.CompleteJobRequest
	failed    []*pb.FailJobRequest
	thrown    []*pb.ThrowErrorRequest
}

func (g *Gateway) CompleteJob(ctx context.Context, in *pb.CompleteJobRequest, _ ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.completed = append(g.completed, in)
	return &pb.CompleteJobResponse{}, nil
}

func (g *Gateway) FailJob(ctx context.Context, in *pb.FailJobRequest, _ ...grpc.CallOption) (*pb.FailJobResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failed = append(g.failed, in)
	return &pb.FailJobResponse{}, nil
}

func (g *Gateway) ThrowError(ctx context.Context, in *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.thrown = append(g.thrown, in)
	return &pb.ThrowErrorResponse{}, nil
}

func (g *Gateway) Completed() []*pb.CompleteJobRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*pb.CompleteJobRequest(nil), g.completed...)
}

func (g *Gateway) Failed() []*pb.FailJobRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*pb.FailJobRequest(nil), g.failed...)
}

func (g *Gateway) Thrown() []*pb.ThrowErrorRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*pb.ThrowErrorRequest(nil), g.thrown...)
}

// JobClient returns a worker.JobClient whose commands go to g.
func (g *Gateway) JobClient() worker.JobClient {
	return jobClient{gateway: g}
}

type jobClient struct {
	gateway pb.GatewayClient
}

func noRetry(context.Context, error) bool { return false }

func (c jobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c.gateway, noRetry)
}

func (c jobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c.gateway, noRetry)
}

func (c jobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c.gateway, noRetry)
}
