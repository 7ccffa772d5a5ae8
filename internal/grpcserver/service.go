package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "careers.v1.JobBoard"

const (
	listJobsMethod    = "/" + ServiceName + "/ListJobs"
	appliedJobsMethod = "/" + ServiceName + "/AppliedJobs"
)

// JobBoardServer is the server API of careers.v1.JobBoard. Messages are
// well-known types so the service needs no generated code:
//
//	ListJobs(Struct{filter, start}) → Struct{data, total, count, start, moreAvailable}
//	AppliedJobs(Empty)              → ListValue of job ids
type JobBoardServer interface {
	ListJobs(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	AppliedJobs(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
}

// JobBoardServiceDesc describes careers.v1.JobBoard for grpc.Server.
var JobBoardServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*JobBoardServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListJobs", Handler: listJobsHandler},
		{MethodName: "AppliedJobs", Handler: appliedJobsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "careers/v1/job_board.proto",
}

// Register mounts srv on s.
func Register(s grpc.ServiceRegistrar, srv JobBoardServer) {
	s.RegisterService(&JobBoardServiceDesc, srv)
}

func listJobsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobBoardServer).ListJobs(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listJobsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(JobBoardServer).ListJobs(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func appliedJobsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobBoardServer).AppliedJobs(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: appliedJobsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(JobBoardServer).AppliedJobs(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// JobBoardClient calls careers.v1.JobBoard.
type JobBoardClient struct {
	cc grpc.ClientConnInterface
}

// NewJobBoardClient returns a client over cc.
func NewJobBoardClient(cc grpc.ClientConnInterface) *JobBoardClient {
	return &JobBoardClient{cc: cc}
}

func (c *JobBoardClient) ListJobs(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, listJobsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *JobBoardClient) AppliedJobs(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, appliedJobsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
