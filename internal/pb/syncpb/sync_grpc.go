package syncpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	SyncService_SyncMarkets_FullMethodName = "/sync.SyncService/SyncMarkets"
	SyncService_PushTrade_FullMethodName   = "/sync.SyncService/PushTrade"
)

// SyncServiceClient is the client API for SyncService.
type SyncServiceClient interface {
	SyncMarkets(ctx context.Context, opts ...grpc.CallOption) (SyncService_SyncMarketsClient, error)
	PushTrade(ctx context.Context, in *TradeRequest, opts ...grpc.CallOption) (*Empty, error)
}

type syncServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSyncServiceClient(cc grpc.ClientConnInterface) SyncServiceClient {
	return &syncServiceClient{cc}
}

func (c *syncServiceClient) SyncMarkets(ctx context.Context, opts ...grpc.CallOption) (SyncService_SyncMarketsClient, error) {
	stream, err := c.cc.NewStream(ctx, &SyncService_ServiceDesc.Streams[0], SyncService_SyncMarkets_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	return &syncServiceSyncMarketsClient{stream}, nil
}

// SyncService_SyncMarketsClient is the client side of the SyncMarkets stream.
type SyncService_SyncMarketsClient interface {
	Send(*SyncMarketsRequest) error
	CloseAndRecv() (*Empty, error)
	grpc.ClientStream
}

type syncServiceSyncMarketsClient struct {
	grpc.ClientStream
}

func (x *syncServiceSyncMarketsClient) Send(m *SyncMarketsRequest) error {
	return x.ClientStream.SendMsg(m)
}

func (x *syncServiceSyncMarketsClient) CloseAndRecv() (*Empty, error) {
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	m := new(Empty)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *syncServiceClient) PushTrade(ctx context.Context, in *TradeRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, SyncService_PushTrade_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// SyncServiceServer is the server API for SyncService.
type SyncServiceServer interface {
	SyncMarkets(SyncService_SyncMarketsServer) error
	PushTrade(context.Context, *TradeRequest) (*Empty, error)
}

// UnimplementedSyncServiceServer can be embedded to have forward compatible implementations.
type UnimplementedSyncServiceServer struct{}

func (UnimplementedSyncServiceServer) SyncMarkets(SyncService_SyncMarketsServer) error {
	return status.Errorf(codes.Unimplemented, "method SyncMarkets not implemented")
}

func (UnimplementedSyncServiceServer) PushTrade(context.Context, *TradeRequest) (*Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PushTrade not implemented")
}

func RegisterSyncServiceServer(s grpc.ServiceRegistrar, srv SyncServiceServer) {
	s.RegisterService(&SyncService_ServiceDesc, srv)
}

func _SyncService_SyncMarkets_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(SyncServiceServer).SyncMarkets(&syncServiceSyncMarketsServer{stream})
}

// SyncService_SyncMarketsServer is the server side of the SyncMarkets stream.
type SyncService_SyncMarketsServer interface {
	SendAndClose(*Empty) error
	Recv() (*SyncMarketsRequest, error)
	grpc.ServerStream
}

type syncServiceSyncMarketsServer struct {
	grpc.ServerStream
}

func (x *syncServiceSyncMarketsServer) SendAndClose(m *Empty) error {
	return x.ServerStream.SendMsg(m)
}

func (x *syncServiceSyncMarketsServer) Recv() (*SyncMarketsRequest, error) {
	m := new(SyncMarketsRequest)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func _SyncService_PushTrade_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(TradeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SyncServiceServer).PushTrade(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SyncService_PushTrade_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SyncServiceServer).PushTrade(ctx, req.(*TradeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// SyncService_ServiceDesc is the grpc.ServiceDesc for SyncService.
var SyncService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "sync.SyncService",
	HandlerType: (*SyncServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PushTrade",
			Handler:    _SyncService_PushTrade_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "SyncMarkets",
			Handler:       _SyncService_SyncMarkets_Handler,
			ClientStreams: true,
		},
	},
	Metadata: "sync.proto",
}
