package exchangespb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ExchangeService_ListExchanges_FullMethodName = "/exchanges.ExchangeService/ListExchanges"
	ExchangeService_AddExchange_FullMethodName   = "/exchanges.ExchangeService/AddExchange"
)

// ExchangeServiceClient is the client API for ExchangeService.
type ExchangeServiceClient interface {
	ListExchanges(ctx context.Context, in *ListExchangesRequest, opts ...grpc.CallOption) (*ListExchangesResponse, error)
	AddExchange(ctx context.Context, in *AddExchangeRequest, opts ...grpc.CallOption) (*AddExchangeResponse, error)
}

type exchangeServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewExchangeServiceClient(cc grpc.ClientConnInterface) ExchangeServiceClient {
	return &exchangeServiceClient{cc}
}

func (c *exchangeServiceClient) ListExchanges(ctx context.Context, in *ListExchangesRequest, opts ...grpc.CallOption) (*ListExchangesResponse, error) {
	out := new(ListExchangesResponse)
	if err := c.cc.Invoke(ctx, ExchangeService_ListExchanges_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *exchangeServiceClient) AddExchange(ctx context.Context, in *AddExchangeRequest, opts ...grpc.CallOption) (*AddExchangeResponse, error) {
	out := new(AddExchangeResponse)
	if err := c.cc.Invoke(ctx, ExchangeService_AddExchange_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ExchangeServiceServer is the server API for ExchangeService.
type ExchangeServiceServer interface {
	ListExchanges(context.Context, *ListExchangesRequest) (*ListExchangesResponse, error)
	AddExchange(context.Context, *AddExchangeRequest) (*AddExchangeResponse, error)
}

// UnimplementedExchangeServiceServer can be embedded to have forward compatible implementations.
type UnimplementedExchangeServiceServer struct{}

func (UnimplementedExchangeServiceServer) ListExchanges(context.Context, *ListExchangesRequest) (*ListExchangesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListExchanges not implemented")
}

func (UnimplementedExchangeServiceServer) AddExchange(context.Context, *AddExchangeRequest) (*AddExchangeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AddExchange not implemented")
}

func RegisterExchangeServiceServer(s grpc.ServiceRegistrar, srv ExchangeServiceServer) {
	s.RegisterService(&ExchangeService_ServiceDesc, srv)
}

func _ExchangeService_ListExchanges_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListExchangesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ExchangeServiceServer).ListExchanges(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ExchangeService_ListExchanges_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ExchangeServiceServer).ListExchanges(ctx, req.(*ListExchangesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ExchangeService_AddExchange_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AddExchangeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ExchangeServiceServer).AddExchange(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ExchangeService_AddExchange_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ExchangeServiceServer).AddExchange(ctx, req.(*AddExchangeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ExchangeService_ServiceDesc is the grpc.ServiceDesc for ExchangeService.
var ExchangeService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "exchanges.ExchangeService",
	HandlerType: (*ExchangeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListExchanges",
			Handler:    _ExchangeService_ListExchanges_Handler,
		},
		{
			MethodName: "AddExchange",
			Handler:    _ExchangeService_AddExchange_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "exchanges.proto",
}
