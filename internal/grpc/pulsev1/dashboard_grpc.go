// Package pulsev1 holds the gRPC contract of pulse.v1.DashboardService.
// Every message is a google.protobuf.Struct so the service needs no
// generated message types.
package pulsev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "pulse.v1.DashboardService"

const (
	DashboardService_GetDashboard_FullMethodName       = "/" + ServiceName + "/GetDashboard"
	DashboardService_DismissAlert_FullMethodName       = "/" + ServiceName + "/DismissAlert"
	DashboardService_SelectDay_FullMethodName          = "/" + ServiceName + "/SelectDay"
	DashboardService_ClickDeliveryChart_FullMethodName = "/" + ServiceName + "/ClickDeliveryChart"
	DashboardService_ClearDrillDown_FullMethodName     = "/" + ServiceName + "/ClearDrillDown"
	DashboardService_SetFilter_FullMethodName          = "/" + ServiceName + "/SetFilter"
	DashboardService_WatchDashboard_FullMethodName     = "/" + ServiceName + "/WatchDashboard"
)

// DashboardServiceServer is the server API for DashboardService.
type DashboardServiceServer interface {
	GetDashboard(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DismissAlert(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SelectDay(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClickDeliveryChart(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearDrillDown(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetFilter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	WatchDashboard(*structpb.Struct, DashboardService_WatchDashboardServer) error
}

// UnimplementedDashboardServiceServer can be embedded to have forward compatible implementations.
type UnimplementedDashboardServiceServer struct{}

func (UnimplementedDashboardServiceServer) GetDashboard(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDashboard not implemented")
}

func (UnimplementedDashboardServiceServer) DismissAlert(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method DismissAlert not implemented")
}

func (UnimplementedDashboardServiceServer) SelectDay(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method SelectDay not implemented")
}

func (UnimplementedDashboardServiceServer) ClickDeliveryChart(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ClickDeliveryChart not implemented")
}

func (UnimplementedDashboardServiceServer) ClearDrillDown(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ClearDrillDown not implemented")
}

func (UnimplementedDashboardServiceServer) SetFilter(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method SetFilter not implemented")
}

func (UnimplementedDashboardServiceServer) WatchDashboard(*structpb.Struct, DashboardService_WatchDashboardServer) error {
	return status.Error(codes.Unimplemented, "method WatchDashboard not implemented")
}

// DashboardService_WatchDashboardServer is the server side of a WatchDashboard stream.
type DashboardService_WatchDashboardServer interface {
	Send(*structpb.Struct) error
	grpc.ServerStream
}

type dashboardServiceWatchDashboardServer struct {
	grpc.ServerStream
}

func (x *dashboardServiceWatchDashboardServer) Send(m *structpb.Struct) error {
	return x.ServerStream.SendMsg(m)
}

// RegisterDashboardServiceServer attaches srv to s.
func RegisterDashboardServiceServer(s grpc.ServiceRegistrar, srv DashboardServiceServer) {
	s.RegisterService(&DashboardService_ServiceDesc, srv)
}

type unaryCall func(DashboardServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// methodHandler matches the signature grpc.MethodDesc.Handler expects.
type methodHandler = func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error)

func unaryHandler(fullMethod string, call unaryCall) methodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DashboardServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DashboardServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func watchDashboardHandler(srv any, stream grpc.ServerStream) error {
	m := new(structpb.Struct)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(DashboardServiceServer).WatchDashboard(m, &dashboardServiceWatchDashboardServer{stream})
}

// DashboardService_ServiceDesc is the grpc.ServiceDesc for DashboardService.
var DashboardService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DashboardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetDashboard",
			Handler:    unaryHandler(DashboardService_GetDashboard_FullMethodName, DashboardServiceServer.GetDashboard),
		},
		{
			MethodName: "DismissAlert",
			Handler:    unaryHandler(DashboardService_DismissAlert_FullMethodName, DashboardServiceServer.DismissAlert),
		},
		{
			MethodName: "SelectDay",
			Handler:    unaryHandler(DashboardService_SelectDay_FullMethodName, DashboardServiceServer.SelectDay),
		},
		{
			MethodName: "ClickDeliveryChart",
			Handler:    unaryHandler(DashboardService_ClickDeliveryChart_FullMethodName, DashboardServiceServer.ClickDeliveryChart),
		},
		{
			MethodName: "ClearDrillDown",
			Handler:    unaryHandler(DashboardService_ClearDrillDown_FullMethodName, DashboardServiceServer.ClearDrillDown),
		},
		{
			MethodName: "SetFilter",
			Handler:    unaryHandler(DashboardService_SetFilter_FullMethodName, DashboardServiceServer.SetFilter),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchDashboard",
			Handler:       watchDashboardHandler,
			ServerStreams: true,
		},
	},
	Metadata: "pulse/v1/dashboard.proto",
}

// DashboardServiceClient is the client API for DashboardService.
type DashboardServiceClient interface {
	GetDashboard(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DismissAlert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SelectDay(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ClickDeliveryChart(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ClearDrillDown(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetFilter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	WatchDashboard(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (DashboardService_WatchDashboardClient, error)
}

type dashboardServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDashboardServiceClient wraps cc.
func NewDashboardServiceClient(cc grpc.ClientConnInterface) DashboardServiceClient {
	return &dashboardServiceClient{cc: cc}
}

func (c *dashboardServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dashboardServiceClient) GetDashboard(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DashboardService_GetDashboard_FullMethodName, in, opts)
}

func (c *dashboardServiceClient) DismissAlert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DashboardService_DismissAlert_FullMethodName, in, opts)
}

func (c *dashboardServiceClient) SelectDay(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DashboardService_SelectDay_FullMethodName, in, opts)
}

func (c *dashboardServiceClient) ClickDeliveryChart(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DashboardService_ClickDeliveryChart_FullMethodName, in, opts)
}

func (c *dashboardServiceClient) ClearDrillDown(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DashboardService_ClearDrillDown_FullMethodName, in, opts)
}

func (c *dashboardServiceClient) SetFilter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DashboardService_SetFilter_FullMethodName, in, opts)
}

func (c *dashboardServiceClient) WatchDashboard(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (DashboardService_WatchDashboardClient, error) {
	stream, err := c.cc.NewStream(ctx, &DashboardService_ServiceDesc.Streams[0], DashboardService_WatchDashboard_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &dashboardServiceWatchDashboardClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// DashboardService_WatchDashboardClient is the client side of a WatchDashboard stream.
type DashboardService_WatchDashboardClient interface {
	Recv() (*structpb.Struct, error)
	grpc.ClientStream
}

type dashboardServiceWatchDashboardClient struct {
	grpc.ClientStream
}

func (x *dashboardServiceWatchDashboardClient) Recv() (*structpb.Struct, error) {
	m := new(structpb.Struct)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
