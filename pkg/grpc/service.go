package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The service is described directly over well-known protobuf types, so no
// generated code is needed on either side.
const (
	ServiceName = "weathermonitor.v1.WeatherMonitor"

	FullMethodGetCurrentWeather = "/" + ServiceName + "/GetCurrentWeather"
	FullMethodGetAlertThreshold = "/" + ServiceName + "/GetAlertThreshold"
	FullMethodSetAlertThreshold = "/" + ServiceName + "/SetAlertThreshold"
	FullMethodListNotifications = "/" + ServiceName + "/ListNotifications"
	FullMethodGetSummaries      = "/" + ServiceName + "/GetSummaries"
)

type WeatherMonitorServiceServer interface {
	GetCurrentWeather(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	GetAlertThreshold(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	SetAlertThreshold(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	ListNotifications(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	GetSummaries(context.Context, *structpb.Struct) (*structpb.ListValue, error)
}

func RegisterWeatherMonitorServiceServer(s grpc.ServiceRegistrar, srv WeatherMonitorServiceServer) {
	s.RegisterService(&WeatherMonitorServiceDesc, srv)
}

var WeatherMonitorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WeatherMonitorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetCurrentWeather", Handler: getCurrentWeatherHandler},
		{MethodName: "GetAlertThreshold", Handler: getAlertThresholdHandler},
		{MethodName: "SetAlertThreshold", Handler: setAlertThresholdHandler},
		{MethodName: "ListNotifications", Handler: listNotificationsHandler},
		{MethodName: "GetSummaries", Handler: getSummariesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "weathermonitor/v1/weather_monitor.proto",
}

func getCurrentWeatherHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WeatherMonitorServiceServer).GetCurrentWeather(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethodGetCurrentWeather}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WeatherMonitorServiceServer).GetCurrentWeather(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func getAlertThresholdHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WeatherMonitorServiceServer).GetAlertThreshold(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethodGetAlertThreshold}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WeatherMonitorServiceServer).GetAlertThreshold(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func setAlertThresholdHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WeatherMonitorServiceServer).SetAlertThreshold(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethodSetAlertThreshold}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WeatherMonitorServiceServer).SetAlertThreshold(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listNotificationsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WeatherMonitorServiceServer).ListNotifications(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethodListNotifications}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WeatherMonitorServiceServer).ListNotifications(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getSummariesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WeatherMonitorServiceServer).GetSummaries(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethodGetSummaries}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WeatherMonitorServiceServer).GetSummaries(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type WeatherMonitorServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewWeatherMonitorServiceClient(cc grpc.ClientConnInterface) *WeatherMonitorServiceClient {
	return &WeatherMonitorServiceClient{cc: cc}
}

func (c *WeatherMonitorServiceClient) GetCurrentWeather(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethodGetCurrentWeather, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *WeatherMonitorServiceClient) GetAlertThreshold(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethodGetAlertThreshold, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *WeatherMonitorServiceClient) SetAlertThreshold(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, FullMethodSetAlertThreshold, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *WeatherMonitorServiceClient) ListNotifications(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, FullMethodListNotifications, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *WeatherMonitorServiceClient) GetSummaries(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, FullMethodGetSummaries, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
