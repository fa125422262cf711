package grpc

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/validation"
)

// CreateRateLimitInterceptor limits the listed methods per city. The city is
// taken from requests that carry it as their single string value. Unknown
// cities get no limiter and are rejected by the handler.
func (s *WeatherServer) CreateRateLimitInterceptor(targetMethods []string) grpc.UnaryServerInterceptor {
	targetMethodMap := common.Reducer(targetMethods,
		func(m map[string]bool, method string) map[string]bool {
			m[method] = true
			return m
		},
		map[string]bool{},
	)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if _, ok := targetMethodMap[info.FullMethod]; ok {
			if r, ok := req.(interface{ GetValue() string }); ok {
				city, err := validation.ValidateCity(r.GetValue())
				if err == nil && !s.CheckCityLimiter(string(city)) {
					return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
				}
			}
		}

		return handler(ctx, req)
	}
}

func RecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				common.GetLoggerWith(common.LoggerNameGrpcServer).Error("Unhandled error while serving call",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.Stack("stack"),
				)
				resp, err = nil, status.Error(codes.Internal, "An unexpected error occurred. Please try again later.")
			}
		}()
		return handler(ctx, req)
	}
}
