package grpc

import (
	"google.golang.org/grpc"

	"liyu1981.xyz/weather-monitor-service/pkg/monitor"
)

type WeatherServer struct {
	Monitor          *monitor.Monitor
	RateLimiterStore *monitor.RateLimiterStore
}

func (s *WeatherServer) CheckCityLimiter(city string) bool {
	if s.RateLimiterStore == nil {
		return true
	}
	return s.RateLimiterStore.Allow(city)
}

// NewServer returns a grpc.Server with the service registered behind the
// recovery and rate limit interceptors. Only on-demand provider calls are
// rate limited.
func (s *WeatherServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		RecoveryInterceptor(),
		s.CreateRateLimitInterceptor([]string{FullMethodGetCurrentWeather}),
	))
	server := grpc.NewServer(opts...)
	RegisterWeatherMonitorServiceServer(server, s)
	return server
}
