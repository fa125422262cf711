package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/config"
	"liyu1981.xyz/weather-monitor-service/pkg/db"
	weatherGrpc "liyu1981.xyz/weather-monitor-service/pkg/grpc"
	weatherHttp "liyu1981.xyz/weather-monitor-service/pkg/http"
	"liyu1981.xyz/weather-monitor-service/pkg/monitor"
	"liyu1981.xyz/weather-monitor-service/pkg/supervisor"
	"liyu1981.xyz/weather-monitor-service/pkg/weather"
)

func dialectorFor(cfg *config.Config) gorm.Dialector {
	switch cfg.DbType {
	case config.DbTypeMemory:
		return db.UseMemorySqliteDialector()
	case config.DbTypePostgres:
		return db.UsePostgresDialector(cfg.DbDSN)
	default:
		return db.UseSqliteDialector(cfg.DbPath)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration, copy .env.example to .env first if in development: ", err)
	}

	common.ConfigureLogger(cfg.LoggerOptions())
	logger := common.GetLogger()
	defer func() { _ = logger.Sync() }()

	dbInstance, err := db.NewInstance(dialectorFor(cfg))
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() { _ = dbInstance.Close() }()

	fetcher := weather.NewClient(weather.ClientOpts{
		APIKey:             cfg.OpenWeatherMapAPIKey,
		BaseURL:            cfg.OpenWeatherMapBaseURL,
		Timeout:            cfg.FetchTimeout,
		BreakerMaxFailures: cfg.BreakerMaxFailures,
		BreakerOpenTimeout: cfg.BreakerOpenTimeout,
	})

	monitorCore := monitor.New(dbInstance, fetcher)

	tree := supervisor.NewTree(supervisor.TreeConfig{ShutdownTimeout: cfg.ShutdownTimeout})
	tree.Add(monitor.NewLoop(monitorCore, cfg.PollInterval))

	if common.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	rs := &weatherHttp.RestfulServer{
		Server:           gin.Default(),
		Monitor:          monitorCore,
		RateLimiterStore: monitor.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("host_port", cfg.HttpHostPort),
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.DefaultRate, cfg.DefaultBurst)))
	tree.Add(supervisor.NewHTTPService(&http.Server{Addr: cfg.HttpHostPort, Handler: rs.Server}, cfg.ShutdownTimeout))

	if cfg.GrpcHostPort != "" {
		grpcServer := &weatherGrpc.WeatherServer{
			Monitor:          monitorCore,
			RateLimiterStore: monitor.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
		}
		logger.Info("gRPC server created with:", zap.String("host_port", cfg.GrpcHostPort))
		tree.Add(supervisor.NewGRPCService(grpcServer.NewServer(), cfg.GrpcHostPort, cfg.ShutdownTimeout))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Weather monitor started",
		zap.Duration("poll_interval", cfg.PollInterval),
		zap.String("db_type", cfg.DbType))

	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		logger.Error("Supervisor stopped unexpectedly", zap.Error(err))
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		logger.Warn("Services did not stop within the shutdown timeout", zap.Int("count", len(report)))
	}

	logger.Info("Weather monitor stopped")
}
