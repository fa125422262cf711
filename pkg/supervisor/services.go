package supervisor

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"
	"liyu1981.xyz/weather-monitor-service/pkg/common"
)

// HTTPServer is the part of *http.Server the service needs.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

type HTTPService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
}

func NewHTTPService(server HTTPServer, shutdownTimeout time.Duration) *HTTPService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPService{server: server, shutdownTimeout: shutdownTimeout}
}

func (h *HTTPService) Serve(ctx context.Context) error {
	logger := common.GetLoggerWith(common.LoggerNameSupervisor)

	errCh := make(chan error, 1)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		// ctx is already cancelled, shut down on a fresh one
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}

		<-errCh
		logger.Info("HTTP server stopped")
		return ctx.Err()
	}
}

func (h *HTTPService) String() string {
	return "http-server"
}

// GRPCServer is the part of *grpc.Server the service needs.
type GRPCServer interface {
	Serve(lis net.Listener) error
	GracefulStop()
	Stop()
}

var _ GRPCServer = (*grpc.Server)(nil)

type GRPCService struct {
	server          GRPCServer
	addr            string
	shutdownTimeout time.Duration

	// listen is swapped in tests.
	listen func(network, addr string) (net.Listener, error)
}

func NewGRPCService(server GRPCServer, addr string, shutdownTimeout time.Duration) *GRPCService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &GRPCService{
		server:          server,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		listen:          net.Listen,
	}
}

func (g *GRPCService) Serve(ctx context.Context) error {
	logger := common.GetLoggerWith(common.LoggerNameSupervisor)

	listener, err := g.listen("tcp", g.addr)
	if err != nil {
		return fmt.Errorf("grpc server failed to listen on %s: %w", g.addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := g.server.Serve(listener); err != nil && !stderrors.Is(err, grpc.ErrServerStopped) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("grpc server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		stopped := make(chan struct{})
		go func() {
			g.server.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopped:
		case <-time.After(g.shutdownTimeout):
			logger.Warn("gRPC graceful stop timed out, forcing stop")
			g.server.Stop()
		}

		<-errCh
		logger.Info("gRPC server stopped")
		return ctx.Err()
	}
}

func (g *GRPCService) String() string {
	return "grpc-server"
}
