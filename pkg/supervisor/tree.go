// Package supervisor runs the long-lived parts of the service, the monitoring
// loop and the query servers, under one suture tree.
package supervisor

import (
	"context"
	"time"

	"github.com/thejerf/suture/v4"
	"go.uber.org/zap"
	"liyu1981.xyz/weather-monitor-service/pkg/common"
)

type TreeConfig struct {
	// FailureThreshold is the number of failures before entering backoff.
	FailureThreshold float64
	// FailureDecay is the rate at which failures decay, in seconds.
	FailureDecay   float64
	FailureBackoff time.Duration
	// ShutdownTimeout bounds how long each service gets to stop. It must cover
	// a full monitoring cycle so the in-flight one can finish.
	ShutdownTimeout time.Duration
}

func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  45 * time.Second,
	}
}

type Tree struct {
	root   *suture.Supervisor
	config TreeConfig
}

func NewTree(config TreeConfig) *Tree {
	defaults := DefaultTreeConfig()
	if config.FailureThreshold == 0 {
		config.FailureThreshold = defaults.FailureThreshold
	}
	if config.FailureDecay == 0 {
		config.FailureDecay = defaults.FailureDecay
	}
	if config.FailureBackoff == 0 {
		config.FailureBackoff = defaults.FailureBackoff
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}

	root := suture.New("weather-monitor", suture.Spec{
		EventHook:        EventHook(common.GetLoggerWith(common.LoggerNameSupervisor)),
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	})

	return &Tree{root: root, config: config}
}

func (t *Tree) Add(svc suture.Service) suture.ServiceToken {
	return t.root.Add(svc)
}

// Serve blocks until ctx is cancelled and every service has stopped or timed out.
func (t *Tree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

func (t *Tree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

func (t *Tree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}

// EventHook logs supervisor events through zap.
func EventHook(logger *zap.Logger) suture.EventHook {
	return func(e suture.Event) {
		fields := []zap.Field{zap.String("event", e.String()), zap.Any("details", e.Map())}
		switch e.(type) {
		case suture.EventServicePanic, suture.EventStopTimeout:
			logger.Error("Supervisor event", fields...)
		case suture.EventServiceTerminate, suture.EventBackoff:
			logger.Warn("Supervisor event", fields...)
		default:
			logger.Info("Supervisor event", fields...)
		}
	}
}
