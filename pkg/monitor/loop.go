package monitor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/metrics"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
)

const DefaultPollInterval = 300 * time.Second

// Loop polls every city once per cycle and sleeps Interval between cycles.
// It implements suture.Service.
type Loop struct {
	Monitor  *Monitor
	Cities   []models.City
	Interval time.Duration
}

func NewLoop(m *Monitor, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Loop{
		Monitor:  m,
		Cities:   models.Cities,
		Interval: interval,
	}
}

func (l *Loop) String() string {
	return "monitor-loop"
}

// Serve runs cycles until ctx is cancelled. A cycle already in progress is not
// interrupted by cancellation; the loop stops before starting the next one.
func (l *Loop) Serve(ctx context.Context) error {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitor,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryLoop),
	)
	logger.Info("Monitoring loop started", zap.Duration("interval", l.Interval), zap.Int("cities", len(l.Cities)))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Monitoring loop stopped")
			return ctx.Err()
		case <-timer.C:
		}

		failed := l.RunCycle(context.WithoutCancel(ctx))
		logger.Info("Monitoring cycle finished", zap.Strings("failed_cities", cityStrings(failed)))

		timer.Reset(l.Interval)
	}
}

// RunCycle processes each city in order and returns the cities whose
// processing failed. A failing city never stops the rest of the cycle.
func (l *Loop) RunCycle(ctx context.Context) []models.City {
	var failed []models.City
	for _, city := range l.Cities {
		if err := l.processCity(ctx, city); err != nil {
			failed = append(failed, city)
		}
	}
	metrics.MonitorCycles.Inc()
	return failed
}

func (l *Loop) processCity(ctx context.Context, city models.City) (err error) {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitor,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryLoop),
		zap.String(common.LoggerFieldCity, string(city)),
	)
	m := l.Monitor

	defer func() {
		if r := recover(); r != nil {
			metrics.MonitorCityFailures.WithLabelValues(string(city), metrics.StagePanic).Inc()
			logger.Error("Panic while processing city", zap.Any("panic", r), zap.Stack("stack"))
			err = fmt.Errorf("panic while processing %s: %v", city, r)
		}
	}()

	fail := func(stage string, err error) error {
		metrics.MonitorCityFailures.WithLabelValues(string(city), stage).Inc()
		logger.Error("Error processing city", zap.String("stage", stage), zap.Error(err))
		return err
	}

	reading, err := m.Fetcher.Fetch(ctx, city)
	if err != nil {
		return fail(metrics.StageFetch, err)
	}

	if err := m.Reading.UpsertReading(ctx, reading); err != nil {
		return fail(metrics.StageStore, err)
	}

	if _, err := m.Alert.CheckAndStoreAlerts(ctx, reading); err != nil {
		return fail(metrics.StageEvaluate, err)
	}

	if _, err := m.Summary.CalculateDailySummary(ctx, city, m.now()); err != nil {
		return fail(metrics.StageAggregate, err)
	}

	logger.Info("Processed city", zap.Float64("temp", reading.Temperature), zap.String("condition", reading.Condition))
	return nil
}

func cityStrings(cities []models.City) []string {
	return common.Mapper(cities, func(c models.City) string { return string(c) })
}
