package monitor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/errors"
	"liyu1981.xyz/weather-monitor-service/pkg/metrics"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
)

// EvaluateThreshold returns one message per rule the reading breaks. Rules are
// independent, so a reading can raise several alerts at once.
func EvaluateThreshold(reading *models.Reading, threshold *models.AlertThreshold) []string {
	if reading == nil || threshold == nil {
		return nil
	}

	var alerts []string

	if threshold.MaxTemp != nil && reading.Temperature > *threshold.MaxTemp {
		alerts = append(alerts, fmt.Sprintf("High temperature alert: %.1f°C exceeds threshold of %.1f°C",
			reading.Temperature, *threshold.MaxTemp))
	}

	if threshold.MinTemp != nil && reading.Temperature < *threshold.MinTemp {
		alerts = append(alerts, fmt.Sprintf("Low temperature alert: %.1f°C is below threshold of %.1f°C",
			reading.Temperature, *threshold.MinTemp))
	}

	if threshold.WeatherCondition != nil && reading.Condition == *threshold.WeatherCondition {
		alerts = append(alerts, fmt.Sprintf("Weather condition alert: %s matches alert condition", reading.Condition))
	}

	return alerts
}

func ComposeAlertMessage(city models.City, alerts []string) string {
	return fmt.Sprintf("ALERT for %s: %s", city, strings.Join(alerts, ", "))
}

func (m *Monitor) checkAndStoreAlerts(ctx context.Context, reading *models.Reading) ([]string, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitor,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAlert),
		zap.String(common.LoggerFieldCity, string(reading.City)),
	)

	if m.Threshold == nil {
		return nil, fmt.Errorf("threshold service not available")
	}

	threshold, err := m.Threshold.GetThreshold(ctx, reading.City)
	if errors.Is(err, errors.ErrorTypeNotFound) {
		logger.Info("No alert thresholds set for city")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	alerts := EvaluateThreshold(reading, threshold)
	if len(alerts) == 0 {
		logger.Info("No alerts triggered for city",
			zap.Float64("temp", reading.Temperature),
			zap.String("condition", reading.Condition))
		return nil, nil
	}

	message := ComposeAlertMessage(reading.City, alerts)
	now := m.now()

	notification := models.Notification{
		City:        reading.City,
		Message:     message,
		Timestamp:   now,
		WeatherData: *reading,
	}

	logger.Warn("Alert found", zap.String("message", message), zap.Strings("alerts", alerts))

	if m.Notification == nil {
		return alerts, fmt.Errorf("notification service not available")
	}

	if err := m.Notification.CreateNotification(ctx, &notification); err != nil {
		return alerts, err
	}

	weatherAlert := models.WeatherAlert{
		City:      reading.City,
		Alerts:    alerts,
		Timestamp: now,
	}
	err = m.Db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "city"}, {Name: "timestamp"}},
		UpdateAll: true,
	}).Create(&weatherAlert).Error
	if err != nil {
		return alerts, errors.NewStoreError(fmt.Sprintf("failed to record weather alert for %s", reading.City), err)
	}

	metrics.MonitorAlerts.WithLabelValues(string(reading.City)).Inc()

	logger.Info("Alert saved", zap.Reflect("notification", notification))

	return alerts, nil
}

func (m *Monitor) getWeatherAlerts(ctx context.Context, city models.City, limit int) ([]models.WeatherAlert, error) {
	alerts := []models.WeatherAlert{}
	err := m.Db.Conn.WithContext(ctx).
		Where("city = ?", city).
		Order("timestamp desc").
		Limit(limit).
		Find(&alerts).Error
	if err != nil {
		return nil, errors.NewStoreError(fmt.Sprintf("failed to load weather alerts for %s", city), err)
	}
	return alerts, nil
}

type IAlertImpl struct {
	monitor *Monitor
}

func (ia *IAlertImpl) CheckAndStoreAlerts(ctx context.Context, reading *models.Reading) ([]string, error) {
	return ia.monitor.checkAndStoreAlerts(ctx, reading)
}

func (ia *IAlertImpl) GetWeatherAlerts(ctx context.Context, city models.City, limit int) ([]models.WeatherAlert, error) {
	return ia.monitor.getWeatherAlerts(ctx, city, limit)
}

func (m *Monitor) GetIAlert() IAlert {
	return &IAlertImpl{monitor: m}
}
