package monitor

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/errors"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
)

// upsertReading replaces the latest reading for the city and appends the
// reading to the history that daily summaries are computed from.
func (m *Monitor) upsertReading(ctx context.Context, input *models.Reading) error {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitor,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryReading),
	)

	reading := *input
	reading.Timestamp = reading.Timestamp.UTC()

	logger.Info("Received reading for city", zap.Reflect("reading", reading))

	err := m.Db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "city"}},
		UpdateAll: true,
	}).Create(&reading).Error
	if err != nil {
		return errors.NewStoreError(fmt.Sprintf("failed to upsert latest weather for %s", reading.City), err)
	}

	history := models.HistoryFromReading(reading)
	if err := m.Db.Conn.WithContext(ctx).Create(&history).Error; err != nil {
		return errors.NewStoreError(fmt.Sprintf("failed to append weather history for %s", reading.City), err)
	}

	logger.Info("Upserted reading for city", zap.Reflect("reading", reading))
	return nil
}

func (m *Monitor) getLatestReading(ctx context.Context, city models.City) (*models.Reading, error) {
	var reading models.Reading
	err := m.Db.Conn.WithContext(ctx).First(&reading, "city = ?", city).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("No weather data available for %s", city))
	}
	if err != nil {
		return nil, errors.NewStoreError("failed to load latest weather", err)
	}
	return &reading, nil
}

func (m *Monitor) getWeatherHistory(ctx context.Context, city models.City, from, to *time.Time) ([]models.ReadingHistory, error) {
	query := m.Db.Conn.WithContext(ctx).Where("city = ?", city)
	if from != nil {
		query = query.Where("timestamp >= ?", from.UTC())
	}
	if to != nil {
		query = query.Where("timestamp <= ?", to.UTC())
	}

	var history []models.ReadingHistory
	if err := query.Order("timestamp desc").Order("id desc").Find(&history).Error; err != nil {
		return nil, errors.NewStoreError(fmt.Sprintf("Error fetching weather history for %s", city), err)
	}
	return history, nil
}

type IReadingImpl struct {
	monitor *Monitor
}

func (ir *IReadingImpl) UpsertReading(ctx context.Context, reading *models.Reading) error {
	return ir.monitor.upsertReading(ctx, reading)
}

func (ir *IReadingImpl) GetLatestReading(ctx context.Context, city models.City) (*models.Reading, error) {
	return ir.monitor.getLatestReading(ctx, city)
}

func (ir *IReadingImpl) GetWeatherHistory(ctx context.Context, city models.City, from, to *time.Time) ([]models.ReadingHistory, error) {
	return ir.monitor.getWeatherHistory(ctx, city, from, to)
}

func (m *Monitor) GetIReading() IReading {
	return &IReadingImpl{monitor: m}
}
