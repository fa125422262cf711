package monitor

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/errors"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
	"liyu1981.xyz/weather-monitor-service/pkg/validation"
)

// upsertThreshold replaces the whole threshold stored for the city.
func (m *Monitor) upsertThreshold(ctx context.Context, input *models.AlertThreshold) error {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitor,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryThreshold),
	)

	if err := validation.ValidateAlertThreshold(input); err != nil {
		return err
	}

	threshold := *input

	logger.Info("Received alert threshold for city", zap.Reflect("threshold", threshold))

	err := m.Db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "city"}},
		UpdateAll: true,
	}).Create(&threshold).Error
	if err != nil {
		return errors.NewStoreError("Error setting alert threshold", err)
	}

	logger.Info("Alert threshold set for city", zap.Reflect("threshold", threshold))
	return nil
}

func (m *Monitor) getThreshold(ctx context.Context, city models.City) (*models.AlertThreshold, error) {
	var threshold models.AlertThreshold
	err := m.Db.Conn.WithContext(ctx).First(&threshold, "city = ?", city).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("No alert threshold found for %s", city))
	}
	if err != nil {
		return nil, errors.NewStoreError("failed to load alert threshold", err)
	}
	return &threshold, nil
}

type IThresholdImpl struct {
	monitor *Monitor
}

func (it *IThresholdImpl) UpsertThreshold(ctx context.Context, threshold *models.AlertThreshold) error {
	return it.monitor.upsertThreshold(ctx, threshold)
}

func (it *IThresholdImpl) GetThreshold(ctx context.Context, city models.City) (*models.AlertThreshold, error) {
	return it.monitor.getThreshold(ctx, city)
}

func (m *Monitor) GetIThreshold() IThreshold {
	return &IThresholdImpl{monitor: m}
}
