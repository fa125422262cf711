package monitor

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/errors"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
)

func (m *Monitor) createNotification(ctx context.Context, notification *models.Notification) error {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitor,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryNotification),
	)

	if notification.Message == "" {
		return errors.NewValidationError("Invalid notification data: missing message")
	}

	notification.IsRead = false
	if err := m.Db.Conn.WithContext(ctx).Create(notification).Error; err != nil {
		return errors.NewStoreError("Error creating notification", err)
	}

	logger.Info("Notification created", zap.String("id", notification.ID), zap.String(common.LoggerFieldCity, string(notification.City)))
	return nil
}

func (m *Monitor) listNotifications(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error) {
	query := m.Db.Conn.WithContext(ctx).Model(&models.Notification{})
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}

	notifications := []models.Notification{}
	err := query.
		Order("timestamp desc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&notifications).Error
	if err != nil {
		return nil, errors.NewStoreError("Error fetching notifications", err)
	}
	return notifications, nil
}

func (m *Monitor) markNotificationRead(ctx context.Context, id string) error {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitor,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryNotification),
	)

	result := m.Db.Conn.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return errors.NewStoreError(fmt.Sprintf("failed to mark notification %s as read", id), result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("Notification not found")
	}

	logger.Info("Notification marked as read", zap.String("id", id))
	return nil
}

type INotificationImpl struct {
	monitor *Monitor
}

func (in *INotificationImpl) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return in.monitor.createNotification(ctx, notification)
}

func (in *INotificationImpl) ListNotifications(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error) {
	return in.monitor.listNotifications(ctx, filter)
}

func (in *INotificationImpl) MarkNotificationRead(ctx context.Context, id string) error {
	return in.monitor.markNotificationRead(ctx, id)
}

func (m *Monitor) GetINotification() INotification {
	return &INotificationImpl{monitor: m}
}
