package monitor

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/errors"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
	_ "liyu1981.xyz/weather-monitor-service/pkg/testing"
)

func TestEvaluateThreshold(t *testing.T) {
	threshold := &models.AlertThreshold{City: models.CityDelhi, MaxTemp: ptr(30.0), MinTemp: ptr(10.0)}

	tests := []struct {
		name     string
		temp     float64
		expected []string
	}{
		{"above max", 35, []string{"High temperature alert: 35.0°C exceeds threshold of 30.0°C"}},
		{"below min", 5, []string{"Low temperature alert: 5.0°C is below threshold of 10.0°C"}},
		{"inside range", 20, nil},
		{"equal to max", 30, nil},
		{"equal to min", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading := &models.Reading{City: models.CityDelhi, Condition: "Clear", Temperature: tt.temp}
			assert.Equal(t, tt.expected, EvaluateThreshold(reading, threshold))
		})
	}
}

func TestEvaluateThresholdAllRules(t *testing.T) {
	reading := &models.Reading{City: models.CityMumbai, Condition: "Rain", Temperature: 40}

	// max and condition can fire together
	alerts := EvaluateThreshold(reading, &models.AlertThreshold{
		City:             models.CityMumbai,
		MaxTemp:          ptr(30.0),
		WeatherCondition: ptr("Rain"),
	})
	require.Len(t, alerts, 2)
	assert.Contains(t, alerts[0], "High temperature alert")
	assert.Equal(t, "Weather condition alert: Rain matches alert condition", alerts[1])

	assert.Empty(t, EvaluateThreshold(reading, &models.AlertThreshold{City: models.CityMumbai}))
	assert.Empty(t, EvaluateThreshold(reading, nil))
	assert.Empty(t, EvaluateThreshold(reading, &models.AlertThreshold{City: models.CityMumbai, WeatherCondition: ptr("rain")}))
}

func TestComposeAlertMessage(t *testing.T) {
	msg := ComposeAlertMessage(models.CityChennai, []string{"a", "b"})
	assert.Equal(t, "ALERT for Chennai: a, b", msg)
}

func TestCheckAndStoreAlerts(t *testing.T) {
	common.SetTestLoggerNop()

	tm := GetMockMonitorWithMemorySqliteDialector(t, mockSet{})
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.monitor.Now = fixedClock(now)
	ctx := context.Background()

	require.NoError(t, tm.monitor.Threshold.UpsertThreshold(ctx, &models.AlertThreshold{
		City:             models.CityDelhi,
		MaxTemp:          ptr(30.0),
		WeatherCondition: ptr("Haze"),
	}))

	reading := &models.Reading{City: models.CityDelhi, Condition: "Haze", Temperature: 35, FeelsLike: 37, Timestamp: now}
	alerts, err := tm.monitor.Alert.CheckAndStoreAlerts(ctx, reading)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)

	notifications, err := tm.monitor.Notification.ListNotifications(ctx, models.NotificationFilter{City: models.CityDelhi, Limit: 10})
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	n := notifications[0]
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.IsRead)
	assert.Equal(t, "ALERT for Delhi: "+alerts[0]+", "+alerts[1], n.Message)
	assert.Equal(t, 35.0, n.WeatherData.Temperature)
	assert.Equal(t, "Haze", n.WeatherData.Condition)

	stored, err := tm.monitor.Alert.GetWeatherAlerts(ctx, models.CityDelhi, 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, alerts, stored[0].Alerts)
}

func TestCheckAndStoreAlertsNoThreshold(t *testing.T) {
	common.SetTestLoggerNop()

	tm := GetMockMonitorWithMemorySqliteDialector(t, mockSet{})
	ctx := context.Background()

	reading := &models.Reading{City: models.CityMumbai, Condition: "Clear", Temperature: 100, Timestamp: time.Now()}
	alerts, err := tm.monitor.Alert.CheckAndStoreAlerts(ctx, reading)
	require.NoError(t, err)
	assert.Empty(t, alerts)

	notifications, err := tm.monitor.Notification.ListNotifications(ctx, models.NotificationFilter{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestCheckAndStoreAlertsNothingTriggered(t *testing.T) {
	common.SetTestLoggerNop()

	tm := GetMockMonitorWithMemorySqliteDialector(t, mockSet{Threshold: true, Notification: true})
	defer tm.ctrl.Finish()

	tm.threshold.EXPECT().
		GetThreshold(gomock.Any(), models.CityChennai).
		Return(&models.AlertThreshold{City: models.CityChennai, MaxTemp: ptr(30.0), MinTemp: ptr(10.0)}, nil)
	tm.notification.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Times(0)

	reading := &models.Reading{City: models.CityChennai, Condition: "Clear", Temperature: 20, Timestamp: time.Now()}
	alerts, err := tm.monitor.Alert.CheckAndStoreAlerts(context.Background(), reading)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestCheckAndStoreAlertsSinkFailure(t *testing.T) {
	common.SetTestLoggerNop()

	tm := GetMockMonitorWithMemorySqliteDialector(t, mockSet{Threshold: true, Notification: true})
	defer tm.ctrl.Finish()

	tm.threshold.EXPECT().
		GetThreshold(gomock.Any(), models.CityKolkata).
		Return(&models.AlertThreshold{City: models.CityKolkata, MinTemp: ptr(10.0)}, nil)
	tm.notification.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		Return(errors.NewStoreError("Error creating notification", stderrors.New("disk full")))

	reading := &models.Reading{City: models.CityKolkata, Condition: "Mist", Temperature: 5, Timestamp: time.Now()}
	alerts, err := tm.monitor.Alert.CheckAndStoreAlerts(context.Background(), reading)
	assert.True(t, errors.Is(err, errors.ErrorTypeStore))
	assert.Len(t, alerts, 1)

	stored, err := tm.monitor.Alert.GetWeatherAlerts(context.Background(), models.CityKolkata, 10)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCheckAndStoreAlertsThresholdError(t *testing.T) {
	common.SetTestLoggerNop()

	tm := GetMockMonitorWithMemorySqliteDialector(t, mockSet{Threshold: true})
	defer tm.ctrl.Finish()

	tm.threshold.EXPECT().
		GetThreshold(gomock.Any(), models.CityDelhi).
		Return(nil, errors.NewStoreError("boom", nil))

	reading := &models.Reading{City: models.CityDelhi, Temperature: 5, Timestamp: time.Now()}
	_, err := tm.monitor.Alert.CheckAndStoreAlerts(context.Background(), reading)
	assert.True(t, errors.Is(err, errors.ErrorTypeStore))
}

func TestGetWeatherAlertsLimit(t *testing.T) {
	common.SetTestLoggerNop()

	tm := GetMockMonitorWithMemorySqliteDialector(t, mockSet{})
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := range 5 {
		require.NoError(t, tm.monitor.Db.Conn.Create(&models.WeatherAlert{
			City:      models.CityHyderabad,
			Alerts:    []string{"alert"},
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	alerts, err := tm.monitor.Alert.GetWeatherAlerts(context.Background(), models.CityHyderabad, 3)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.True(t, alerts[0].Timestamp.Equal(base.Add(4*time.Minute)))
}

func TestCheckAndStoreAlerts_WithLog(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	tm := GetMockMonitorWithMemorySqliteDialector(t, mockSet{})
	ctx := context.Background()

	require.NoError(t, tm.monitor.Threshold.UpsertThreshold(ctx, &models.AlertThreshold{
		City:    models.CityBangalore,
		MinTemp: ptr(15.0),
	}))

	reading := &models.Reading{City: models.CityBangalore, Condition: "Clear", Temperature: 12, Timestamp: time.Now()}
	_, err := tm.monitor.Alert.CheckAndStoreAlerts(ctx, reading)
	require.NoError(t, err)

	logs := ParseLogs(buf)

	found := false
	for _, log := range logs {
		lobj := log.(map[string]any)
		if lobj["category"] == "alert" &&
			lobj["logger"] == "monitor" &&
			lobj["msg"] == "Alert found" &&
			lobj["city"] == "Bangalore" &&
			lobj["message"] == "ALERT for Bangalore: Low temperature alert: 12.0°C is below threshold of 15.0°C" {
			found = true
			break
		}
	}
	assert.True(t, found, "expected alert log entry")
}
