package monitor

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/weather-monitor-service/pkg/db"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
	"liyu1981.xyz/weather-monitor-service/pkg/monitor/mocks"
)

// mockSet selects which services are replaced by mocks; the rest stay backed
// by the in-memory database.
type mockSet struct {
	Reading      bool
	Alert        bool
	Threshold    bool
	Notification bool
	Summary      bool
}

type testMonitor struct {
	ctrl         *gomock.Controller
	monitor      *Monitor
	fetcher      *mocks.MockIFetcher
	reading      *mocks.MockIReading
	alert        *mocks.MockIAlert
	threshold    *mocks.MockIThreshold
	notification *mocks.MockINotification
	summary      *mocks.MockISummary
}

func GetMockMonitorWithMemorySqliteDialector(t *testing.T, use mockSet) *testMonitor {
	ctrl := gomock.NewController(t)

	dbInstance, err := db.NewInstance(db.UseMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbInstance.Close() })

	tm := &testMonitor{
		ctrl:         ctrl,
		fetcher:      mocks.NewMockIFetcher(ctrl),
		reading:      mocks.NewMockIReading(ctrl),
		alert:        mocks.NewMockIAlert(ctrl),
		threshold:    mocks.NewMockIThreshold(ctrl),
		notification: mocks.NewMockINotification(ctrl),
		summary:      mocks.NewMockISummary(ctrl),
	}

	m := New(dbInstance, tm.fetcher)

	opts := ServiceOpts{}
	if use.Reading {
		opts.Reading = tm.reading
	}
	if use.Alert {
		opts.Alert = tm.alert
	}
	if use.Threshold {
		opts.Threshold = tm.threshold
	}
	if use.Notification {
		opts.Notification = tm.notification
	}
	if use.Summary {
		opts.Summary = tm.summary
	}
	m.WithServices(opts)

	tm.monitor = m
	return tm
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr[T any](v T) *T {
	return &v
}

func seedHistory(t *testing.T, m *Monitor, city models.City, at time.Time, temp float64, condition string) {
	t.Helper()
	h := models.ReadingHistory{
		City:        city,
		Condition:   condition,
		Temperature: temp,
		FeelsLike:   temp,
		Timestamp:   at.UTC(),
	}
	require.NoError(t, m.Db.Conn.Create(&h).Error)
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
