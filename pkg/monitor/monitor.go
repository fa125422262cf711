package monitor

import (
	"context"
	"time"

	"liyu1981.xyz/weather-monitor-service/pkg/db"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
)

//go:generate mockgen -source=monitor.go -destination=mocks/mock_monitor.go -package=mocks

type IFetcher interface {
	Fetch(ctx context.Context, city models.City) (*models.Reading, error)
}

type IReading interface {
	UpsertReading(ctx context.Context, reading *models.Reading) error
	GetLatestReading(ctx context.Context, city models.City) (*models.Reading, error)
	GetWeatherHistory(ctx context.Context, city models.City, from, to *time.Time) ([]models.ReadingHistory, error)
}

type IAlert interface {
	CheckAndStoreAlerts(ctx context.Context, reading *models.Reading) ([]string, error)
	GetWeatherAlerts(ctx context.Context, city models.City, limit int) ([]models.WeatherAlert, error)
}

type IThreshold interface {
	UpsertThreshold(ctx context.Context, threshold *models.AlertThreshold) error
	GetThreshold(ctx context.Context, city models.City) (*models.AlertThreshold, error)
}

type INotification interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListNotifications(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}

type ISummary interface {
	CalculateDailySummary(ctx context.Context, city models.City, day time.Time) (*models.DailySummary, error)
	CalculateAllSummaries(ctx context.Context, day time.Time) error
	GetSummaries(ctx context.Context, city models.City, startDate, endDate string) ([]models.DailySummary, error)
	GetAllSummaries(ctx context.Context) ([]models.DailySummary, error)
}

type Monitor struct {
	Db           db.DB
	Fetcher      IFetcher
	Reading      IReading
	Alert        IAlert
	Threshold    IThreshold
	Notification INotification
	Summary      ISummary

	// Now is the clock used for notification timestamps and the current day.
	Now func() time.Time
}

type ServiceOpts struct {
	Fetcher      IFetcher
	Reading      IReading
	Alert        IAlert
	Threshold    IThreshold
	Notification INotification
	Summary      ISummary
}

// New builds a Monitor over the given store with the store-backed services wired in.
func New(dbInstance *db.DB, fetcher IFetcher) *Monitor {
	m := &Monitor{Db: *dbInstance}
	m.WithServices(ServiceOpts{
		Fetcher:      fetcher,
		Reading:      m.GetIReading(),
		Alert:        m.GetIAlert(),
		Threshold:    m.GetIThreshold(),
		Notification: m.GetINotification(),
		Summary:      m.GetISummary(),
	})
	return m
}

func (m *Monitor) WithServices(opts ServiceOpts) *Monitor {
	if opts.Fetcher != nil {
		m.Fetcher = opts.Fetcher
	}
	if opts.Reading != nil {
		m.Reading = opts.Reading
	}
	if opts.Alert != nil {
		m.Alert = opts.Alert
	}
	if opts.Threshold != nil {
		m.Threshold = opts.Threshold
	}
	if opts.Notification != nil {
		m.Notification = opts.Notification
	}
	if opts.Summary != nil {
		m.Summary = opts.Summary
	}
	return m
}

func (m *Monitor) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}
