package monitor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/errors"
	"liyu1981.xyz/weather-monitor-service/pkg/metrics"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
)

// DefaultSummaryWindowDays is how far back summary queries reach when no
// date bounds are given.
const DefaultSummaryWindowDays = 30

// Summarize folds the day's readings, in scan order, into a summary. It returns
// nil when there is nothing to summarize.
func Summarize(city models.City, date string, readings []models.ReadingHistory) *models.DailySummary {
	if len(readings) == 0 {
		return nil
	}

	counts := map[string]int{}
	dominant, dominantCount := "", 0
	sum := 0.0
	maxTemp, minTemp := readings[0].Temperature, readings[0].Temperature

	for _, r := range readings {
		sum += r.Temperature
		if r.Temperature > maxTemp {
			maxTemp = r.Temperature
		}
		if r.Temperature < minTemp {
			minTemp = r.Temperature
		}

		counts[r.Condition]++
		// strict: on a tie the label that reached the count first stays
		if counts[r.Condition] > dominantCount {
			dominant, dominantCount = r.Condition, counts[r.Condition]
		}
	}

	return &models.DailySummary{
		Date:              date,
		City:              city,
		AvgTemp:           sum / float64(len(readings)),
		MaxTemp:           maxTemp,
		MinTemp:           minTemp,
		DominantCondition: dominant,
		TotalEntries:      len(readings),
	}
}

func (m *Monitor) calculateDailySummary(ctx context.Context, city models.City, day time.Time) (*models.DailySummary, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitor,
		zap.String(common.LoggerFieldCategory, common.LoggerCategorySummary),
		zap.String(common.LoggerFieldCity, string(city)),
	)

	start := common.StartOfDay(day)
	end := start.AddDate(0, 0, 1)
	date := common.FormatDate(start)

	var readings []models.ReadingHistory
	err := m.Db.Conn.WithContext(ctx).
		Where("city = ? AND timestamp >= ? AND timestamp < ?", city, start, end).
		Order("timestamp asc").
		Order("id asc").
		Find(&readings).Error
	if err != nil {
		return nil, errors.NewStoreError(fmt.Sprintf("failed to load weather history for %s", city), err)
	}

	summary := Summarize(city, date, readings)
	if summary == nil {
		logger.Info("No weather data found for city on date", zap.String("date", date))
		return nil, nil
	}

	err = m.Db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "city"}},
		UpdateAll: true,
	}).Create(summary).Error
	if err != nil {
		return nil, errors.NewStoreError(fmt.Sprintf("failed to upsert daily summary for %s", city), err)
	}

	metrics.SummariesWritten.WithLabelValues(string(city)).Inc()
	logger.Info("Upserted daily summary", zap.Reflect("summary", summary))

	return summary, nil
}

func (m *Monitor) calculateAllSummaries(ctx context.Context, day time.Time) error {
	if m.Summary == nil {
		return fmt.Errorf("summary service not available")
	}
	for _, city := range models.Cities {
		if _, err := m.Summary.CalculateDailySummary(ctx, city, day); err != nil {
			return errors.Wrap(errors.TypeOf(err), fmt.Sprintf("Error calculating daily summary for %s", city), err)
		}
	}
	return nil
}

// getSummaries returns the city's summaries newest first. Dates are
// YYYY-MM-DD so they compare lexically; with no bounds the trailing
// DefaultSummaryWindowDays are returned.
func (m *Monitor) getSummaries(ctx context.Context, city models.City, startDate, endDate string) ([]models.DailySummary, error) {
	if startDate == "" && endDate == "" {
		today := common.StartOfDay(m.now())
		startDate = common.FormatDate(today.AddDate(0, 0, -DefaultSummaryWindowDays))
		endDate = common.FormatDate(today)
	}

	query := m.Db.Conn.WithContext(ctx).Where("city = ?", city)
	if startDate != "" {
		query = query.Where("date >= ?", startDate)
	}
	if endDate != "" {
		query = query.Where("date <= ?", endDate)
	}

	summaries := []models.DailySummary{}
	if err := query.Order("date desc").Find(&summaries).Error; err != nil {
		return nil, errors.NewStoreError(fmt.Sprintf("Error fetching summaries for %s", city), err)
	}
	return summaries, nil
}

func (m *Monitor) getAllSummaries(ctx context.Context) ([]models.DailySummary, error) {
	summaries := []models.DailySummary{}
	if err := m.Db.Conn.WithContext(ctx).Order("date desc").Order("city asc").Find(&summaries).Error; err != nil {
		return nil, errors.NewStoreError("Error fetching all summaries", err)
	}
	return summaries, nil
}

type ISummaryImpl struct {
	monitor *Monitor
}

func (is *ISummaryImpl) CalculateDailySummary(ctx context.Context, city models.City, day time.Time) (*models.DailySummary, error) {
	return is.monitor.calculateDailySummary(ctx, city, day)
}

func (is *ISummaryImpl) CalculateAllSummaries(ctx context.Context, day time.Time) error {
	return is.monitor.calculateAllSummaries(ctx, day)
}

func (is *ISummaryImpl) GetSummaries(ctx context.Context, city models.City, startDate, endDate string) ([]models.DailySummary, error) {
	return is.monitor.getSummaries(ctx, city, startDate, endDate)
}

func (is *ISummaryImpl) GetAllSummaries(ctx context.Context) ([]models.DailySummary, error) {
	return is.monitor.getAllSummaries(ctx)
}

func (m *Monitor) GetISummary() ISummary {
	return &ISummaryImpl{monitor: m}
}
