package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/errors"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
	"liyu1981.xyz/weather-monitor-service/pkg/validation"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

func (rs *RestfulServer) cityParam(c *gin.Context) (models.City, bool) {
	city, err := validation.ValidateCity(c.Param("city"))
	if err != nil {
		rs.respondError(c, err)
		return "", false
	}
	return city, true
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(name + " must be an integer")
	}
	return v, nil
}

func paginationQuery(c *gin.Context) (int, int, error) {
	limit, err := queryInt(c, "limit", validation.DefaultLimit)
	if err != nil {
		return 0, 0, err
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	if err := validation.ValidatePagination(limit, offset); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

// GetWeather fetches the current weather from the provider, not from the store.
// A city outside the monitored set is answered as not found without a call.
func (rs *RestfulServer) GetWeather(c *gin.Context) {
	city, err := validation.ValidateCity(c.Param("city"))
	if err != nil {
		rs.respondError(c, errors.NewCityNotFoundError(c.Param("city")))
		return
	}

	if !rs.CheckCityLimiter(string(city)) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	reading, err := rs.Monitor.Fetcher.Fetch(c.Request.Context(), city)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reading)
}

func (rs *RestfulServer) GetWeatherHistory(c *gin.Context) {
	city, ok := rs.cityParam(c)
	if !ok {
		return
	}

	from, err := validation.ParseTimestamp("start_date", c.Query("start_date"))
	if err != nil {
		rs.respondError(c, err)
		return
	}
	to, err := validation.ParseTimestamp("end_date", c.Query("end_date"))
	if err != nil {
		rs.respondError(c, err)
		return
	}
	if err := validation.ValidateTimeRange(from, to); err != nil {
		rs.respondError(c, err)
		return
	}

	history, err := rs.Monitor.Reading.GetWeatherHistory(c.Request.Context(), city, from, to)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.Mapper(history, models.ReadingHistory.Reading))
}

func (rs *RestfulServer) GetWeatherAlerts(c *gin.Context) {
	city, ok := rs.cityParam(c)
	if !ok {
		return
	}

	limit, err := queryInt(c, "limit", validation.DefaultLimit)
	if err == nil {
		err = validation.ValidatePagination(limit, 0)
	}
	if err != nil {
		rs.respondError(c, err)
		return
	}

	alerts, err := rs.Monitor.Alert.GetWeatherAlerts(c.Request.Context(), city, limit)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

type SummariesResponse struct {
	Summaries []models.DailySummary `json:"summaries"`
}

func (rs *RestfulServer) GetSummaries(c *gin.Context) {
	city, ok := rs.cityParam(c)
	if !ok {
		return
	}

	startDate, endDate := c.Query("start_date"), c.Query("end_date")
	if _, err := validation.ParseDate("start_date", startDate); err != nil {
		rs.respondError(c, err)
		return
	}
	if _, err := validation.ParseDate("end_date", endDate); err != nil {
		rs.respondError(c, err)
		return
	}

	summaries, err := rs.Monitor.Summary.GetSummaries(c.Request.Context(), city, startDate, endDate)
	if err != nil {
		rs.respondError(c, err)
		return
	}
	if len(summaries) == 0 {
		rs.respondError(c, errors.NewNotFoundError("No summaries found for the given criteria."))
		return
	}

	c.JSON(http.StatusOK, SummariesResponse{Summaries: summaries})
}

func (rs *RestfulServer) GetAllSummaries(c *gin.Context) {
	summaries, err := rs.Monitor.Summary.GetAllSummaries(c.Request.Context())
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SummariesResponse{Summaries: summaries})
}

// TriggerSummaryCalculation recomputes every city's summary for ?date, today
// when absent. The first failing city aborts the request.
func (rs *RestfulServer) TriggerSummaryCalculation(c *gin.Context) {
	day, err := validation.ParseDate("date", c.Query("date"))
	if err != nil {
		rs.respondError(c, err)
		return
	}
	if day.IsZero() {
		day = time.Now().UTC()
		if rs.Monitor.Now != nil {
			day = rs.Monitor.Now().UTC()
		}
	}

	if err := rs.Monitor.Summary.CalculateAllSummaries(c.Request.Context(), day); err != nil {
		rs.respondError(c, err)
		return
	}

	common.GetLoggerWith(common.LoggerNameRestfulServer,
		zap.String(common.LoggerFieldCategory, common.LoggerCategorySummary),
	).Info("Daily summary calculation triggered for all cities", zap.String("date", common.FormatDate(day)))

	c.JSON(http.StatusOK, MessageResponse{Message: "Daily summary calculation triggered for all cities"})
}

type AlertThresholdRequest struct {
	City             string   `json:"city"`
	MaxTemp          *float64 `json:"max_temp"`
	MinTemp          *float64 `json:"min_temp"`
	WeatherCondition *string  `json:"weather_condition"`
}

// Bounds are parsed as pointers so an explicit 0 stays a bound. Range and
// ordering checks run when the threshold is written.
var alertThresholdRequestSchema = z.Struct(z.Shape{
	"city":             z.String().Required(),
	"maxTemp":          z.Ptr(z.Float64()),
	"minTemp":          z.Ptr(z.Float64()),
	"weatherCondition": z.Ptr(z.String()),
})

func (rs *RestfulServer) SetAlertThreshold(c *gin.Context) {
	var req AlertThresholdRequest
	if errs := alertThresholdRequestSchema.Parse(zhttp.Request(c.Request), &req); errs != nil {
		rs.respondError(c, errors.NewValidationError("Invalid alert threshold payload"))
		return
	}

	threshold := models.AlertThreshold{
		City:             models.City(req.City),
		MaxTemp:          req.MaxTemp,
		MinTemp:          req.MinTemp,
		WeatherCondition: req.WeatherCondition,
	}

	if err := rs.Monitor.Threshold.UpsertThreshold(c.Request.Context(), &threshold); err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Alert threshold set successfully"})
}

func (rs *RestfulServer) GetAlertThreshold(c *gin.Context) {
	city, ok := rs.cityParam(c)
	if !ok {
		return
	}

	threshold, err := rs.Monitor.Threshold.GetThreshold(c.Request.Context(), city)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, threshold)
}

func (rs *RestfulServer) listNotifications(c *gin.Context, city models.City) {
	limit, offset, err := paginationQuery(c)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	notifications, err := rs.Monitor.Notification.ListNotifications(c.Request.Context(), models.NotificationFilter{
		City:   city,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (rs *RestfulServer) GetNotifications(c *gin.Context) {
	rs.listNotifications(c, "")
}

func (rs *RestfulServer) GetCityNotifications(c *gin.Context) {
	city, err := validation.ValidateCity(c.Param("key"))
	if err != nil {
		rs.respondError(c, err)
		return
	}
	rs.listNotifications(c, city)
}

func (rs *RestfulServer) MarkNotificationRead(c *gin.Context) {
	id := c.Param("key")

	if err := rs.Monitor.Notification.MarkNotificationRead(c.Request.Context(), id); err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Notification marked as read"})
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	city, ok := rs.cityParam(c)
	if !ok {
		return
	}

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(string(city), req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
