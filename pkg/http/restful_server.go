package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/errors"
	"liyu1981.xyz/weather-monitor-service/pkg/monitor"
)

const unexpectedErrorMessage = "An unexpected error occurred. Please try again later."

type RestfulServer struct {
	Server           *gin.Engine
	Monitor          *monitor.Monitor
	RateLimiterStore *monitor.RateLimiterStore
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (rs *RestfulServer) CheckCityLimiter(city string) bool {
	if rs.RateLimiterStore == nil {
		return true
	}
	return rs.RateLimiterStore.Allow(city)
}

func (rs *RestfulServer) SetLimiter(city string, cityRate float64, cityBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(city, rate.Limit(cityRate), cityBurst)
	common.GetLoggerWith(common.LoggerNameRestfulServer).Info("Limiter updated",
		zap.String("city", city),
		zap.Float64("rate", cityRate),
		zap.Int("burst", cityBurst),
		zap.Int("limiters", rs.RateLimiterStore.Len()),
	)
}

// Recovery turns a panic in any handler into a generic 500 and logs the detail.
func (rs *RestfulServer) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		common.GetLoggerWith(common.LoggerNameRestfulServer).Error("Unhandled error while serving request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: unexpectedErrorMessage})
	})
}

// respondError maps typed errors to a status. Provider and store failures
// are reported without their causes.
func (rs *RestfulServer) respondError(c *gin.Context, err error) {
	logger := common.GetLoggerWith(common.LoggerNameRestfulServer)

	appErr, ok := errors.AsAppError(err)
	if !ok {
		logger.Error("Unexpected error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: unexpectedErrorMessage})
		return
	}

	switch appErr.Type {
	case errors.ErrorTypeValidation:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: appErr.Message})
	case errors.ErrorTypeNotFound, errors.ErrorTypeCityNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: appErr.Message})
	case errors.ErrorTypeUpstream, errors.ErrorTypeMalformedResponse, errors.ErrorTypeUnknownFetch:
		logger.Error("Weather provider error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Error fetching weather data"})
	case errors.ErrorTypeStore:
		logger.Error("Store error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: appErr.Message})
	default:
		logger.Error("Unexpected error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: unexpectedErrorMessage})
	}
}

func (rs *RestfulServer) Setup() {
	rs.Server.Use(rs.Recovery())

	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rs.Server.GET("/weather/:city", rs.GetWeather)
	rs.Server.GET("/weather-history/:city", rs.GetWeatherHistory)
	rs.Server.GET("/weather-alerts/:city", rs.GetWeatherAlerts)

	rs.Server.GET("/summaries/:city", rs.GetSummaries)
	rs.Server.GET("/all-summaries", rs.GetAllSummaries)
	rs.Server.POST("/trigger-summary-calculation", rs.TriggerSummaryCalculation)

	rs.Server.POST("/set-alert-threshold", rs.SetAlertThreshold)
	rs.Server.GET("/alert-threshold/:city", rs.GetAlertThreshold)

	notifications := rs.Server.Group("/notifications")
	{
		notifications.GET("", rs.GetNotifications)
		// :key is a city here and a notification id below
		notifications.GET("/:key", rs.GetCityNotifications)
		notifications.PUT("/:key/read", rs.MarkNotificationRead)
	}

	rs.Server.POST("/limiter/:city", rs.PostLimiter)
}
