package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	FetchOutcomeSuccess      = "success"
	FetchOutcomeCityNotFound = "city_not_found"
	FetchOutcomeUpstream     = "upstream_error"
	FetchOutcomeMalformed    = "malformed_response"
	FetchOutcomeUnknown      = "unknown_error"

	StageFetch     = "fetch"
	StageStore     = "store"
	StageEvaluate  = "evaluate"
	StageAggregate = "aggregate"
	StagePanic     = "panic"
)

var (
	MonitorCycles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weather_monitor_cycles_total",
			Help: "The total number of completed monitoring cycles",
		},
	)

	MonitorCityFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_monitor_city_failures_total",
			Help: "The total number of per-city failures inside monitoring cycles",
		},
		[]string{"city", "stage"},
	)

	MonitorAlerts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_monitor_alerts_total",
			Help: "The total number of alert notifications raised",
		},
		[]string{"city"},
	)

	SummariesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_summaries_written_total",
			Help: "The total number of daily summary upserts",
		},
		[]string{"city"},
	)

	FetchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_fetch_requests_total",
			Help: "The total number of weather provider calls by outcome",
		},
		[]string{"outcome"},
	)

	FetchLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "weather_fetch_duration_seconds",
			Help:    "Weather provider call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
