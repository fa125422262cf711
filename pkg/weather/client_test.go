package weather

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/errors"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
	_ "liyu1981.xyz/weather-monitor-service/pkg/testing"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ClientOpts) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts.BaseURL = server.URL
	if opts.APIKey == "" {
		opts.APIKey = "test-api-key"
	}
	opts.Now = func() time.Time { return fixedNow }
	return NewClient(opts)
}

func TestKelvinToCelsius(t *testing.T) {
	assert.InDelta(t, 26.85, KelvinToCelsius(300.0), 0.01)
	assert.InDelta(t, 0.0, KelvinToCelsius(273.15), 1e-9)
	assert.InDelta(t, -273.15, KelvinToCelsius(0), 1e-9)
}

func TestFetch_Success(t *testing.T) {
	common.SetTestLoggerNop()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Delhi", r.URL.Query().Get("q"))
		assert.Equal(t, "test-api-key", r.URL.Query().Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"weather": [{"main": "Haze", "description": "haze"}],
			"main": {"temp": 300.0, "feels_like": 302.15, "humidity": 40}
		}`))
	}, ClientOpts{})

	reading, err := client.Fetch(context.Background(), models.CityDelhi)
	require.NoError(t, err)

	assert.Equal(t, models.CityDelhi, reading.City)
	assert.Equal(t, "Haze", reading.Condition)
	assert.InDelta(t, 26.85, reading.Temperature, 0.01)
	assert.InDelta(t, 29.0, reading.FeelsLike, 0.01)
	assert.Equal(t, fixedNow, reading.Timestamp)
}

func TestFetch_ErrorClassification(t *testing.T) {
	common.SetTestLoggerNop()

	tests := []struct {
		name     string
		status   int
		body     string
		wantType errors.ErrorType
	}{
		{"not found", http.StatusNotFound, `{"cod":"404","message":"city not found"}`, errors.ErrorTypeCityNotFound},
		{"unauthorized", http.StatusUnauthorized, `{"cod":401}`, errors.ErrorTypeUpstream},
		{"server error", http.StatusInternalServerError, `oops`, errors.ErrorTypeUpstream},
		{"not json", http.StatusOK, `<html>`, errors.ErrorTypeMalformedResponse},
		{"missing weather", http.StatusOK, `{"main": {"temp": 290, "feels_like": 290}}`, errors.ErrorTypeMalformedResponse},
		{"empty weather", http.StatusOK, `{"weather": [], "main": {"temp": 290, "feels_like": 290}}`, errors.ErrorTypeMalformedResponse},
		{"missing main", http.StatusOK, `{"weather": [{"main": "Clear"}]}`, errors.ErrorTypeMalformedResponse},
		{"missing feels_like", http.StatusOK, `{"weather": [{"main": "Clear"}], "main": {"temp": 290}}`, errors.ErrorTypeMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, ClientOpts{})

			reading, err := client.Fetch(context.Background(), models.CityMumbai)
			assert.Nil(t, reading)
			assert.Equal(t, tt.wantType, errors.TypeOf(err), "got %v", err)
		})
	}
}

func TestFetch_TimeoutIsUpstream(t *testing.T) {
	common.SetTestLoggerNop()

	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, ClientOpts{Timeout: 50 * time.Millisecond})
	defer close(release)

	_, err := client.Fetch(context.Background(), models.CityChennai)
	assert.True(t, errors.Is(err, errors.ErrorTypeUpstream), "got %v", err)
}

func TestFetch_CircuitBreaker(t *testing.T) {
	common.SetTestLoggerNop()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, ClientOpts{BreakerMaxFailures: 2, BreakerOpenTimeout: time.Minute})

	for range 2 {
		_, err := client.Fetch(context.Background(), models.CityKolkata)
		assert.True(t, errors.Is(err, errors.ErrorTypeUpstream))
	}
	require.Equal(t, int32(2), hits.Load())

	// breaker is open now, the provider must not be called
	_, err := client.Fetch(context.Background(), models.CityKolkata)
	assert.True(t, errors.Is(err, errors.ErrorTypeUpstream))
	assert.Contains(t, err.Error(), "circuit open")
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetch_NotFoundDoesNotTripBreaker(t *testing.T) {
	common.SetTestLoggerNop()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}, ClientOpts{BreakerMaxFailures: 1})

	for range 3 {
		_, err := client.Fetch(context.Background(), "Atlantis")
		assert.True(t, errors.Is(err, errors.ErrorTypeCityNotFound))
	}
	assert.Equal(t, int32(3), hits.Load())
}

func TestFetch_WithLog(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, ClientOpts{})

	_, err := client.Fetch(context.Background(), models.CityHyderabad)
	require.Error(t, err)

	out := buf.String()
	assert.True(t, strings.Contains(out, `"logger":"fetcher"`))
	assert.True(t, strings.Contains(out, `"city":"Hyderabad"`))
	assert.True(t, strings.Contains(out, "Failed to fetch weather data"))
}
