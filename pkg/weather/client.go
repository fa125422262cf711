package weather

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/errors"
	"liyu1981.xyz/weather-monitor-service/pkg/metrics"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

	kelvinOffset = 273.15
)

func KelvinToCelsius(k float64) float64 {
	return k - kelvinOffset
}

type ClientOpts struct {
	APIKey             string
	BaseURL            string
	Timeout            time.Duration
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
	HTTPClient         *http.Client
	Now                func() time.Time
}

// Client fetches current conditions from OpenWeatherMap, one city per call.
// It never retries; the caller decides what to do with a failure.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
	now        func() time.Time
}

func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.BreakerMaxFailures == 0 {
		opts.BreakerMaxFailures = 5
	}
	if opts.BreakerOpenTimeout <= 0 {
		opts.BreakerOpenTimeout = time.Minute
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	maxFailures := opts.BreakerMaxFailures
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 1,
		Timeout:     opts.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// an unknown city is the caller's problem, not a sign the provider is down
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errors.ErrorTypeCityNotFound)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			common.GetLoggerWith(common.LoggerNameFetcher).Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    opts.BaseURL,
		timeout:    opts.Timeout,
		httpClient: opts.HTTPClient,
		circuit:    cb,
		now:        opts.Now,
	}
}

type providerResponse struct {
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
	} `json:"main"`
}

func (c *Client) Fetch(ctx context.Context, city models.City) (*models.Reading, error) {
	logger := common.GetLoggerWith(common.LoggerNameFetcher, zap.String(common.LoggerFieldCity, string(city)))

	start := time.Now()
	reading, err := c.fetch(ctx, city)
	metrics.FetchLatency.Observe(time.Since(start).Seconds())
	metrics.FetchRequests.WithLabelValues(outcomeOf(err)).Inc()

	if err != nil {
		logger.Warn("Failed to fetch weather data", zap.Error(err))
		return nil, err
	}

	logger.Info("Fetched weather data", zap.Reflect("reading", reading))
	return reading, nil
}

func (c *Client) fetch(ctx context.Context, city models.City) (*models.Reading, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	values := url.Values{}
	values.Set("q", string(city))
	values.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", c.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, errors.NewUnknownFetchError("failed to build weather provider request", err)
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, errors.NewUpstreamError("Error fetching weather data from external API", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, errors.NewCityNotFoundError(string(city))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, errors.NewUpstreamError(fmt.Sprintf("weather provider returned status %d", resp.StatusCode), nil)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.NewUpstreamError("failed to read weather provider response", err)
		}
		return body, nil
	})

	if err != nil {
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.NewUpstreamError("weather provider circuit open", err)
		}
		if errors.TypeOf(err) != errors.ErrorTypeUnknown {
			return nil, err
		}
		return nil, errors.NewUnknownFetchError("unexpected error fetching weather data", err)
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, errors.NewUnknownFetchError("unexpected result type from circuit breaker", nil)
	}

	return c.decode(city, body)
}

func (c *Client) decode(city models.City, body []byte) (*models.Reading, error) {
	var payload providerResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.NewMalformedResponseError("Unexpected data format from external API", err)
	}

	switch {
	case len(payload.Weather) == 0 || payload.Weather[0].Main == "":
		return nil, errors.NewMalformedResponseError("Unexpected data format from external API: missing weather[0].main", nil)
	case payload.Main == nil || payload.Main.Temp == nil:
		return nil, errors.NewMalformedResponseError("Unexpected data format from external API: missing main.temp", nil)
	case payload.Main.FeelsLike == nil:
		return nil, errors.NewMalformedResponseError("Unexpected data format from external API: missing main.feels_like", nil)
	}

	return &models.Reading{
		City:        city,
		Condition:   payload.Weather[0].Main,
		Temperature: KelvinToCelsius(*payload.Main.Temp),
		FeelsLike:   KelvinToCelsius(*payload.Main.FeelsLike),
		Timestamp:   c.now().UTC(),
	}, nil
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.FetchOutcomeSuccess
	}
	switch errors.TypeOf(err) {
	case errors.ErrorTypeCityNotFound:
		return metrics.FetchOutcomeCityNotFound
	case errors.ErrorTypeUpstream:
		return metrics.FetchOutcomeUpstream
	case errors.ErrorTypeMalformedResponse:
		return metrics.FetchOutcomeMalformed
	default:
		return metrics.FetchOutcomeUnknown
	}
}
