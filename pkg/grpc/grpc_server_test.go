package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/db"
	"liyu1981.xyz/weather-monitor-service/pkg/errors"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
	"liyu1981.xyz/weather-monitor-service/pkg/monitor"
	"liyu1981.xyz/weather-monitor-service/pkg/monitor/mocks"
	_ "liyu1981.xyz/weather-monitor-service/pkg/testing"
)

const bufSize = 1024 * 1024

type testEnv struct {
	client  *WeatherMonitorServiceClient
	monitor *monitor.Monitor
	fetcher *mocks.MockIFetcher
}

func startTestServerWithLimiter(t *testing.T, limiterStore *monitor.RateLimiterStore) *testEnv {
	listener := bufconn.Listen(bufSize)

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockIFetcher(ctrl)

	dbInstance, err := db.NewInstance(db.UseMemorySqliteDialector())
	require.NoError(t, err)

	weatherServer := &WeatherServer{Monitor: monitor.New(dbInstance, fetcher), RateLimiterStore: limiterStore}
	server := weatherServer.NewServer()

	go func() {
		_ = server.Serve(listener)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, s string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		server.Stop()
		_ = dbInstance.Close()
	})

	return &testEnv{
		client:  NewWeatherMonitorServiceClient(conn),
		monitor: weatherServer.Monitor,
		fetcher: fetcher,
	}
}

func startTestServer(t *testing.T) *testEnv {
	return startTestServerWithLimiter(t, nil)
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestGetCurrentWeather(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServer(t)

	env.fetcher.EXPECT().
		Fetch(gomock.Any(), models.CityDelhi).
		Return(&models.Reading{City: models.CityDelhi, Condition: "Haze", Temperature: 26.85, FeelsLike: 28, Timestamp: time.Now()}, nil)

	resp, err := env.client.GetCurrentWeather(context.Background(), wrapperspb.String("Delhi"))
	require.NoError(t, err)

	fields := resp.AsMap()
	assert.Equal(t, "Delhi", fields["city"])
	assert.Equal(t, "Haze", fields["main"])
	assert.Equal(t, 26.85, fields["temp"])
}

func TestGetCurrentWeatherEdgeCases(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServer(t)

	// unknown cities never reach the provider
	_, err := env.client.GetCurrentWeather(context.Background(), wrapperspb.String("Paris"))
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, "City not found: Paris", status.Convert(err).Message())

	env.fetcher.EXPECT().
		Fetch(gomock.Any(), models.CityMumbai).
		Return(nil, errors.NewCityNotFoundError("Mumbai"))
	_, err = env.client.GetCurrentWeather(context.Background(), wrapperspb.String("Mumbai"))
	assert.Equal(t, codes.NotFound, status.Code(err))

	env.fetcher.EXPECT().
		Fetch(gomock.Any(), models.CityMumbai).
		Return(nil, errors.NewUpstreamError("provider returned 503", nil))
	_, err = env.client.GetCurrentWeather(context.Background(), wrapperspb.String("Mumbai"))
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "Error fetching weather data", st.Message())
}

func TestAlertThresholdRoundTrip(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServer(t)
	ctx := context.Background()

	_, err := env.client.SetAlertThreshold(ctx, mustStruct(t, map[string]any{
		"city":              "Chennai",
		"max_temp":          38.0,
		"weather_condition": "Thunderstorm",
	}))
	require.NoError(t, err)

	resp, err := env.client.GetAlertThreshold(ctx, wrapperspb.String("Chennai"))
	require.NoError(t, err)
	fields := resp.AsMap()
	assert.Equal(t, 38.0, fields["max_temp"])
	assert.Equal(t, "Thunderstorm", fields["weather_condition"])
	_, hasMin := fields["min_temp"]
	assert.False(t, hasMin)

	_, err = env.client.GetAlertThreshold(ctx, wrapperspb.String("Kolkata"))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = env.client.SetAlertThreshold(ctx, mustStruct(t, map[string]any{
		"city": "Chennai", "max_temp": 10.0, "min_temp": 20.0,
	}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = env.client.SetAlertThreshold(ctx, mustStruct(t, map[string]any{
		"city": "Chennai", "max_temp": "hot",
	}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestListNotifications(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServer(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, city := range []models.City{models.CityDelhi, models.CityMumbai, models.CityDelhi} {
		require.NoError(t, env.monitor.Notification.CreateNotification(ctx, &models.Notification{
			City: city, Message: "ALERT for " + string(city), Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	resp, err := env.client.ListNotifications(ctx, mustStruct(t, map[string]any{}))
	require.NoError(t, err)
	assert.Len(t, resp.GetValues(), 3)

	resp, err = env.client.ListNotifications(ctx, mustStruct(t, map[string]any{"city": "Delhi", "limit": 1}))
	require.NoError(t, err)
	require.Len(t, resp.GetValues(), 1)
	assert.Equal(t, "Delhi", resp.GetValues()[0].GetStructValue().AsMap()["city"])

	_, err = env.client.ListNotifications(ctx, mustStruct(t, map[string]any{"limit": 0}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = env.client.ListNotifications(ctx, mustStruct(t, map[string]any{"offset": -1}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetSummaries(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServer(t)
	ctx := context.Background()

	require.NoError(t, env.monitor.Db.Conn.Create(&models.DailySummary{
		Date: "2026-03-01", City: models.CityBangalore, AvgTemp: 20, MaxTemp: 30, MinTemp: 10, DominantCondition: "Clear", TotalEntries: 3,
	}).Error)

	resp, err := env.client.GetSummaries(ctx, mustStruct(t, map[string]any{
		"city": "Bangalore", "start_date": "2026-03-01", "end_date": "2026-03-31",
	}))
	require.NoError(t, err)
	require.Len(t, resp.GetValues(), 1)
	assert.Equal(t, "Clear", resp.GetValues()[0].GetStructValue().AsMap()["dominant_condition"])

	_, err = env.client.GetSummaries(ctx, mustStruct(t, map[string]any{"city": "Delhi", "start_date": "2026-03-01"}))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = env.client.GetSummaries(ctx, mustStruct(t, map[string]any{"city": "Delhi", "start_date": "March"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRateLimitInterceptor(t *testing.T) {
	common.SetTestLoggerNop()

	limiterStore := monitor.NewRateLimiterStore(2, 2) // Allow 2 req/sec per city
	env := startTestServerWithLimiter(t, limiterStore)
	ctx := context.Background()

	env.fetcher.EXPECT().
		Fetch(gomock.Any(), models.CityHyderabad).
		Return(&models.Reading{City: models.CityHyderabad, Condition: "Clear", Temperature: 31, Timestamp: time.Now()}, nil).
		Times(2)

	for range 2 {
		_, err := env.client.GetCurrentWeather(ctx, wrapperspb.String("Hyderabad"))
		require.NoError(t, err)
	}

	_, err := env.client.GetCurrentWeather(ctx, wrapperspb.String("Hyderabad"))
	st, ok := status.FromError(err)
	require.True(t, ok)
	require.Equal(t, codes.ResourceExhausted, st.Code(), "expected ResourceExhausted code")

	// methods that only read the store are not limited
	for range 5 {
		_, err := env.client.GetAlertThreshold(ctx, wrapperspb.String("Hyderabad"))
		assert.Equal(t, codes.NotFound, status.Code(err))
	}

	limiterStore.SetLimiter("Hyderabad", 2, 2)
	env.fetcher.EXPECT().
		Fetch(gomock.Any(), models.CityHyderabad).
		Return(&models.Reading{City: models.CityHyderabad, Condition: "Clear", Temperature: 31, Timestamp: time.Now()}, nil)
	_, err = env.client.GetCurrentWeather(ctx, wrapperspb.String("Hyderabad"))
	require.NoError(t, err)
}

func TestRecoveryInterceptor(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServer(t)

	env.fetcher.EXPECT().
		Fetch(gomock.Any(), models.CityKolkata).
		DoAndReturn(func(context.Context, models.City) (*models.Reading, error) {
			panic("nil pointer in provider client")
		})

	_, err := env.client.GetCurrentWeather(context.Background(), wrapperspb.String("Kolkata"))
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Internal, st.Code())
	assert.NotContains(t, st.Message(), "nil pointer")
}

func TestRateLimitInterceptor_UnknownCity(t *testing.T) {
	common.SetTestLoggerNop()

	limiterStore := monitor.NewRateLimiterStore(0, 1)
	env := startTestServerWithLimiter(t, limiterStore)
	ctx := context.Background()

	for _, city := range []string{"Paris", "paris", "Berlin", "", "Paris"} {
		_, err := env.client.GetCurrentWeather(ctx, wrapperspb.String(city))
		assert.Equal(t, codes.NotFound, status.Code(err), "city %q", city)
	}
	assert.Equal(t, 0, limiterStore.Len())

	env.fetcher.EXPECT().
		Fetch(gomock.Any(), models.CityDelhi).
		Return(&models.Reading{City: models.CityDelhi, Condition: "Haze", Temperature: 26.85, Timestamp: time.Now()}, nil)
	_, err := env.client.GetCurrentWeather(ctx, wrapperspb.String("Delhi"))
	require.NoError(t, err)
	assert.Equal(t, 1, limiterStore.Len())

	_, err = env.client.GetCurrentWeather(ctx, wrapperspb.String("Delhi"))
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}
