package grpc

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/errors"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
	"liyu1981.xyz/weather-monitor-service/pkg/validation"
)

// toStatus maps typed errors to gRPC codes. Provider and store failures do
// not expose their causes.
func toStatus(method string, err error) error {
	appErr, ok := errors.AsAppError(err)
	if ok {
		switch appErr.Type {
		case errors.ErrorTypeValidation:
			return status.Error(codes.InvalidArgument, appErr.Message)
		case errors.ErrorTypeNotFound, errors.ErrorTypeCityNotFound:
			return status.Error(codes.NotFound, appErr.Message)
		}
	}

	common.GetLoggerWith(common.LoggerNameGrpcServer).Error("Call failed", zap.String("method", method), zap.Error(err))

	if ok && appErr.Type.IsFetchFailure() {
		return status.Error(codes.Internal, "Error fetching weather data")
	}
	if ok && appErr.Type == errors.ErrorTypeStore {
		return status.Error(codes.Internal, appErr.Message)
	}
	return status.Error(codes.Internal, "An unexpected error occurred. Please try again later.")
}

// structOf and listOf go through the JSON form so the json tags of the models
// define the field names on this surface too.
func structOf(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, err
	}
	return out, nil
}

func listOf(v any) (*structpb.ListValue, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.ListValue{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeStruct(in *structpb.Struct, v any) error {
	b, err := protojson.Marshal(in)
	if err != nil {
		return errors.NewValidationError("request could not be read")
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errors.NewValidationError("request has fields of the wrong type")
	}
	return nil
}

// GetCurrentWeather answers NotFound for a city outside the monitored set,
// the same as a city the provider does not know.
func (s *WeatherServer) GetCurrentWeather(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	city, err := validation.ValidateCity(req.GetValue())
	if err != nil {
		return nil, toStatus(FullMethodGetCurrentWeather, errors.NewCityNotFoundError(req.GetValue()))
	}

	reading, err := s.Monitor.Fetcher.Fetch(ctx, city)
	if err != nil {
		return nil, toStatus(FullMethodGetCurrentWeather, err)
	}

	out, err := structOf(reading)
	if err != nil {
		return nil, toStatus(FullMethodGetCurrentWeather, err)
	}
	return out, nil
}

func (s *WeatherServer) GetAlertThreshold(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	city, err := validation.ValidateCity(req.GetValue())
	if err != nil {
		return nil, toStatus(FullMethodGetAlertThreshold, err)
	}

	threshold, err := s.Monitor.Threshold.GetThreshold(ctx, city)
	if err != nil {
		return nil, toStatus(FullMethodGetAlertThreshold, err)
	}

	out, err := structOf(threshold)
	if err != nil {
		return nil, toStatus(FullMethodGetAlertThreshold, err)
	}
	return out, nil
}

func (s *WeatherServer) SetAlertThreshold(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	var threshold models.AlertThreshold
	if err := decodeStruct(req, &threshold); err != nil {
		return nil, toStatus(FullMethodSetAlertThreshold, err)
	}

	if err := s.Monitor.Threshold.UpsertThreshold(ctx, &threshold); err != nil {
		return nil, toStatus(FullMethodSetAlertThreshold, err)
	}
	return &emptypb.Empty{}, nil
}

type listNotificationsRequest struct {
	City   string `json:"city"`
	Limit  *int   `json:"limit"`
	Offset *int   `json:"offset"`
}

func (s *WeatherServer) ListNotifications(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	var r listNotificationsRequest
	if err := decodeStruct(req, &r); err != nil {
		return nil, toStatus(FullMethodListNotifications, err)
	}

	filter := models.NotificationFilter{Limit: validation.DefaultLimit}
	if r.Limit != nil {
		filter.Limit = *r.Limit
	}
	if r.Offset != nil {
		filter.Offset = *r.Offset
	}
	if err := validation.ValidatePagination(filter.Limit, filter.Offset); err != nil {
		return nil, toStatus(FullMethodListNotifications, err)
	}
	if r.City != "" {
		city, err := validation.ValidateCity(r.City)
		if err != nil {
			return nil, toStatus(FullMethodListNotifications, err)
		}
		filter.City = city
	}

	notifications, err := s.Monitor.Notification.ListNotifications(ctx, filter)
	if err != nil {
		return nil, toStatus(FullMethodListNotifications, err)
	}

	out, err := listOf(notifications)
	if err != nil {
		return nil, toStatus(FullMethodListNotifications, err)
	}
	return out, nil
}

type getSummariesRequest struct {
	City      string `json:"city"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (s *WeatherServer) GetSummaries(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	var r getSummariesRequest
	if err := decodeStruct(req, &r); err != nil {
		return nil, toStatus(FullMethodGetSummaries, err)
	}

	city, err := validation.ValidateCity(r.City)
	if err != nil {
		return nil, toStatus(FullMethodGetSummaries, err)
	}
	if _, err := validation.ParseDate("start_date", r.StartDate); err != nil {
		return nil, toStatus(FullMethodGetSummaries, err)
	}
	if _, err := validation.ParseDate("end_date", r.EndDate); err != nil {
		return nil, toStatus(FullMethodGetSummaries, err)
	}

	summaries, err := s.Monitor.Summary.GetSummaries(ctx, city, r.StartDate, r.EndDate)
	if err != nil {
		return nil, toStatus(FullMethodGetSummaries, err)
	}
	if len(summaries) == 0 {
		return nil, toStatus(FullMethodGetSummaries, errors.NewNotFoundError("No summaries found for the given criteria."))
	}

	out, err := listOf(summaries)
	if err != nil {
		return nil, toStatus(FullMethodGetSummaries, err)
	}
	return out, nil
}
