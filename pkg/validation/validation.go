// Package validation holds the explicit checks run on user supplied input at
// the query surfaces and again when thresholds are written.
package validation

import (
	"fmt"
	"strings"
	"time"

	z "github.com/Oudwins/zog"
	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/errors"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	minTemperature = -100
	maxTemperature = 100
)

var (
	citySchema        = z.String().Min(1).Max(100).Required()
	conditionSchema   = z.String().Min(1).Max(50).Required()
	temperatureSchema = z.Float64().GTE(minTemperature).LTE(maxTemperature)
	limitSchema       = z.Int().GTE(1).LTE(MaxLimit).Required()
	offsetSchema      = z.Int().GTE(0)
)

func cityNames() string {
	return strings.Join(common.Mapper(models.Cities, func(c models.City) string { return string(c) }), ", ")
}

func ValidateCity(city string) (models.City, error) {
	if issues := citySchema.Validate(&city); len(issues) > 0 {
		return "", errors.NewValidationError("city must be a non-empty name of at most 100 characters")
	}

	c := models.City(city)
	if !c.Valid() {
		return "", errors.NewValidationError(fmt.Sprintf("City must be one of [%s]", cityNames()))
	}
	return c, nil
}

func validateTemperature(name string, value *float64) error {
	if value == nil {
		return nil
	}
	if issues := temperatureSchema.Validate(value); len(issues) > 0 {
		return errors.NewValidationError(fmt.Sprintf("%s must be between %d and %d", name, minTemperature, maxTemperature))
	}
	return nil
}

func ValidateAlertThreshold(threshold *models.AlertThreshold) error {
	if threshold == nil {
		return errors.NewValidationError("alert threshold is required")
	}

	if _, err := ValidateCity(string(threshold.City)); err != nil {
		return err
	}
	if err := validateTemperature("max_temp", threshold.MaxTemp); err != nil {
		return err
	}
	if err := validateTemperature("min_temp", threshold.MinTemp); err != nil {
		return err
	}

	if threshold.WeatherCondition != nil {
		condition := *threshold.WeatherCondition
		if issues := conditionSchema.Validate(&condition); len(issues) > 0 {
			return errors.NewValidationError("weather_condition must be between 1 and 50 characters")
		}
	}

	if threshold.MaxTemp != nil && threshold.MinTemp != nil && *threshold.MaxTemp <= *threshold.MinTemp {
		return errors.NewValidationError("max_temp must be greater than min_temp")
	}

	return nil
}

func ValidatePagination(limit, offset int) error {
	if issues := limitSchema.Validate(&limit); len(issues) > 0 {
		return errors.NewValidationError(fmt.Sprintf("limit must be between 1 and %d", MaxLimit))
	}
	if issues := offsetSchema.Validate(&offset); len(issues) > 0 {
		return errors.NewValidationError("offset must be greater than or equal to 0")
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD day. An empty string yields the zero time.
func ParseDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(common.DateLayout, value)
	if err != nil {
		return time.Time{}, errors.NewValidationError(fmt.Sprintf("%s must be formatted as YYYY-MM-DD", name))
	}
	return t, nil
}

// ParseTimestamp accepts RFC3339 or a bare YYYY-MM-DD day (midnight UTC).
func ParseTimestamp(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(common.DateLayout, value); err == nil {
		return &t, nil
	}
	return nil, errors.NewValidationError(fmt.Sprintf("%s must be an RFC3339 timestamp or YYYY-MM-DD", name))
}

func ValidateTimeRange(start, end *time.Time) error {
	if start != nil && end != nil && !end.After(*start) {
		return errors.NewValidationError("end_date must be after start_date")
	}
	return nil
}
