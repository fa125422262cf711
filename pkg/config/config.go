package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/errors"
)

const (
	DbTypeFile     = "file"
	DbTypeMemory   = "memory"
	DbTypePostgres = "postgres"
)

type Config struct {
	GoEnv string `envconfig:"GO_ENV" default:"development"`

	DbType string `envconfig:"WEATHER_DB_TYPE" default:"file"`
	DbPath string `envconfig:"WEATHER_DB_PATH" default:"weather.db"`
	DbDSN  string `envconfig:"WEATHER_DB_DSN"`

	HttpHostPort string `envconfig:"WEATHER_HTTP_HOST_PORT" default:":8000"`
	GrpcHostPort string `envconfig:"WEATHER_GRPC_HOST_PORT"`

	DefaultRate  float64 `envconfig:"WEATHER_DEFAULT_RATE" default:"1"`
	DefaultBurst int     `envconfig:"WEATHER_DEFAULT_BURST" default:"5"`

	OpenWeatherMapAPIKey  string `envconfig:"OPENWEATHERMAP_API_KEY"`
	OpenWeatherMapBaseURL string `envconfig:"OPENWEATHERMAP_BASE_URL" default:"https://api.openweathermap.org/data/2.5/weather"`

	PollInterval    time.Duration `envconfig:"WEATHER_POLL_INTERVAL" default:"300s"`
	FetchTimeout    time.Duration `envconfig:"WEATHER_FETCH_TIMEOUT" default:"5s"`
	ShutdownTimeout time.Duration `envconfig:"WEATHER_SHUTDOWN_TIMEOUT" default:"45s"`

	BreakerMaxFailures uint32        `envconfig:"WEATHER_BREAKER_MAX_FAILURES" default:"5"`
	BreakerOpenTimeout time.Duration `envconfig:"WEATHER_BREAKER_OPEN_TIMEOUT" default:"60s"`

	LogDir        string `envconfig:"LOG_DIR" default:"logs"`
	LogMaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"10"`
	LogMaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"5"`
	LogMaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"28"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.NewConfigurationError("failed to read .env file", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.NewConfigurationError("failed to process environment", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DbType {
	case DbTypeFile, DbTypeMemory:
	case DbTypePostgres:
		if c.DbDSN == "" {
			return errors.NewConfigurationError("WEATHER_DB_DSN is required when WEATHER_DB_TYPE=postgres", nil)
		}
	default:
		return errors.NewConfigurationError(fmt.Sprintf("unknown WEATHER_DB_TYPE: %q", c.DbType), nil)
	}

	if c.OpenWeatherMapAPIKey == "" {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_KEY is not set", nil)
	}
	if c.PollInterval <= 0 {
		return errors.NewConfigurationError("WEATHER_POLL_INTERVAL must be positive", nil)
	}
	if c.FetchTimeout <= 0 {
		return errors.NewConfigurationError("WEATHER_FETCH_TIMEOUT must be positive", nil)
	}
	if c.DefaultRate < 0 || c.DefaultBurst < 0 {
		return errors.NewConfigurationError("WEATHER_DEFAULT_RATE and WEATHER_DEFAULT_BURST must not be negative", nil)
	}

	return nil
}

func (c *Config) LoggerOptions() common.LoggerOptions {
	return common.LoggerOptions{
		Dir:        c.LogDir,
		FileName:   "app.log",
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
		Compress:   true,
	}
}
