package db

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"liyu1981.xyz/weather-monitor-service/pkg/common"
	"liyu1981.xyz/weather-monitor-service/pkg/models"
)

// DB is the store handle. It is created once at process start and handed to
// every component that persists something.
type DB struct {
	Conn *gorm.DB
}

// Tables lists every collection the service persists, in migration order.
var Tables = []any{
	&models.Reading{},
	&models.ReadingHistory{},
	&models.DailySummary{},
	&models.AlertThreshold{},
	&models.Notification{},
	&models.WeatherAlert{},
}

func NewInstance(dialector gorm.Dialector) (*DB, error) {
	logger := common.GetLoggerWith(common.LoggerNameDb)

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	instance := &DB{Conn: conn}

	if dialector.Name() == "sqlite" {
		if err := instance.Conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			return nil, fmt.Errorf("failed to set sqlite journal mode: %w", err)
		}
		if err := instance.Conn.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
			return nil, fmt.Errorf("failed to set sqlite busy timeout: %w", err)
		}
	}

	if err := instance.Conn.AutoMigrate(Tables...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed")

	return instance, nil
}

func (d *DB) Close() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func UseSqliteDialector(dbPath string) gorm.Dialector {
	if dbPath == "" {
		dbPath = "weather.db"
	}
	return sqlite.Open(dbPath)
}

// UseMemorySqliteDialector returns a dialector for a fresh in-memory database.
// Every call gets its own database name so callers never share state.
func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

func UsePostgresDialector(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}
