package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type City string

const (
	CityDelhi     City = "Delhi"
	CityMumbai    City = "Mumbai"
	CityChennai   City = "Chennai"
	CityBangalore City = "Bangalore"
	CityKolkata   City = "Kolkata"
	CityHyderabad City = "Hyderabad"
)

// Cities is the fixed set of monitored cities, in processing order.
var Cities = []City{
	CityDelhi,
	CityMumbai,
	CityChennai,
	CityBangalore,
	CityKolkata,
	CityHyderabad,
}

func (c City) Valid() bool {
	for _, city := range Cities {
		if c == city {
			return true
		}
	}
	return false
}

// Reading is the latest observation for a city. One row per city.
type Reading struct {
	City        City      `gorm:"primaryKey;type:varchar(32)" json:"city"`
	Condition   string    `gorm:"type:varchar(50)" json:"main"`
	Temperature float64   `json:"temp"`
	FeelsLike   float64   `json:"feels_like"`
	Timestamp   time.Time `json:"timestamp"`
}

func (Reading) TableName() string { return "latest_weather" }

type ReadingHistory struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	City        City      `gorm:"index:idx_history_city_ts;type:varchar(32)" json:"city"`
	Condition   string    `gorm:"type:varchar(50)" json:"main"`
	Temperature float64   `json:"temp"`
	FeelsLike   float64   `json:"feels_like"`
	Timestamp   time.Time `gorm:"index:idx_history_city_ts" json:"timestamp"`
}

func (ReadingHistory) TableName() string { return "weather_history" }

func HistoryFromReading(r Reading) ReadingHistory {
	return ReadingHistory{
		City:        r.City,
		Condition:   r.Condition,
		Temperature: r.Temperature,
		FeelsLike:   r.FeelsLike,
		Timestamp:   r.Timestamp,
	}
}

func (h ReadingHistory) Reading() Reading {
	return Reading{
		City:        h.City,
		Condition:   h.Condition,
		Temperature: h.Temperature,
		FeelsLike:   h.FeelsLike,
		Timestamp:   h.Timestamp,
	}
}

type DailySummary struct {
	Date              string  `gorm:"primaryKey;type:varchar(10)" json:"date"`
	City              City    `gorm:"primaryKey;type:varchar(32)" json:"city"`
	AvgTemp           float64 `json:"avg_temp"`
	MaxTemp           float64 `json:"max_temp"`
	MinTemp           float64 `json:"min_temp"`
	DominantCondition string  `gorm:"type:varchar(50)" json:"dominant_condition"`
	TotalEntries      int     `json:"total_entries"`
}

type AlertThreshold struct {
	City             City     `gorm:"primaryKey;type:varchar(32);check:city IN ('Delhi','Mumbai','Chennai','Bangalore','Kolkata','Hyderabad')" json:"city"`
	MaxTemp          *float64 `json:"max_temp,omitempty"`
	MinTemp          *float64 `json:"min_temp,omitempty"`
	WeatherCondition *string  `gorm:"type:varchar(50)" json:"weather_condition,omitempty"`
}

type Notification struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	City        City      `gorm:"index;type:varchar(32)" json:"city"`
	Message     string    `gorm:"type:varchar(500)" json:"message"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`
	WeatherData Reading   `gorm:"serializer:json" json:"weather_data"`
}

// BeforeCreate assigns the id, the store owns id generation.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// WeatherAlert is the read-side projection of a fired evaluation.
type WeatherAlert struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	City      City      `gorm:"uniqueIndex:idx_alert_city_ts;type:varchar(32)" json:"city"`
	Alerts    []string  `gorm:"serializer:json" json:"alerts"`
	Timestamp time.Time `gorm:"uniqueIndex:idx_alert_city_ts" json:"timestamp"`
}

// NotificationFilter selects a page of notifications, newest first.
type NotificationFilter struct {
	City   City
	Limit  int
	Offset int
}
