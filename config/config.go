package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
// A more advanced approach might use dependency injection.
type Config struct {
	JWTSecret   string
	DatabaseURL string
	Port        string

	// Open-Meteo style endpoints. The archive endpoint serves historical
	// daily observations, the forecast endpoint serves forward daily data.
	WeatherArchiveURL  string
	WeatherForecastURL string

	// ReportingTimezone is the fixed reference timezone used to truncate
	// sale timestamps to calendar days. All stores report in this zone.
	ReportingTimezone *time.Location

	// CurrencyCode is used when rendering projected revenue insights.
	CurrencyCode string

	// ForecastRefreshInterval controls the warm-cache scheduler.
	ForecastRefreshInterval time.Duration
}

// AppConfig holds the application-wide configuration
var AppConfig Config

// Load reads configuration from the environment with sensible defaults.
func Load() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	AppConfig.DatabaseURL = os.Getenv("DATABASE_URL")
	if AppConfig.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	AppConfig.JWTSecret = os.Getenv("JWT_SECRET")
	if AppConfig.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}

	AppConfig.Port = getenvDefault("PORT", "3000")
	AppConfig.WeatherArchiveURL = getenvDefault("WEATHER_ARCHIVE_URL", "https://archive-api.open-meteo.com/v1/archive")
	AppConfig.WeatherForecastURL = getenvDefault("WEATHER_FORECAST_URL", "https://api.open-meteo.com/v1/forecast")
	AppConfig.CurrencyCode = getenvDefault("CURRENCY_CODE", "MMK")

	tzName := getenvDefault("REPORTING_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return fmt.Errorf("invalid REPORTING_TIMEZONE: %w", err)
	}
	AppConfig.ReportingTimezone = loc

	intervalStr := getenvDefault("FORECAST_REFRESH_INTERVAL", "1h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return fmt.Errorf("invalid FORECAST_REFRESH_INTERVAL: %w", err)
	}
	AppConfig.ForecastRefreshInterval = interval

	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
