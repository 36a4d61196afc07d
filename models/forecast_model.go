package models

import "time"

// DateLayout is the calendar-day format used as the key for every
// daily series in the forecasting pipeline.
const DateLayout = "2006-01-02"

// DailySalesPoint holds the summed sales total for one calendar day.
type DailySalesPoint struct {
	Date       string  `json:"date"`
	TotalSales float64 `json:"totalSales"`
}

// WeatherObservation is a normalized per-day weather record.
type WeatherObservation struct {
	Date           string  `json:"date"`
	MaxTemperature float64 `json:"maxTemperature"` // degrees Celsius
	Precipitation  float64 `json:"precipitation"`  // millimeters
	WeatherCode    int     `json:"weatherCode"`    // WMO code, lower = clearer
}

// PointKind distinguishes backtested days from forward-looking ones.
type PointKind string

const (
	KindHistorical PointKind = "historical"
	KindForecast   PointKind = "forecast"
)

// ForecastPoint is one day of engine output. Historical points carry
// the known actual alongside the prediction; forecast points carry the
// weather observation used to derive the prediction.
type ForecastPoint struct {
	Date           string              `json:"date"`
	ActualSales    *float64            `json:"actualSales,omitempty"`
	PredictedSales float64             `json:"predictedSales"`
	Kind           PointKind           `json:"kind"`
	Weather        *WeatherObservation `json:"weather,omitempty"`
}

// InsightCategory classifies a generated insight.
type InsightCategory string

const (
	InsightWarning     InsightCategory = "warning"
	InsightOpportunity InsightCategory = "opportunity"
	InsightInfo        InsightCategory = "info"
)

// Insight is a human-readable qualitative flag derived from the
// 14-day forecast.
type Insight struct {
	Category InsightCategory `json:"category"`
	Message  string          `json:"message"`
}

// ForecastResult is the complete output of one forecast run.
type ForecastResult struct {
	ShopID          string               `json:"shopId"`
	GeneratedAt     time.Time            `json:"generatedAt"`
	Points          []ForecastPoint      `json:"points"`
	ForecastWeather []WeatherObservation `json:"forecastWeather"`
	Insights        []Insight            `json:"insights"`
}

// AiAnalysis contains the qualitative commentary from the Gemini model.
type AiAnalysis struct {
	Summary         string   `json:"summary"`
	PositiveFactors []string `json:"positive_factors"`
	NegativeFactors []string `json:"negative_factors"`
}
