package forecast

import (
	"math"
	"time"

	"app/models"
)

// Input carries everything the pure computation needs for one run.
type Input struct {
	Series            *SalesSeries
	HistoricalWeather map[string]models.WeatherObservation
	ForecastWeather   []models.WeatherObservation
	Today             time.Time
	Location          *time.Location
}

// weatherMultiplier maps one day's weather to a demand scalar. The
// branches are mutually exclusive; heavy rain wins over everything.
func weatherMultiplier(obs *models.WeatherObservation) float64 {
	if obs == nil {
		return 1.0
	}
	switch {
	case obs.Precipitation > 5:
		return 0.8
	case obs.MaxTemperature > 32:
		return 1.1
	case obs.WeatherCode <= 3:
		return 1.05
	}
	return 1.0
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// predict applies the weather and weekend adjustments to a baseline and
// rounds to a whole currency unit.
func predict(baseline float64, obs *models.WeatherObservation, weekday time.Weekday) float64 {
	multiplier := weatherMultiplier(obs)
	if isWeekend(weekday) {
		multiplier *= 1.2
	}
	return math.Round(baseline * multiplier)
}

// Compute runs the backtest over the BacktestDays preceding today and
// projects the ForecastDays horizon starting today, returning one
// chronological sequence: historical points first, then forecast points.
//
// Backtest days recompute the trailing baseline per day. Forecast days
// share a single baseline fixed at today; the horizon has no actuals to
// roll the average forward with.
func Compute(in Input) []models.ForecastPoint {
	today := StartOfDay(in.Today, in.Location)
	points := make([]models.ForecastPoint, 0, BacktestDays+ForecastDays)

	for i := BacktestDays; i >= 1; i-- {
		day := today.AddDate(0, 0, -i)
		key := ReportingDay(day, in.Location)

		baseline := in.Series.AverageBefore(key)
		var obs *models.WeatherObservation
		if o, ok := in.HistoricalWeather[key]; ok {
			o := o
			obs = &o
		}

		point := models.ForecastPoint{
			Date:           key,
			PredictedSales: predict(baseline, obs, day.Weekday()),
			Kind:           models.KindHistorical,
		}
		if actual, ok := in.Series.Actual(key); ok {
			actual := actual
			point.ActualSales = &actual
		}
		points = append(points, point)
	}

	forecastByDate := make(map[string]models.WeatherObservation, len(in.ForecastWeather))
	for _, o := range in.ForecastWeather {
		forecastByDate[o.Date] = o
	}

	// Fixed once for the whole horizon, not re-derived per day.
	baseline := in.Series.AverageBefore(ReportingDay(today, in.Location))

	for i := 0; i < ForecastDays; i++ {
		day := today.AddDate(0, 0, i)
		key := ReportingDay(day, in.Location)

		var obs *models.WeatherObservation
		if o, ok := forecastByDate[key]; ok {
			o := o
			obs = &o
		}

		points = append(points, models.ForecastPoint{
			Date:           key,
			PredictedSales: predict(baseline, obs, day.Weekday()),
			Kind:           models.KindForecast,
			Weather:        obs,
		})
	}

	return points
}
