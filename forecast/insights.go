package forecast

import (
	"fmt"

	"app/models"
	"app/utils"
)

const (
	rainyDayThresholdMM  = 5.0
	hotDayThresholdC     = 33.0
	insightMinFlaggedDay = 3
)

// GenerateInsights derives qualitative flags from the forward weather
// horizon and the forecast points' predicted totals. Warning and
// opportunity insights come first, the revenue summary is always last.
func GenerateInsights(forecastWeather []models.WeatherObservation, points []models.ForecastPoint, currency string) []models.Insight {
	var insights []models.Insight

	rainyDays := 0
	hotDays := 0
	for _, obs := range forecastWeather {
		if obs.Precipitation > rainyDayThresholdMM {
			rainyDays++
		}
		if obs.MaxTemperature > hotDayThresholdC {
			hotDays++
		}
	}

	if rainyDays > insightMinFlaggedDay {
		insights = append(insights, models.Insight{
			Category: models.InsightWarning,
			Message:  fmt.Sprintf("Rain is expected on %d of the next %d days. Consider stocking umbrellas and promoting delivery options.", rainyDays, ForecastDays),
		})
	}

	if hotDays > insightMinFlaggedDay {
		insights = append(insights, models.Insight{
			Category: models.InsightOpportunity,
			Message:  fmt.Sprintf("%d hot days above 33°C are forecast in the next %d days. Stock up on cold beverages and ice cream.", hotDays, ForecastDays),
		})
	}

	var projected float64
	for _, p := range points {
		if p.Kind == models.KindForecast {
			projected += p.PredictedSales
		}
	}
	insights = append(insights, models.Insight{
		Category: models.InsightInfo,
		Message:  fmt.Sprintf("Projected revenue for the next %d days: %s.", ForecastDays, utils.FormatCurrency(currency, projected)),
	})

	return insights
}
