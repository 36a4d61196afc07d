package forecast

import (
	"encoding/json"
	"testing"
	"time"

	"app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-06 is a Wednesday; 2024-03-09 a Saturday, 2024-03-10 a Sunday.
var engineToday = time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)

func steadySeries(t *testing.T, daily float64) *SalesSeries {
	t.Helper()
	var txs []models.TransactionRecord
	for i := 0; i <= LookbackDays; i++ {
		v := daily
		txs = append(txs, models.TransactionRecord{
			Date:  engineToday.AddDate(0, 0, -i),
			Total: &v,
		})
	}
	return BuildDailySeries(txs, engineToday, time.UTC)
}

func TestWeatherMultiplier_Precedence(t *testing.T) {
	cases := []struct {
		name string
		obs  *models.WeatherObservation
		want float64
	}{
		{"nil observation", nil, 1.0},
		{"heavy rain", &models.WeatherObservation{Precipitation: 6}, 0.8},
		{"rain beats heat and clear sky", &models.WeatherObservation{Precipitation: 8, MaxTemperature: 35, WeatherCode: 0}, 0.8},
		{"hot day", &models.WeatherObservation{MaxTemperature: 33, WeatherCode: 50}, 1.1},
		{"heat beats clear sky", &models.WeatherObservation{MaxTemperature: 34, WeatherCode: 1}, 1.1},
		{"clear sky", &models.WeatherObservation{MaxTemperature: 25, WeatherCode: 3}, 1.05},
		{"overcast neutral", &models.WeatherObservation{MaxTemperature: 25, WeatherCode: 45}, 1.0},
		{"boundary precipitation is not rain", &models.WeatherObservation{Precipitation: 5, WeatherCode: 45}, 1.0},
		{"boundary temperature is not hot", &models.WeatherObservation{MaxTemperature: 32, WeatherCode: 45}, 1.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, weatherMultiplier(tc.obs))
		})
	}
}

func TestPredict_WeekendCompounding(t *testing.T) {
	// Neutral weather on a Saturday: 1.0 × 1.2.
	obs := &models.WeatherObservation{MaxTemperature: 25, WeatherCode: 45}
	assert.Equal(t, 1200.0, predict(1000, obs, time.Saturday))

	// Rainy weekend day: 0.8 × 1.2 = 0.96.
	rainy := &models.WeatherObservation{Precipitation: 8}
	assert.Equal(t, 960.0, predict(1000, rainy, time.Sunday))

	// Missing weather still gets the weekend adjustment.
	assert.Equal(t, 1200.0, predict(1000, nil, time.Saturday))
}

func TestCompute_WindowSizesAndOrdering(t *testing.T) {
	series := steadySeries(t, 100000)

	points := Compute(Input{
		Series:   series,
		Today:    engineToday,
		Location: time.UTC,
	})

	require.Len(t, points, BacktestDays+ForecastDays)

	historical := points[:BacktestDays]
	forward := points[BacktestDays:]

	for i, p := range historical {
		assert.Equal(t, models.KindHistorical, p.Kind)
		require.NotNil(t, p.ActualSales, "backtest point %s must carry the actual", p.Date)
		if i > 0 {
			assert.Less(t, historical[i-1].Date, p.Date)
		}
	}

	assert.Equal(t, "2024-03-06", forward[0].Date)
	assert.Equal(t, "2024-03-19", forward[len(forward)-1].Date)
	for i, p := range forward {
		assert.Equal(t, models.KindForecast, p.Kind)
		assert.Nil(t, p.ActualSales)
		if i > 0 {
			assert.Less(t, forward[i-1].Date, p.Date)
		}
	}

	// Backtest ends the day before the forecast starts.
	assert.Equal(t, "2024-03-05", historical[len(historical)-1].Date)
}

func TestCompute_ForecastWithoutWeather(t *testing.T) {
	series := steadySeries(t, 100000)

	points := Compute(Input{
		Series:   series,
		Today:    engineToday,
		Location: time.UTC,
	})
	forward := points[BacktestDays:]

	// Thursday 2024-03-07: neutral multiplier.
	assert.Equal(t, 100000.0, forward[1].PredictedSales)
	// Saturday 2024-03-09: weekend only.
	assert.Equal(t, 120000.0, forward[3].PredictedSales)
}

func TestCompute_RainyTuesdayScalesBaselineDown(t *testing.T) {
	series := steadySeries(t, 100000)

	// 2024-03-12 is a Tuesday.
	points := Compute(Input{
		Series: series,
		ForecastWeather: []models.WeatherObservation{
			{Date: "2024-03-12", Precipitation: 8, MaxTemperature: 28, WeatherCode: 61},
		},
		Today:    engineToday,
		Location: time.UTC,
	})
	forward := points[BacktestDays:]

	assert.Equal(t, 80000.0, forward[6].PredictedSales)
	require.NotNil(t, forward[6].Weather)
	assert.Equal(t, 8.0, forward[6].Weather.Precipitation)
}

func TestCompute_BacktestBaselinePerDayForecastBaselineFixed(t *testing.T) {
	// Sales double halfway through the window, so the trailing average
	// moves across backtest days while the forecast horizon pins the
	// baseline at today's value.
	var txs []models.TransactionRecord
	for i := 0; i <= LookbackDays; i++ {
		v := 1000.0
		if i <= 30 {
			v = 2000.0
		}
		txs = append(txs, models.TransactionRecord{
			Date:  engineToday.AddDate(0, 0, -i),
			Total: &v,
		})
	}
	series := BuildDailySeries(txs, engineToday, time.UTC)

	points := Compute(Input{Series: series, Today: engineToday, Location: time.UTC})
	historical := points[:BacktestDays]
	forward := points[BacktestDays:]

	// Early backtest days average the older 1000/day period; late days the
	// 2000/day period leaks in.
	first := historical[0]
	last := historical[len(historical)-1]
	assert.NotEqual(t, first.PredictedSales, last.PredictedSales)

	// All weekday forecast points share the fixed baseline of 2000.
	assert.Equal(t, 2000.0, forward[1].PredictedSales) // Thursday
	assert.Equal(t, 2000.0, forward[6].PredictedSales) // Tuesday
}

func TestCompute_HistoricalWeatherGapsAreNeutral(t *testing.T) {
	series := steadySeries(t, 50000)

	// Only one historical day has weather; the rest fall back to 1.0.
	points := Compute(Input{
		Series: series,
		HistoricalWeather: map[string]models.WeatherObservation{
			"2024-03-04": {Date: "2024-03-04", Precipitation: 10}, // Monday
		},
		Today:    engineToday,
		Location: time.UTC,
	})
	historical := points[:BacktestDays]

	byDate := make(map[string]models.ForecastPoint)
	for _, p := range historical {
		byDate[p.Date] = p
	}

	assert.Equal(t, 40000.0, byDate["2024-03-04"].PredictedSales) // 0.8 applied
	assert.Equal(t, 50000.0, byDate["2024-03-05"].PredictedSales) // Tuesday, no weather
}

func TestCompute_Idempotent(t *testing.T) {
	series := steadySeries(t, 73500)
	in := Input{
		Series: series,
		ForecastWeather: []models.WeatherObservation{
			{Date: "2024-03-06", MaxTemperature: 34, WeatherCode: 2},
			{Date: "2024-03-07", Precipitation: 12, WeatherCode: 63},
		},
		Today:    engineToday,
		Location: time.UTC,
	}

	first := Compute(in)
	second := Compute(in)
	require.Equal(t, first, second)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompute_PredictionsNeverNegative(t *testing.T) {
	series := steadySeries(t, 0)

	points := Compute(Input{Series: series, Today: engineToday, Location: time.UTC})
	for _, p := range points {
		assert.GreaterOrEqual(t, p.PredictedSales, 0.0)
	}
}
