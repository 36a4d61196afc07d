package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const archivePayload = `{
	"daily": {
		"time": ["2024-03-01", "2024-03-02"],
		"temperature_2m_max": [31.5, 33.2],
		"precipitation_sum": [0.0, 7.4],
		"weather_code": [2, 63]
	}
}`

const forecastPayload = `{
	"daily": {
		"time": ["2024-03-06", "2024-03-07", "2024-03-08"],
		"temperature_2m_max": [30.1, 34.0, 29.5],
		"precipitation_sum": [1.2, 0.0, 12.8],
		"weather_code": [3, 0, 65]
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.Client(), server.URL+"/archive", server.URL+"/forecast")
}

func TestFetchHistoricalDaily_ParsesParallelArrays(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/archive", r.URL.Path)
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2024-03-02", r.URL.Query().Get("end_date"))
		w.Write([]byte(archivePayload))
	})

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	byDate, err := client.FetchHistoricalDaily(context.Background(), 16.84, 96.17, start, end)
	require.NoError(t, err)
	require.Len(t, byDate, 2)

	obs := byDate["2024-03-02"]
	assert.Equal(t, 33.2, obs.MaxTemperature)
	assert.Equal(t, 7.4, obs.Precipitation)
	assert.Equal(t, 63, obs.WeatherCode)
}

func TestFetchHistoricalDaily_EmptyPayloadIsTolerated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	byDate, err := client.FetchHistoricalDaily(context.Background(), 16.84, 96.17, start, start)
	require.NoError(t, err)
	assert.Empty(t, byDate)
}

func TestFetchForecastDaily_ReturnsOrderedObservations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("forecast_days"))
		w.Write([]byte(forecastPayload))
	})

	obs, err := client.FetchForecastDaily(context.Background(), 16.84, 96.17, 3)
	require.NoError(t, err)
	require.Len(t, obs, 3)

	assert.Equal(t, "2024-03-06", obs[0].Date)
	assert.Equal(t, "2024-03-08", obs[2].Date)
	assert.Equal(t, 12.8, obs[2].Precipitation)
	assert.Equal(t, 65, obs[2].WeatherCode)
}

func TestFetchForecastDaily_MissingDailyPayloadFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	obs, err := client.FetchForecastDaily(context.Background(), 16.84, 96.17, 14)
	assert.Nil(t, obs)
	assert.ErrorIs(t, err, ErrNoForecastData)
}

func TestFetchForecastDaily_RaggedArraysAreTruncated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"daily": {
				"time": ["2024-03-06", "2024-03-07"],
				"temperature_2m_max": [30.1],
				"precipitation_sum": [1.2],
				"weather_code": [3]
			}
		}`))
	})

	obs, err := client.FetchForecastDaily(context.Background(), 16.84, 96.17, 2)
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, "2024-03-06", obs[0].Date)
}
