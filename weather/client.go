package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"app/models"

	"github.com/sony/gobreaker"
)

// ErrNoForecastData is returned when the forecast endpoint answers
// without a daily payload. Callers surface it to the user verbatim.
var ErrNoForecastData = errors.New("failed to retrieve weather data")

const dailyVariables = "temperature_2m_max,precipitation_sum,weather_code"

// Client talks to an Open-Meteo compatible provider. The archive
// endpoint serves historical daily observations; the forecast endpoint
// serves the forward horizon. Neither requires an API key.
type Client struct {
	archiveURL  string
	forecastURL string
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

// NewClient builds a provider client with retry/backoff and a circuit
// breaker around outbound calls.
func NewClient(httpClient *http.Client, archiveURL, forecastURL string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		archiveURL:  archiveURL,
		forecastURL: forecastURL,
		httpCfg: HTTPClientConfig{
			Client: httpClient,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

// dailyPayload mirrors the provider's parallel-array daily block.
type dailyPayload struct {
	Daily struct {
		Time             []string  `json:"time"`
		Temperature2mMax []float64 `json:"temperature_2m_max"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		WeatherCode      []int     `json:"weather_code"`
	} `json:"daily"`
}

// FetchHistoricalDaily returns one observation per day keyed by date for
// the inclusive range [start, end]. Days the provider has no data for
// are simply absent from the map.
func (c *Client) FetchHistoricalDaily(ctx context.Context, lat, lon float64, start, end time.Time) (map[string]models.WeatherObservation, error) {
	payload, err := c.fetchDaily(ctx, c.archiveURL, lat, lon, func(values url.Values) {
		values.Set("start_date", start.Format(models.DateLayout))
		values.Set("end_date", end.Format(models.DateLayout))
	})
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]models.WeatherObservation, len(payload.Daily.Time))
	for _, obs := range flattenDaily(payload) {
		byDate[obs.Date] = obs
	}
	return byDate, nil
}

// FetchForecastDaily returns the forward daily forecast, one ordered
// observation per day starting today.
func (c *Client) FetchForecastDaily(ctx context.Context, lat, lon float64, days int) ([]models.WeatherObservation, error) {
	payload, err := c.fetchDaily(ctx, c.forecastURL, lat, lon, func(values url.Values) {
		values.Set("forecast_days", strconv.Itoa(days))
	})
	if err != nil {
		return nil, err
	}

	if len(payload.Daily.Time) == 0 {
		return nil, ErrNoForecastData
	}
	return flattenDaily(payload), nil
}

func (c *Client) fetchDaily(ctx context.Context, baseURL string, lat, lon float64, extra func(url.Values)) (*dailyPayload, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("daily", dailyVariables)
		values.Set("timezone", "auto")
		extra(values)

		u := fmt.Sprintf("%s?%s", baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload dailyPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// flattenDaily zips the provider's parallel arrays into observations,
// skipping positions where the arrays are ragged.
func flattenDaily(payload *dailyPayload) []models.WeatherObservation {
	daily := payload.Daily
	out := make([]models.WeatherObservation, 0, len(daily.Time))
	for i, date := range daily.Time {
		if i >= len(daily.Temperature2mMax) || i >= len(daily.PrecipitationSum) || i >= len(daily.WeatherCode) {
			break
		}
		out = append(out, models.WeatherObservation{
			Date:           date,
			MaxTemperature: daily.Temperature2mMax[i],
			Precipitation:  daily.PrecipitationSum[i],
			WeatherCode:    daily.WeatherCode[i],
		})
	}
	return out
}
