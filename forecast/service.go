package forecast

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"app/models"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoStoreLocation means the shop has no coordinates; the
	// pipeline must not run and the caller should prompt the user to
	// set the store location.
	ErrNoStoreLocation = errors.New("store location is not set")

	// ErrSuperseded means a newer run for the same shop started while
	// this one was in flight; its result has been discarded.
	ErrSuperseded = errors.New("forecast run superseded by a newer request")
)

// TransactionReader lists transactions for a shop in [start, end).
type TransactionReader interface {
	ListTransactions(ctx context.Context, shopID string, start, end time.Time) ([]models.TransactionRecord, error)
}

// StoreReader looks up a shop profile, including coordinates.
type StoreReader interface {
	GetStore(ctx context.Context, shopID string) (*models.Shop, error)
}

// WeatherProvider exposes the two read-only provider capabilities.
type WeatherProvider interface {
	FetchHistoricalDaily(ctx context.Context, lat, lon float64, start, end time.Time) (map[string]models.WeatherObservation, error)
	FetchForecastDaily(ctx context.Context, lat, lon float64, days int) ([]models.WeatherObservation, error)
}

type activeRun struct {
	id     uuid.UUID
	cancel context.CancelFunc
}

// Service orchestrates one forecast run: store lookup, transaction
// fetch, the two weather fetches, then the pure computation. It keeps
// no state between runs beyond the warm cache and the supersession
// bookkeeping.
type Service struct {
	stores   StoreReader
	sales    TransactionReader
	weather  WeatherProvider
	cache    *Cache
	loc      *time.Location
	currency string
	now      func() time.Time

	mu      sync.Mutex
	current map[string]activeRun
}

// NewService wires the collaborators. cache may be nil to disable the
// warm cache; now may be nil to use wall-clock time.
func NewService(stores StoreReader, sales TransactionReader, weather WeatherProvider, cache *Cache, loc *time.Location, currency string, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		stores:   stores,
		sales:    sales,
		weather:  weather,
		cache:    cache,
		loc:      loc,
		currency: currency,
		now:      now,
		current:  make(map[string]activeRun),
	}
}

// begin registers a new run for the shop and cancels any run it
// supersedes. Late results from a superseded run never reach the
// caller or the cache.
func (s *Service) begin(ctx context.Context, shopID string) (uuid.UUID, context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(ctx)
	id := uuid.New()

	s.mu.Lock()
	if prev, ok := s.current[shopID]; ok {
		prev.cancel()
	}
	s.current[shopID] = activeRun{id: id, cancel: cancel}
	s.mu.Unlock()

	return id, runCtx, cancel
}

// stillCurrent reports whether the run is the latest for its shop and,
// when it is, clears the bookkeeping entry.
func (s *Service) stillCurrent(shopID string, id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.current[shopID]
	if !ok || run.id != id {
		return false
	}
	delete(s.current, shopID)
	return true
}

// Run executes the full pipeline for one shop and returns the
// chronological forecast points plus insights.
func (s *Service) Run(ctx context.Context, shopID string) (*models.ForecastResult, error) {
	runID, runCtx, cancel := s.begin(ctx, shopID)
	defer cancel()

	shop, err := s.stores.GetStore(runCtx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop %s: %w", shopID, err)
	}
	if shop.Latitude == nil || shop.Longitude == nil {
		return nil, ErrNoStoreLocation
	}
	lat, lon := *shop.Latitude, *shop.Longitude

	today := StartOfDay(s.now(), s.loc)
	windowStart := today.AddDate(0, 0, -LookbackDays)

	txs, err := s.sales.ListTransactions(runCtx, shopID, windowStart, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	// The two weather fetches are independent; run them together.
	var (
		historical map[string]models.WeatherObservation
		forward    []models.WeatherObservation
	)
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		var err error
		historical, err = s.weather.FetchHistoricalDaily(gctx, lat, lon, today.AddDate(0, 0, -BacktestDays), today.AddDate(0, 0, -1))
		return err
	})
	g.Go(func() error {
		var err error
		forward, err = s.weather.FetchForecastDaily(gctx, lat, lon, ForecastDays)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	series := BuildDailySeries(txs, today, s.loc)
	points := Compute(Input{
		Series:            series,
		HistoricalWeather: historical,
		ForecastWeather:   forward,
		Today:             today,
		Location:          s.loc,
	})

	result := &models.ForecastResult{
		ShopID:          shopID,
		GeneratedAt:     s.now(),
		Points:          points,
		ForecastWeather: forward,
		Insights:        GenerateInsights(forward, points, s.currency),
	}

	if !s.stillCurrent(shopID, runID) {
		log.Printf("forecast: discarding superseded run %s for shop %s", runID, shopID)
		return nil, ErrSuperseded
	}

	if s.cache != nil {
		s.cache.Save(shopID, result)
	}
	return result, nil
}

// Cached returns the latest warm result for a shop, if any.
func (s *Service) Cached(shopID string) (*models.ForecastResult, error) {
	if s.cache == nil {
		return nil, ErrNotCached
	}
	return s.cache.Latest(shopID)
}
