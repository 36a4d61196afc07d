package forecast

import (
	"time"

	"app/models"
)

const (
	// LookbackDays is the transaction aggregation window ending today.
	LookbackDays = 90
	// BacktestDays is the historical validation window ending yesterday.
	BacktestDays = 60
	// ForecastDays is the forward horizon starting today.
	ForecastDays = 14
	// BaselineDays is the trailing window for the moving average.
	BaselineDays = 30
)

// ReportingDay truncates a timestamp to its calendar date in the
// reporting timezone. Every date key in the pipeline goes through here
// so sales, weather, and window boundaries agree on what "a day" is.
func ReportingDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(models.DateLayout)
}

// StartOfDay returns midnight of t's calendar day in the reporting timezone.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// SalesSeries is a dense, zero-filled daily sales series covering the
// lookback window, built once per run and read-only afterwards.
type SalesSeries struct {
	points []models.DailySalesPoint
	index  map[string]int
}

// BuildDailySeries aggregates raw transactions into one point per
// calendar day over the LookbackDays window ending today, inclusive.
// Every day starts at zero; transactions whose reporting day falls
// outside the window are dropped, and NULL totals contribute nothing.
func BuildDailySeries(txs []models.TransactionRecord, today time.Time, loc *time.Location) *SalesSeries {
	start := StartOfDay(today, loc).AddDate(0, 0, -LookbackDays)

	s := &SalesSeries{
		points: make([]models.DailySalesPoint, 0, LookbackDays+1),
		index:  make(map[string]int, LookbackDays+1),
	}
	for i := 0; i <= LookbackDays; i++ {
		day := start.AddDate(0, 0, i)
		key := ReportingDay(day, loc)
		s.index[key] = len(s.points)
		s.points = append(s.points, models.DailySalesPoint{Date: key})
	}

	for _, tx := range txs {
		if tx.Total == nil {
			continue
		}
		key := ReportingDay(tx.Date, loc)
		idx, ok := s.index[key]
		if !ok {
			continue
		}
		s.points[idx].TotalSales += *tx.Total
	}

	return s
}

// Points returns the ordered daily series.
func (s *SalesSeries) Points() []models.DailySalesPoint {
	return s.points
}

// Actual returns the aggregated total for a date and whether the date
// is inside the series.
func (s *SalesSeries) Actual(date string) (float64, bool) {
	idx, ok := s.index[date]
	if !ok {
		return 0, false
	}
	return s.points[idx].TotalSales, true
}

// AverageBefore returns the mean daily total over the BaselineDays
// calendar days strictly preceding date. When fewer than BaselineDays
// prior days exist in the series it returns 0 instead of a partial
// average; early backtest days underestimate rather than lean on an
// artificially small sample.
func (s *SalesSeries) AverageBefore(date string) float64 {
	idx, ok := s.index[date]
	if !ok || idx < BaselineDays {
		return 0
	}

	var sum float64
	for i := idx - BaselineDays; i < idx; i++ {
		sum += s.points[i].TotalSales
	}
	return sum / BaselineDays
}
