package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"app/forecast"

	"github.com/go-co-op/gocron"
)

// ShopLister enumerates the shops worth refreshing.
type ShopLister interface {
	ListForecastableShopIDs(ctx context.Context) ([]string, error)
}

// Scheduler periodically recomputes forecasts so dashboards read a
// warm cache instead of paying for a full pipeline run.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *forecast.Service
	shops     ShopLister
	interval  time.Duration
}

// New creates a new Scheduler.
func New(shops ShopLister, interval time.Duration, service *forecast.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		shops:     shops,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running forecast refresh job")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		ids, err := s.shops.ListForecastableShopIDs(ctx)
		if err != nil {
			log.Printf("scheduler: failed to list shops: %v", err)
			return
		}

		for _, id := range ids {
			if _, err := s.service.Run(ctx, id); err != nil {
				// A user-triggered run may have superseded ours; that is fine.
				if errors.Is(err, forecast.ErrSuperseded) {
					continue
				}
				log.Printf("scheduler: forecast refresh failed for shop %s: %v", id, err)
			}
		}
		log.Printf("scheduler: refreshed forecasts for %d shops", len(ids))
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
