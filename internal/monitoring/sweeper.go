package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/campuspulse/campuspulse-be/internal/metrics"
	"github.com/campuspulse/campuspulse-be/internal/services"
)

// Sweeper removes events whose delete_at instant has passed. The core
// services only compute and store the instant; this loop is the
// storage-side TTL collaborator that honors it.
type Sweeper struct {
	eventSvc  services.EventServiceProvider
	collector *metrics.Collector
	schedule  cron.Schedule
	done      chan bool
}

// NewSweeper creates a sweeper from a standard cron expression
// (descriptors like "@every 15m" work too).
func NewSweeper(eventSvc services.EventServiceProvider, collector *metrics.Collector, scheduleExpr string) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(scheduleExpr)
	if err != nil {
		return nil, err
	}
	return &Sweeper{
		eventSvc:  eventSvc,
		collector: collector,
		schedule:  schedule,
		done:      make(chan bool),
	}, nil
}

// Run starts the sweep loop. Call in a goroutine.
func (s *Sweeper) Run() {
	log.Info().Msg("Starting expired-event sweeper")

	// Run once immediately on start
	s.sweep()

	for {
		next := s.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-s.done:
			timer.Stop()
			log.Info().Msg("Stopping expired-event sweeper")
			return
		case <-timer.C:
			s.sweep()
		}
	}
}

// Stop halts the sweeper.
func (s *Sweeper) Stop() {
	s.done <- true
}

func (s *Sweeper) sweep() {
	n, err := s.eventSvc.DeleteExpired(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Sweeper: failed to delete expired events")
		return
	}
	if n > 0 {
		log.Info().Int64("count", n).Msg("Sweeper: removed expired events")
		if s.collector != nil {
			s.collector.RecordSwept(n)
		}
	}
}
