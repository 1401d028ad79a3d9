package services

import (
	"context"
	"log"
	"time"

	gron "github.com/roylee0704/gron"

	"github.com/SangBejoo/kingston-parking/models"
)

// SensorFeed is anything that can return the latest lotId -> free spots map
type SensorFeed interface {
	Fetch(ctx context.Context) (map[string]int, error)
}

// Scheduler polls a sensor feed on a fixed interval and merges what it gets
// into the catalog. A failed fetch keeps the last known state.
type Scheduler struct {
	graph    *gron.Cron
	feed     SensorFeed
	catalog  *models.Catalog
	interval time.Duration
	onChange func()
	debug    bool
}

func NewScheduler(feed SensorFeed, catalog *models.Catalog, interval time.Duration, onChange func(), debug bool) *Scheduler {
	if onChange == nil {
		onChange = func() {}
	}
	return &Scheduler{
		graph:    gron.New(),
		feed:     feed,
		catalog:  catalog,
		interval: interval,
		onChange: onChange,
		debug:    debug,
	}
}

func (s *Scheduler) debugf(format string, args ...interface{}) {
	if s.debug {
		log.Printf("DEBUG [sensor-poll]: "+format, args...)
	}
}

// PollOnce fetches the feed once and applies every observation
func (s *Scheduler) PollOnce(ctx context.Context) error {
	observations, err := s.feed.Fetch(ctx)
	if err != nil {
		return err
	}
	applied, ignored := s.catalog.ApplySensorBatch(observations)
	if len(ignored) > 0 {
		s.debugf("ignored unknown lots %v", ignored)
	}
	s.debugf("applied %d observations", len(applied))
	if len(applied) > 0 {
		s.onChange()
	}
	return nil
}

func (s *Scheduler) Start() {
	s.graph.Add(gron.Every(s.interval), gron.JobFunc(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.interval)
		defer cancel()
		if err := s.PollOnce(ctx); err != nil {
			log.Printf("sensor-poll: keeping last known state: %v", err)
		}
	}))
	s.graph.Start()
}

func (s *Scheduler) Stop() {
	s.graph.Stop()
}
