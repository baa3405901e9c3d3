package jobs

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
)

const SweepInterval = 5 * time.Minute

// Sweepable drops state that expired before now and reports how much went.
type Sweepable interface {
	Sweep(now time.Time) int
}

// Sweeper periodically clears expired in-memory state: remembered form
// submissions and revoked session tokens.
type Sweeper struct {
	name     string
	target   Sweepable
	interval time.Duration
	now      func() time.Time
}

func NewSweeper(name string, target Sweepable, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = SweepInterval
	}
	return &Sweeper{name: name, target: target, interval: interval, now: time.Now}
}

// Start blocks until ctx is done.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Infof("%s sweeper started", s.name)

	for {
		select {
		case <-ctx.Done():
			log.Infof("Stopping %s sweeper...", s.name)
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() int {
	n := s.target.Sweep(s.now())
	if n > 0 {
		log.Debugf("Sweeper: dropped %d expired %s entries", n, s.name)
	}
	return n
}
