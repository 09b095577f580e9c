package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

const (
	// DefaultSweepInterval is used when no interval is configured
	DefaultSweepInterval = 10 * time.Minute
)

// RevokedPurger drops revoked-token entries whose token has expired.
// The Redis backend expires them by TTL and does not need one.
type RevokedPurger interface {
	PurgeRevoked(now time.Time) int
}

// ViewPruner drops idle per-user views.
type ViewPruner interface {
	Prune(now time.Time) int
}

// Sweeper periodically removes state that outlived its use
type Sweeper struct {
	revoked  RevokedPurger // optional
	views    ViewPruner    // optional
	logger   logger.Logger
	interval time.Duration
	now      func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// NewSweeper creates a new sweeper. Either target may be nil.
func NewSweeper(revoked RevokedPurger, views ViewPruner, log logger.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	return &Sweeper{
		revoked:  revoked,
		views:    views,
		logger:   log,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs one sweep, then sweeps every interval until Stop or ctx is done
func (s *Sweeper) Start(ctx context.Context) {
	s.Sweep()

	ticker := time.NewTicker(s.interval)
	go func() {
		defer close(s.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the sweeper and waits for the loop to exit. Only valid after Start.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	<-s.done
}

// Sweep runs one pass and returns how many entries were removed
func (s *Sweeper) Sweep() (revoked, views int) {
	now := s.now()

	if s.revoked != nil {
		revoked = s.revoked.PurgeRevoked(now)
	}
	if s.views != nil {
		views = s.views.Prune(now)
	}

	if revoked+views > 0 {
		s.logger.Info("sweep completed",
			logger.Int("revoked_tokens_purged", revoked),
			logger.Int("views_pruned", views))
	} else {
		s.logger.Debug("nothing to sweep")
	}

	return revoked, views
}
