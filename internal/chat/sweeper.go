package chat

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// DefaultSweepInterval is how often idle conversations are evicted
const DefaultSweepInterval = 5 * time.Minute

// Sweeper periodically removes idle conversations from a Store
type Sweeper struct {
	store    Store
	interval time.Duration
	clock    clockwork.Clock
	cancel   context.CancelFunc
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// SweeperOption configures a Sweeper
type SweeperOption func(*Sweeper)

// WithSweepClock drives the sweep ticker from clock
func WithSweepClock(clock clockwork.Clock) SweeperOption {
	return func(s *Sweeper) { s.clock = clock }
}

// NewSweeper creates a sweeper; a non-positive interval uses DefaultSweepInterval
func NewSweeper(store Store, interval time.Duration, opts ...SweeperOption) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	s := &Sweeper{
		store:    store,
		interval: interval,
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the sweep loop. Calling Start on a running sweeper is a no-op.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	sweepCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.run(sweepCtx, s.done)
}

// Stop cancels the loop and waits for it to exit
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	cancel()
	<-done
}

// IsRunning reports whether the sweep loop is active
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Sweep performs a single eviction pass
func (s *Sweeper) Sweep() int {
	start := s.clock.Now()
	removed := s.store.SweepExpired()

	if removed > 0 {
		log.Info().
			Int("removed", removed).
			Int("remaining", s.store.Len()).
			Dur("duration", s.clock.Since(start)).
			Msg("Evicted idle conversations")
	}
	return removed
}

func (s *Sweeper) run(ctx context.Context, done chan struct{}) {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		close(done)
	}()

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", s.interval).Msg("Conversation sweeper started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Conversation sweeper stopping")
			return
		case <-ticker.Chan():
			s.Sweep()
		}
	}
}
