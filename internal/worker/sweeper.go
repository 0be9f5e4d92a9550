package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/onboarding/internal/metrics"
)

// Sweep kinds reported to metrics.
const (
	KindDocuments = "documents"
	KindSessions  = "sessions"
)

// SweepFacade exposes the purge operations required by the sweeper.
type SweepFacade interface {
	PurgeDocuments(before time.Time) int
	PurgeSessions(ctx context.Context, before time.Time) (int64, error)
}

// Sweeper periodically drops documents and sessions idle for longer than
// the session TTL.
type Sweeper struct {
	facade   SweepFacade
	interval time.Duration
	ttl      time.Duration
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSweeper constructs Sweeper.
func NewSweeper(facade SweepFacade, interval, ttl time.Duration, m *metrics.Metrics, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		facade:   facade,
		interval: interval,
		ttl:      ttl,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Start launches background sweeping.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(runCtx)
}

// Stop waits for the running sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Sweeper) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep purges everything untouched since now minus the TTL.
func (s *Sweeper) Sweep(ctx context.Context) {
	cutoff := s.now().Add(-s.ttl)

	docs := s.facade.PurgeDocuments(cutoff)
	s.metrics.Swept(KindDocuments, int64(docs))

	sessions, err := s.facade.PurgeSessions(ctx, cutoff)
	if err != nil {
		s.logger.Error("purge sessions failed", slog.String("error", err.Error()))
		return
	}
	s.metrics.Swept(KindSessions, sessions)

	if docs > 0 || sessions > 0 {
		s.logger.Info("expired state swept", slog.Int("documents", docs), slog.Int64("sessions", sessions))
	}
}
