package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// IdleEvicter drops conversations last active before a cutoff and reports how many went.
type IdleEvicter interface {
	EvictIdle(cutoff time.Time) int
}

// SessionCleanupWorker removes idle chat sessions from the in-memory store periodically.
type SessionCleanupWorker struct {
	store    IdleEvicter
	idleTTL  time.Duration
	interval time.Duration
	now      func() time.Time
}

// NewSessionCleanupWorker constructs a SessionCleanupWorker.
func NewSessionCleanupWorker(
	store IdleEvicter,
	idleTTL time.Duration,
	interval time.Duration,
) *SessionCleanupWorker {
	return &SessionCleanupWorker{
		store:    store,
		idleTTL:  idleTTL,
		interval: interval,
		now:      time.Now,
	}
}

// Start begins the periodic cleanup loop until context is canceled.
func (w *SessionCleanupWorker) Start(ctx context.Context) {
	log.Info().
		Dur("interval", w.interval).
		Dur("idle_ttl", w.idleTTL).
		Msg("Starting session cleanup worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run()
		case <-ctx.Done():
			log.Info().Msg("Session cleanup worker stopped")
			return
		}
	}
}

func (w *SessionCleanupWorker) run() int {
	evicted := w.store.EvictIdle(w.now().Add(-w.idleTTL))
	if evicted > 0 {
		log.Info().Int("count", evicted).Msg("Evicted idle sessions")
	}
	return evicted
}
