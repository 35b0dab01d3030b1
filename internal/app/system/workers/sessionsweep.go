// internal/app/system/workers/sessionsweep.go
package workers

import (
	"sync"
	"time"

	sessionstore "github.com/dalemusser/matpredict/internal/app/store/sessions"
	"go.uber.org/zap"
)

// SessionSweeper is a background worker that drops idle visitor sessions.
type SessionSweeper struct {
	sessions *sessionstore.Store
	log      *zap.Logger
	interval time.Duration
	idleTTL  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSessionSweeper creates a sweeper that runs every interval and removes
// sessions idle for longer than idleTTL.
func NewSessionSweeper(store *sessionstore.Store, logger *zap.Logger, interval, idleTTL time.Duration) *SessionSweeper {
	return &SessionSweeper{
		sessions: store,
		log:      logger,
		interval: interval,
		idleTTL:  idleTTL,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background loop.
func (w *SessionSweeper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("session sweeper started",
		zap.Duration("interval", w.interval),
		zap.Duration("idle_ttl", w.idleTTL))
}

// Stop signals the worker to stop and waits for it to finish. Safe to call
// more than once.
func (w *SessionSweeper) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("session sweeper stopped")
	})
}

func (w *SessionSweeper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep runs one pass immediately.
func (w *SessionSweeper) Sweep() int {
	n := w.sessions.CloseInactive(w.idleTTL)
	if n > 0 {
		w.log.Info("closed idle visitor sessions",
			zap.Int("count", n),
			zap.Int("remaining", w.sessions.Count()))
	}
	return n
}
