package cleanup

import (
	"log"
	"time"

	"github.com/iamasit07/connect-four/internal/service/game"
)

type Worker struct {
	SessionManager *game.SessionManager
	interval       time.Duration
	stop           chan struct{}
}

func NewWorker(sm *game.SessionManager, interval time.Duration) *Worker {
	return &Worker{SessionManager: sm, interval: interval, stop: make(chan struct{})}
}

// Start initiates the background ticker
func (w *Worker) Start() {
	go w.runCleanup()

	ticker := time.NewTicker(w.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.runCleanup()
			case <-w.stop:
				return
			}
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

func (w *Worker) Stop() {
	close(w.stop)
}

func (w *Worker) runCleanup() int {
	log.Println("[CLEANUP] Starting scheduled cleanup task...")
	return w.SessionManager.CleanupOldSessions(time.Now())
}
