package game

import (
	"context"
	"log"
	"sync"

	"github.com/iamasit07/connect-four/internal/domain"
)

// snapshotWriter serializes one session's writes to the SnapshotStore.
// Only the newest pending snapshot is written, and nothing is written after
// the delete.
type snapshotWriter struct {
	store  SnapshotStore
	gameID string

	mu      sync.Mutex
	pending *domain.Snapshot
	removed bool
	deleted bool
	running bool
}

func newSnapshotWriter(store SnapshotStore, gameID string) *snapshotWriter {
	return &snapshotWriter{store: store, gameID: gameID}
}

func (w *snapshotWriter) publish(snap domain.Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.removed {
		return
	}
	w.pending = &snap
	w.startLocked()
}

// remove drops any pending snapshot and deletes the stored one once the
// write in flight, if any, has finished.
func (w *snapshotWriter) remove() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.removed {
		return
	}
	w.removed = true
	w.pending = nil
	w.startLocked()
}

func (w *snapshotWriter) startLocked() {
	if w.running {
		return
	}
	w.running = true
	go w.run()
}

func (w *snapshotWriter) run() {
	for {
		w.mu.Lock()
		snap := w.pending
		w.pending = nil
		deleting := snap == nil && w.removed && !w.deleted
		if snap == nil && !deleting {
			w.running = false
			w.mu.Unlock()
			return
		}
		if deleting {
			w.deleted = true
		}
		w.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		if deleting {
			if err := w.store.DeleteSnapshot(ctx, w.gameID); err != nil {
				log.Printf("[SESSION] Failed to delete snapshot %s: %v", w.gameID, err)
			}
		} else if err := w.store.SaveSnapshot(ctx, *snap); err != nil {
			log.Printf("[SESSION] Failed to publish snapshot %s: %v", w.gameID, err)
		}
		cancel()
	}
}
