package store

import (
	"log"

	"github.com/neuraledu/neural-conquest/internal/models"
)

// Autosaver serializes persistence onto a single goroutine so saves happen
// after, never during, conquest resolution. Snapshots are dropped rather
// than blocking the engine when the writer falls behind; the next snapshot
// supersedes them anyway.
type Autosaver struct {
	db    *DB
	queue chan *models.GameState
	done  chan struct{}
}

// NewAutosaver starts the persistence worker
func NewAutosaver(db *DB) *Autosaver {
	a := &Autosaver{
		db:    db,
		queue: make(chan *models.GameState, 64),
		done:  make(chan struct{}),
	}
	go a.run()
	return a
}

// Enqueue submits a snapshot for persistence without blocking
func (a *Autosaver) Enqueue(snap *models.GameState) {
	select {
	case a.queue <- snap:
	default:
		// writer is behind; skip this snapshot
	}
}

// Stop drains and stops the worker
func (a *Autosaver) Stop() {
	close(a.queue)
	<-a.done
}

func (a *Autosaver) run() {
	defer close(a.done)
	for snap := range a.queue {
		if err := a.db.SaveSession(snap); err != nil {
			log.Printf("autosave: session %s: %v", snap.ID, err)
		}
	}
}
