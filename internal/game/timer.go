package game

import (
	"sync"
	"time"
)

// MatchTimer drives the 1 Hz countdown. The callback runs on the timer
// goroutine; the engine serializes it against player and AI actions through
// the state lock. Stop is idempotent and safe to call from inside the
// callback, which is how timer expiry shuts itself down.
type MatchTimer struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// NewMatchTimer starts a timer firing tick at the given interval
func NewMatchTimer(interval time.Duration, tick func()) *MatchTimer {
	t := &MatchTimer{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				tick()
			}
		}
	}()
	return t
}

// Stop cancels the countdown
func (t *MatchTimer) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
