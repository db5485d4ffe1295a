package timer

import (
	"log/slog"
	"sync"
	"time"
)

// Token names the phase a scheduled completion belongs to.
type Token int

const (
	DoorCycle Token = iota
	Travel
)

func (t Token) String() string {
	switch t {
	case DoorCycle:
		return "door-cycle"
	case Travel:
		return "travel"
	}
	return "unknown"
}

// Scheduler fires one-shot timers. Each scheduled token is delivered exactly once on Timeout.
type Scheduler struct {
	timeoutCh chan Token

	mu      sync.Mutex
	pending map[*time.Timer]struct{}
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		timeoutCh: make(chan Token, 2),
		pending:   make(map[*time.Timer]struct{}),
	}
}

func (s *Scheduler) Timeout() <-chan Token {
	return s.timeoutCh
}

// Schedule delivers token on Timeout after d. It never blocks the caller, so it is safe to call
// from the goroutine that drains Timeout.
func (s *Scheduler) Schedule(d time.Duration, token Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.pending, t)
		s.mu.Unlock()
		s.timeoutCh <- token
		slog.Debug("Timer timed out", "token", token)
	})
	s.pending[t] = struct{}{}
}

// Stop cancels every timer that has not fired yet. Used on shutdown only.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for t := range s.pending {
		t.Stop()
		delete(s.pending, t)
	}
}
