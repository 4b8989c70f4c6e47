package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RefreshingLabel is shown once the countdown reaches zero
const RefreshingLabel = "Refreshing…"

// Scheduler owns the refresh timer and the countdown timer of one session.
// Starting either timer replaces its previous instance.
type Scheduler struct {
	interval    time.Duration
	tick        time.Duration
	now         func() time.Time
	onRefresh   func()
	onCountdown func(string)

	mu              sync.Mutex
	wg              sync.WaitGroup
	stopped         bool
	refreshCancel   context.CancelFunc
	countdownCancel context.CancelFunc
	nextRefresh     time.Time
}

// NewScheduler creates a stopped scheduler.
// Callbacks run on scheduler goroutines, never under the scheduler lock.
func NewScheduler(interval time.Duration, onRefresh func(), onCountdown func(string)) *Scheduler {
	return &Scheduler{
		interval:    interval,
		tick:        time.Second,
		now:         time.Now,
		onRefresh:   onRefresh,
		onCountdown: onCountdown,
	}
}

// Interval returns the refresh interval
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// StartAutoRefresh (re)starts the repeating refresh timer
func (s *Scheduler) StartAutoRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if s.refreshCancel != nil {
		s.refreshCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.refreshCancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if ctx.Err() == nil {
					s.onRefresh()
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// RefreshRunning reports whether the refresh timer is active
func (s *Scheduler) RefreshRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshCancel != nil
}

// StartCountdown sets the next refresh to now+interval and (re)starts the countdown display
func (s *Scheduler) StartCountdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if s.countdownCancel != nil {
		s.countdownCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.countdownCancel = cancel
	next := s.now().Add(s.interval)
	s.nextRefresh = next

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.tick)
		defer ticker.Stop()

		s.display(ctx, next)
		for {
			select {
			case <-ticker.C:
				s.display(ctx, next)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *Scheduler) display(ctx context.Context, next time.Time) {
	if ctx.Err() != nil {
		return
	}
	s.onCountdown(CountdownText(next.Sub(s.now())))
}

// StopCountdown stops the countdown display
func (s *Scheduler) StopCountdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.countdownCancel != nil {
		s.countdownCancel()
		s.countdownCancel = nil
	}
}

// CountdownRunning reports whether the countdown display is active
func (s *Scheduler) CountdownRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countdownCancel != nil
}

// NextRefresh returns the countdown reference time; zero before the first start
func (s *Scheduler) NextRefresh() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRefresh
}

// Stop cancels both timers and waits for their goroutines. It must not be
// called from a scheduler callback.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	if s.refreshCancel != nil {
		s.refreshCancel()
		s.refreshCancel = nil
	}
	if s.countdownCancel != nil {
		s.countdownCancel()
		s.countdownCancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// CountdownText renders the remaining time as "{m}m {s}s"
func CountdownText(remaining time.Duration) string {
	if remaining <= 0 {
		return RefreshingLabel
	}
	ms := remaining.Milliseconds()
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
