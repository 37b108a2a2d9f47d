package app

import (
	"sync"
	"time"
)

// Ticker is the subset of time.Ticker the countdown needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type stdTicker struct {
	t *time.Ticker
}

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

// NewStdTicker wraps time.NewTicker.
func NewStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

// Timer counts down from a fixed number of seconds, one tick per second.
// At most one countdown is active; Start always cancels the previous one.
type Timer struct {
	limit     int
	interval  time.Duration
	newTicker TickerFactory
	onTick    func(remaining int)

	mu        sync.Mutex
	remaining int
	gen       uint64
	stop      chan struct{}
}

// NewTimer builds a stopped timer. onTick receives every displayed value,
// including the reset value reported by Start.
func NewTimer(limit int, onTick func(remaining int), newTicker TickerFactory) *Timer {
	if newTicker == nil {
		newTicker = NewStdTicker
	}
	if onTick == nil {
		onTick = func(int) {}
	}
	return &Timer{
		limit:     limit,
		interval:  time.Second,
		newTicker: newTicker,
		onTick:    onTick,
		remaining: limit,
	}
}

// Start resets the countdown and begins ticking. onExpire runs once,
// outside the timer lock, when the countdown reaches zero.
func (t *Timer) Start(onExpire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.gen++
	gen := t.gen
	t.remaining = t.limit
	stop := make(chan struct{})
	t.stop = stop
	ticker := t.newTicker(t.interval)
	t.onTick(t.remaining)

	go t.run(gen, ticker, stop, onExpire)
}

// Stop cancels the active countdown. Safe to call when nothing is running.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Active reports whether a countdown is running.
func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

// Remaining returns the seconds left on the current countdown.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Timer) stopLocked() {
	if t.stop == nil {
		return
	}
	close(t.stop)
	t.stop = nil
	// invalidate ticks already received by the loop
	t.gen++
}

func (t *Timer) run(gen uint64, ticker Ticker, stop <-chan struct{}, onExpire func()) {
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			expired, ok := t.tick(gen)
			if !ok {
				return
			}
			if expired {
				if onExpire != nil {
					onExpire()
				}
				return
			}
		}
	}
}

// tick applies one decrement for countdown gen. ok is false when gen was cancelled.
func (t *Timer) tick(gen uint64) (expired bool, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen || t.stop == nil {
		return false, false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	t.onTick(t.remaining)
	if t.remaining > 0 {
		return false, true
	}
	t.stop = nil
	t.gen++
	return true, true
}
