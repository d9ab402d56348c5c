package sched

import "time"

// Ticker calls fn every interval until stopped. It re-arms a one-shot timer
// after each call, the same way a Bubble Tea tick command re-issues itself.
//
// Each Start begins a new generation. A callback belonging to an older
// generation does nothing, so at most one chain of ticks is alive at a time
// no matter how Start and Stop interleave with pending callbacks.
type Ticker struct {
	s        Scheduler
	interval time.Duration
	fn       func()

	timer   Timer
	gen     uint64
	running bool
}

// NewTicker creates a stopped ticker.
func NewTicker(s Scheduler, interval time.Duration, fn func()) *Ticker {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Ticker{
		s:        s,
		interval: interval,
		fn:       fn,
	}
}

// Start begins ticking. Calling Start on a running ticker is a no-op.
func (t *Ticker) Start() {
	if t.running {
		return
	}
	t.running = true
	t.gen++
	t.arm(t.gen)
}

// Stop cancels the pending tick. Safe to call from inside fn.
func (t *Ticker) Stop() {
	if !t.running {
		return
	}
	t.running = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Running reports whether the ticker is started.
func (t *Ticker) Running() bool {
	return t.running
}

// Interval returns the tick interval.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

func (t *Ticker) arm(gen uint64) {
	t.timer = t.s.AfterFunc(t.interval, func() {
		if !t.live(gen) {
			return
		}
		t.fn()
		// fn may have stopped or restarted the ticker
		if t.live(gen) {
			t.arm(gen)
		}
	})
}

func (t *Ticker) live(gen uint64) bool {
	return t.running && t.gen == gen
}
