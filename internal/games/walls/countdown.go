package walls

import (
	"time"

	"github.com/vovakirdan/closing-walls/internal/sched"
)

// Countdown decrements a time budget once per second while running.
//
// Stopping keeps the fraction of the current second already spent, so a
// pause/resume cycle neither loses nor gains time. Every armed timer carries
// the generation it was armed in; a callback from an older generation is
// ignored.
type Countdown struct {
	s        sched.Scheduler
	budget   int
	left     int
	onExpire func()

	timer   sched.Timer
	gen     uint64
	running bool
	armedAt time.Time
	carry   time.Duration
}

// NewCountdown creates a stopped countdown holding the full budget.
func NewCountdown(s sched.Scheduler, budget int, onExpire func()) *Countdown {
	return &Countdown{
		s:        s,
		budget:   budget,
		left:     budget,
		onExpire: onExpire,
	}
}

// Reset stops the countdown and restores the full budget.
func (c *Countdown) Reset() {
	c.Stop()
	c.left = c.budget
	c.carry = 0
}

// Start resumes counting. No-op if already running or expired.
func (c *Countdown) Start() {
	if c.running || c.left <= 0 {
		return
	}
	c.running = true
	c.gen++
	c.arm(c.gen, time.Second-c.carry)
}

// Stop halts counting and cancels the pending tick.
func (c *Countdown) Stop() {
	if !c.running {
		return
	}
	c.running = false
	c.carry += c.s.Now().Sub(c.armedAt)
	c.carry = min(max(c.carry, 0), time.Second)
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Left returns the whole seconds remaining.
func (c *Countdown) Left() int {
	return c.left
}

// Budget returns the starting number of seconds.
func (c *Countdown) Budget() int {
	return c.budget
}

// Running reports whether a tick is pending.
func (c *Countdown) Running() bool {
	return c.running
}

func (c *Countdown) arm(gen uint64, d time.Duration) {
	c.armedAt = c.s.Now()
	c.timer = c.s.AfterFunc(d, func() {
		if !c.running || c.gen != gen {
			return
		}
		c.carry = 0
		c.left--
		if c.left <= 0 {
			c.left = 0
			c.running = false
			c.timer = nil
			if c.onExpire != nil {
				c.onExpire()
			}
			return
		}
		c.arm(gen, time.Second)
	})
}
