package walls

import (
	"time"

	"github.com/vovakirdan/closing-walls/internal/sched"
)

// ViewFunc receives a snapshot after each frame.
type ViewFunc func(Snapshot)

// RenderLoop drives the machine at a fixed frame rate and hands every
// snapshot to the view.
//
// The frame ticker runs only while the machine is in an active state. It
// follows transitions, so re-entering an active state never leaves more than
// one ticker chain alive.
type RenderLoop struct {
	m       *Machine
	ticker  *sched.Ticker
	view    ViewFunc
	started bool
	closed  bool
}

// NewRenderLoop creates a stopped loop. fps values below 1 are treated as 1.
func NewRenderLoop(m *Machine, s sched.Scheduler, fps int, view ViewFunc) *RenderLoop {
	if fps < 1 {
		fps = 1
	}
	if view == nil {
		view = func(Snapshot) {}
	}
	rl := &RenderLoop{m: m, view: view}
	rl.ticker = sched.NewTicker(s, time.Second/time.Duration(fps), rl.frame)
	m.OnTransition(rl.follow)
	return rl
}

// Start begins producing frames and publishes the current snapshot.
func (rl *RenderLoop) Start() {
	if rl.closed {
		return
	}
	rl.started = true
	if rl.m.State().Active() {
		rl.ticker.Start()
	}
	rl.view(rl.m.Snapshot())
}

// Running reports whether the frame ticker is alive.
func (rl *RenderLoop) Running() bool {
	return rl.ticker.Running()
}

// Interval returns the time between frames.
func (rl *RenderLoop) Interval() time.Duration {
	return rl.ticker.Interval()
}

// Close stops the frame ticker and the machine's countdown together.
func (rl *RenderLoop) Close() {
	if rl.closed {
		return
	}
	rl.closed = true
	rl.ticker.Stop()
	rl.m.Shutdown()
}

func (rl *RenderLoop) frame() {
	rl.m.Frame()
	rl.view(rl.m.Snapshot())
}

func (rl *RenderLoop) follow(_, to State) {
	if rl.closed || !rl.started {
		return
	}
	if to.Active() {
		rl.ticker.Start()
		return
	}
	rl.ticker.Stop()
	// Frozen states still need one frame on screen
	rl.view(rl.m.Snapshot())
}
