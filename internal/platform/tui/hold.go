package tui

import (
	"time"

	"github.com/vovakirdan/closing-walls/internal/games/walls"
	"github.com/vovakirdan/closing-walls/internal/sched"
)

// HoldTracker emulates key release. Terminals report presses and auto-repeats
// but never a key-up, so a direction counts as held while repeats keep
// arriving and is released once none has come for the timeout.
//
// A zero timeout disables auto-release: the direction stays held until
// Release or another direction.
//
// All methods must be called from the scheduler's goroutine.
type HoldTracker struct {
	s       sched.Scheduler
	timeout time.Duration
	release func()

	held  walls.Direction
	timer sched.Timer
	gen   uint64
}

// NewHoldTracker creates a tracker that calls release when a hold lapses.
func NewHoldTracker(s sched.Scheduler, timeout time.Duration, release func()) *HoldTracker {
	if release == nil {
		release = func() {}
	}
	return &HoldTracker{s: s, timeout: timeout, release: release}
}

// Press records a press or repeat of dir and restarts the release timer.
func (h *HoldTracker) Press(dir walls.Direction) {
	if dir == walls.DirNone {
		return
	}
	h.cancel()
	h.held = dir
	if h.timeout <= 0 {
		return
	}
	gen := h.gen
	h.timer = h.s.AfterFunc(h.timeout, func() {
		if gen != h.gen {
			return
		}
		h.timer = nil
		h.held = walls.DirNone
		h.release()
	})
}

// Release lets go of the held direction now.
func (h *HoldTracker) Release() {
	h.cancel()
	h.held = walls.DirNone
	h.release()
}

// Held returns the direction currently considered held.
func (h *HoldTracker) Held() walls.Direction {
	return h.held
}

// Stop cancels any pending release without calling it.
func (h *HoldTracker) Stop() {
	h.cancel()
	h.held = walls.DirNone
}

func (h *HoldTracker) cancel() {
	h.gen++
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}
