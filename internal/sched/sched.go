// Package sched provides the time sources and timers that drive the game
// engine. All engine code runs on one logical thread: callbacks scheduled
// through a Scheduler never run concurrently with each other.
package sched

import "time"

// Clock reports the current time. Engine code never calls time.Now directly
// so tests can control timing.
type Clock interface {
	Now() time.Time
}

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running.
	// Returns false if the callback already ran or was already stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay on the engine's logical thread.
type Scheduler interface {
	Clock
	AfterFunc(d time.Duration, fn func()) Timer
}
