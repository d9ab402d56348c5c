package sched

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// ErrLoopClosed is returned when work is posted to a loop that has stopped.
var ErrLoopClosed = errors.New("sched: loop closed")

// Loop is a real-time Scheduler backed by a single goroutine.
// Timers fire on runtime goroutines but only enqueue their callback; Run
// executes every callback in order, so engine state is never touched
// concurrently. Outside callers (key handlers, network handlers) reach the
// engine through Post or Call.
type Loop struct {
	queue  chan func()
	done   chan struct{}
	once   sync.Once
	logger *log.Logger
}

// NewLoop creates a loop. Run must be called to start processing.
func NewLoop(logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loop{
		queue:  make(chan func(), 64),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Now returns the wall-clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

type loopTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

// Stop cancels the timer. A callback already queued on the loop is dropped.
func (t *loopTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	t.timer.Stop()
	return true
}

// AfterFunc schedules fn to run on the loop goroutine after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		//nolint:errcheck // A closed loop drops pending timers
		l.Post(func() {
			if t.stopped.Swap(true) {
				return
			}
			fn()
		})
	})
	return t
}

// Post enqueues fn to run on the loop goroutine.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrLoopClosed
	default:
	}
	select {
	case l.queue <- fn:
		return nil
	case <-l.done:
		return ErrLoopClosed
	}
}

// Call runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Call(fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopClosed
	}
}

// Run processes callbacks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			l.run(fn)
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop callback panicked", "panic", r)
		}
	}()
	fn()
}

func (l *Loop) close() {
	l.once.Do(func() {
		close(l.done)
	})
}
