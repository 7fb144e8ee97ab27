// Package loop runs tasks one at a time on a single goroutine.
//
// Everything the engine mutates lives on the loop: timer callbacks and the
// results of blocking work are posted back to it, so code running on the
// loop never needs a lock. A task observes state, decides and commits before
// returning; nothing else runs in between.
package loop

import (
	"sync"
	"time"
)

const taskBufferSize = 64

// Loop is a cooperative task queue drained by one goroutine.
type Loop struct {
	tasks chan func()
	done  chan struct{}

	closeOnce sync.Once
}

// New starts a loop goroutine.
func New() *Loop {
	l := &Loop{
		tasks: make(chan func(), taskBufferSize),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.done:
			return
		}
	}
}

// Post queues fn. It returns false if the loop is closed.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to return.
// It must not be called from the loop itself.
func (l *Loop) Do(fn func()) bool {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

// Done is closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Close stops the loop. Queued tasks that have not started are dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}

// Timer is a one-shot timer whose callback runs on the loop.
type Timer struct {
	t       *time.Timer
	stopped bool
	fired   bool
}

// AfterFunc schedules fn to run on the loop after d.
// The returned timer must only be stopped from the loop.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	tm := &Timer{}
	tm.t = time.AfterFunc(d, func() {
		l.Post(func() {
			if tm.stopped {
				return
			}
			tm.fired = true
			fn()
		})
	})
	return tm
}

// Stop prevents the callback from running, even if it was already queued.
// It reports whether the timer was still pending.
func (tm *Timer) Stop() bool {
	if tm == nil || tm.stopped || tm.fired {
		return false
	}
	tm.stopped = true
	tm.t.Stop()
	return true
}

// Pending reports whether the callback has neither run nor been stopped.
func (tm *Timer) Pending() bool {
	return tm != nil && !tm.stopped && !tm.fired
}
