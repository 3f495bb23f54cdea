// Package sched provides cancellable one-shot timers whose callbacks run on
// the host's event loop.
package sched

import "time"

// Handle identifies a scheduled callback. The zero Handle never refers to a
// timer, so it can be used as "nothing scheduled".
type Handle uint64

// Scheduler schedules callbacks after a delay. Callbacks always run on the
// caller's loop, never concurrently with other editor work.
type Scheduler interface {
	Now() time.Time
	// Schedule arranges for fn to run once after d.
	Schedule(d time.Duration, fn func()) Handle
	// Cancel stops a pending callback. It reports false when h already ran,
	// was cancelled, or is unknown.
	Cancel(h Handle) bool
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Loop is a Scheduler for hosts that own an event loop. Every new timer is
// handed to arm; the host delivers it back by calling Fire on its loop once
// the delay elapsed.
type Loop struct {
	clock   Clock
	arm     func(h Handle, d time.Duration)
	next    Handle
	pending map[Handle]func()
}

func NewLoop(clock Clock, arm func(h Handle, d time.Duration)) *Loop {
	if clock == nil {
		clock = RealClock{}
	}
	return &Loop{clock: clock, arm: arm, pending: make(map[Handle]func())}
}

func (l *Loop) Now() time.Time { return l.clock.Now() }

func (l *Loop) Schedule(d time.Duration, fn func()) Handle {
	l.next++
	h := l.next
	l.pending[h] = fn
	if l.arm != nil {
		l.arm(h, d)
	}
	return h
}

func (l *Loop) Cancel(h Handle) bool {
	if _, ok := l.pending[h]; !ok {
		return false
	}
	delete(l.pending, h)
	return true
}

// Fire runs the callback of h if it is still pending.
func (l *Loop) Fire(h Handle) bool {
	fn, ok := l.pending[h]
	if !ok {
		return false
	}
	delete(l.pending, h)
	fn()
	return true
}

// Pending returns the number of timers that have neither fired nor been
// cancelled.
func (l *Loop) Pending() int { return len(l.pending) }
