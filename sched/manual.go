package sched

import (
	"sort"
	"time"
)

// Manual is a deterministic Scheduler driven by Advance. Timers fire in
// due order; timers due at the same instant fire in scheduling order.
type Manual struct {
	now    time.Time
	next   Handle
	timers []manualTimer
}

type manualTimer struct {
	h   Handle
	due time.Time
	fn  func()
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time { return m.now }

func (m *Manual) Schedule(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	m.next++
	m.timers = append(m.timers, manualTimer{h: m.next, due: m.now.Add(d), fn: fn})
	return m.next
}

func (m *Manual) Cancel(h Handle) bool {
	for i, t := range m.timers {
		if t.h == h {
			m.timers = append(m.timers[:i:i], m.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d, firing every timer that becomes
// due, including timers scheduled by callbacks during the advance.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		i := m.earliest()
		if i < 0 || m.timers[i].due.After(target) {
			break
		}
		t := m.timers[i]
		m.timers = append(m.timers[:i:i], m.timers[i+1:]...)
		if t.due.After(m.now) {
			m.now = t.due
		}
		t.fn()
	}
	m.now = target
}

// Pending returns the handles still waiting, in due order.
func (m *Manual) Pending() []Handle {
	ts := append([]manualTimer(nil), m.timers...)
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].due.Before(ts[j].due) })
	out := make([]Handle, len(ts))
	for i, t := range ts {
		out[i] = t.h
	}
	return out
}

func (m *Manual) earliest() int {
	best := -1
	for i, t := range m.timers {
		if best < 0 || t.due.Before(m.timers[best].due) {
			best = i
		}
	}
	return best
}
