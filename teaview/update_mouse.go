package teaview

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/editor"
)

// clickInterval is the longest pause between presses that still counts as
// a double or triple click.
const clickInterval = 400 * time.Millisecond

type clickTracker struct {
	at    time.Time
	p     editor.Point
	count int
}

// register records a press and returns its click count.
func (c *clickTracker) register(now time.Time, p editor.Point) int {
	if c.count > 0 && p == c.p && now.Sub(c.at) <= clickInterval {
		c.count++
	} else {
		c.count = 1
	}
	c.at, c.p = now, p
	return c.count
}

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	s := m.sess
	p := editor.Point{X: msg.X, Y: msg.Y}

	if isWheel(msg) {
		if m.opts.ScrollPolicy == ScrollAllowManual {
			m.wheel(msg.Button)
		}
		return m
	}
	if !m.focused {
		return m
	}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		if msg.X < m.gutter && m.onFoldMarker(p) {
			return m
		}
		clicks := m.clicks.register(m.timers.loop.Now(), p)
		s.PointerPress(p, modifiers(msg), clicks)
	case tea.MouseActionMotion:
		s.PointerMotion(p, modifiers(msg))
	case tea.MouseActionRelease:
		s.PointerRelease(p, modifiers(msg))
	}
	return m
}

// onFoldMarker toggles the fold that starts on the clicked gutter row.
func (m Model) onFoldMarker(p editor.Point) bool {
	s := m.sess
	row := s.ViewToLocation(p).Row
	return s.ToggleFoldAtLine(row)
}

func (m Model) wheel(b tea.MouseButton) {
	const step = 3
	switch b { //nolint:exhaustive
	case tea.MouseButtonWheelUp:
		m.sess.ScrollBy(0, -step)
	case tea.MouseButtonWheelDown:
		m.sess.ScrollBy(0, step)
	case tea.MouseButtonWheelLeft:
		m.sess.ScrollBy(-step, 0)
	case tea.MouseButtonWheelRight:
		m.sess.ScrollBy(step, 0)
	}
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func modifiers(msg tea.MouseMsg) editor.Modifiers {
	var mods editor.Modifiers
	if msg.Shift {
		mods |= editor.ModShift
	}
	if msg.Ctrl {
		mods |= editor.ModCtrl
	}
	if msg.Alt {
		mods |= editor.ModAlt
	}
	return mods
}
