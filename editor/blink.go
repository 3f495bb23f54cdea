package editor

import "github.com/iw2rmb/quill/sched"

type blinkState struct {
	visible bool
	running bool
	handle  sched.Handle
}

// StartBlink starts the caret blink timer. It does nothing when blinking
// is disabled by a negative BlinkInterval.
func (s *Session) StartBlink() {
	if s.cfg.BlinkInterval <= 0 || s.blink.running {
		return
	}
	s.blink.running = true
	s.setCaretVisible(true)
	s.armBlink()
}

// StopBlink stops the blink timer and leaves the caret visible.
func (s *Session) StopBlink() {
	if s.blink.handle != 0 {
		s.sched.Cancel(s.blink.handle)
		s.blink.handle = 0
	}
	s.blink.running = false
	s.setCaretVisible(true)
}

// SetFocused starts blinking on focus and stops it on blur.
func (s *Session) SetFocused(focused bool) {
	if focused {
		s.StartBlink()
		return
	}
	s.StopBlink()
	s.HideTooltip()
}

func (s *Session) CaretVisible() bool { return s.blink.visible }

// resetBlink shows the caret and restarts the cycle so a moving caret
// never disappears.
func (s *Session) resetBlink() {
	s.setCaretVisible(true)
	if !s.blink.running {
		return
	}
	if s.blink.handle != 0 {
		s.sched.Cancel(s.blink.handle)
	}
	s.armBlink()
}

func (s *Session) armBlink() {
	s.blink.handle = s.sched.Schedule(s.cfg.BlinkInterval, func() {
		s.blink.handle = 0
		if !s.blink.running {
			return
		}
		s.setCaretVisible(!s.blink.visible)
		s.armBlink()
	})
}

func (s *Session) setCaretVisible(v bool) {
	if s.blink.visible == v {
		return
	}
	s.blink.visible = v
	row := s.caret.Pos.Row
	s.damage(Damage{Lines: []LineRange{lineSpan(row, row)}})
}
