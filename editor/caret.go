package editor

import "github.com/iw2rmb/quill/buffer"

type CaretShape int

const (
	CaretBar CaretShape = iota
	CaretBlock
	CaretUnderscore
)

// Caret is the insertion point. While PreserveSelection is set, moving the
// caret leaves the selection alone.
type Caret struct {
	Pos               buffer.Pos
	Shape             CaretShape
	PreserveSelection bool
}

func (s *Session) Caret() Caret { return s.caret }

// CaretOffset returns the caret as a document offset.
func (s *Session) CaretOffset() int { return s.caretOff }

// SetCaret moves the caret to pos, clamped into the document. The selection
// is cleared unless PreserveSelection is set.
func (s *Session) SetCaret(pos buffer.Pos) {
	if s.deferred(func() { s.SetCaret(pos) }) {
		return
	}
	defer s.op()()
	s.setCaret(pos, true)
}

func (s *Session) setCaret(pos buffer.Pos, resetDesired bool) {
	pos = s.buf.ClampPos(pos)
	if !s.caret.PreserveSelection && s.sel.active {
		s.ClearSelection()
	}
	if resetDesired {
		s.desiredCol = -1
	}
	old := s.caret.Pos
	if old == pos {
		return
	}
	s.caret.Pos = pos
	s.caretOff = s.buf.PosToOffset(pos)
	s.caretMoved(old)
}

// caretMoved hides the tooltip, restarts the blink cycle, and redraws the
// old and new caret lines when no selection repaint covers them.
func (s *Session) caretMoved(old buffer.Pos) {
	s.HideTooltip()
	s.resetBlink()
	if s.IsSomethingSelected() {
		return
	}
	s.damage(Damage{Lines: mergeLineRanges([]LineRange{
		lineSpan(old.Row, old.Row),
		lineSpan(s.caret.Pos.Row, s.caret.Pos.Row),
	})})
}

// MoveCaret applies a caret motion. Vertical motions skip folded lines and
// keep the column the caret had before the first vertical step. With
// m.Extend the selection grows to the new caret position; otherwise it is
// cleared.
func (s *Session) MoveCaret(m buffer.Move) {
	if s.deferred(func() { s.MoveCaret(m) }) {
		return
	}
	defer s.op()()
	from := s.caret.Pos
	to := s.buf.MovePos(from, m)
	vertical := m.Unit != buffer.MoveDoc && (m.Dir == buffer.DirUp || m.Dir == buffer.DirDown)
	if vertical {
		to = s.verticalTarget(from, m.Dir)
	}

	if !m.Extend && s.IsSomethingSelected() && m.Unit == buffer.MoveGrapheme && (m.Dir == buffer.DirLeft || m.Dir == buffer.DirRight) {
		// Collapsing a selection lands on its near edge.
		r := s.mustSelection().Range()
		to = r.Start
		if m.Dir == buffer.DirRight {
			to = r.End
		}
	}

	if m.Extend {
		desired := s.desiredCol
		s.ExtendSelectionTo(to)
		if vertical {
			s.desiredCol = desired
		}
	} else {
		s.setCaret(to, !vertical)
	}
	if vertical && s.desiredCol < 0 {
		s.desiredCol = from.Col
	}
	s.ScrollTo(s.caret.Pos)
}

func (s *Session) verticalTarget(from buffer.Pos, dir buffer.MoveDir) buffer.Pos {
	col := from.Col
	if s.desiredCol >= 0 {
		col = s.desiredCol
	}
	visual := s.LogicalToVisualLine(from.Row)
	switch dir {
	case buffer.DirUp:
		if visual == 0 {
			return buffer.Pos{}
		}
		visual--
	case buffer.DirDown:
		if visual >= s.VisualLineCount()-1 {
			last := s.buf.LineCount() - 1
			return buffer.Pos{Row: last, Col: s.buf.LineLen(last)}
		}
		visual++
	}
	return s.buf.ClampPos(buffer.Pos{Row: s.VisualToLogicalLine(visual), Col: col})
}

func (s *Session) mustSelection() Selection {
	sel, _ := s.Selection()
	return sel
}

// SetPreserveSelection sets the flag that keeps the selection while the
// caret moves.
func (s *Session) SetPreserveSelection(preserve bool) {
	s.caret.PreserveSelection = preserve
}

func (s *Session) SetCaretShape(shape CaretShape) {
	if s.caret.Shape == shape {
		return
	}
	s.caret.Shape = shape
	s.damage(Damage{Lines: []LineRange{lineSpan(s.caret.Pos.Row, s.caret.Pos.Row)}})
}

// remapCaret shifts the caret through an edit and clamps it.
func (s *Session) remapCaret(ev buffer.TextReplaced) {
	s.caretOff = ev.MapOffset(s.caretOff, buffer.GapBiasRight)
	s.caret.Pos = s.buf.OffsetToPos(s.caretOff)
}
