package editor

import (
	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/sched"
)

type dragState struct {
	pressed bool
	// onSelection is set when the press landed inside the selection; moving
	// with the button held then drags the selected text.
	onSelection bool
	dragging    bool
	last        Point
	autoscroll  sched.Handle
}

// PointerPress handles a button press at view point p. clicks is the click
// count of the gesture: 2 selects a word, 3 a line. Shift extends the
// selection, Alt starts a block selection.
func (s *Session) PointerPress(p Point, mods Modifiers, clicks int) {
	if s.deferred(func() { s.PointerPress(p, mods, clicks) }) {
		return
	}
	defer s.op()()
	s.HideTooltip()
	s.stopAutoscroll()
	s.drag = dragState{pressed: true, last: p}
	pos := s.ViewToLocation(p)

	switch {
	case clicks >= 3:
		s.SetSelectionMode(SelectionStream)
		end := buffer.Pos{Row: pos.Row + 1}
		if pos.Row == s.buf.LineCount()-1 {
			end = buffer.Pos{Row: pos.Row, Col: s.buf.LineLen(pos.Row)}
		}
		s.selectSpan(buffer.Pos{Row: pos.Row}, end)
	case clicks == 2:
		s.SetSelectionMode(SelectionStream)
		r := s.buf.WordRange(pos)
		s.selectSpan(r.Start, r.End)
	case mods.Has(ModShift):
		s.ExtendSelectionTo(pos)
	case mods.Has(ModAlt):
		s.ClearSelection()
		s.SetSelectionMode(SelectionBlock)
		s.setCaret(pos, true)
		s.SetSelection(pos, pos)
	case s.pressedOnSelection(pos):
		s.drag.onSelection = true
	default:
		s.ClearSelection()
		s.SetSelectionMode(SelectionStream)
		s.setCaret(pos, true)
	}
}

// PointerDrag handles pointer motion with the button held. Outside the
// viewport it starts the autoscroll tick.
func (s *Session) PointerDrag(p Point) {
	if s.deferred(func() { s.PointerDrag(p) }) {
		return
	}
	defer s.op()()
	if !s.drag.pressed {
		return
	}
	s.drag.last = p
	if s.drag.onSelection {
		s.drag.dragging = true
		s.DragMotion(p)
	} else {
		s.extendTo(p)
	}
	if s.outsideView(p) {
		s.startAutoscroll()
	} else {
		s.stopAutoscroll()
	}
}

// PointerRelease ends the gesture started by PointerPress. Releasing a
// selection drag moves the text to p, or copies it when Ctrl is held.
func (s *Session) PointerRelease(p Point, mods Modifiers) {
	if s.deferred(func() { s.PointerRelease(p, mods) }) {
		return
	}
	defer s.op()()
	st := s.drag
	s.stopAutoscroll()
	s.drag = dragState{}
	if !st.pressed || !st.onSelection {
		return
	}
	if st.dragging {
		s.Drop(p, s.SelectedText(), !mods.Has(ModCtrl))
		return
	}
	// A click inside the selection without motion places the caret.
	s.ClearSelection()
	s.setCaret(s.ViewToLocation(p), true)
}

// DragMotion moves the caret to the drop location under p without touching
// the selection.
func (s *Session) DragMotion(p Point) {
	if s.deferred(func() { s.DragMotion(p) }) {
		return
	}
	defer s.op()()
	preserve := s.caret.PreserveSelection
	s.caret.PreserveSelection = true
	s.setCaret(s.ViewToLocation(p), true)
	s.caret.PreserveSelection = preserve
}

// DragLeave reports that a drag left the widget.
func (s *Session) DragLeave() {
	s.stopAutoscroll()
}

// Drop inserts text at the location under p and selects it. With move set
// the current selection is removed as well, in the same undo step. Dropping
// a selection onto itself does nothing and reports false.
func (s *Session) Drop(p Point, text string, move bool) bool {
	if s.deferred(func() { s.Drop(p, text, move) }) {
		return false
	}
	defer s.op()()
	pos := s.ViewToLocation(p)
	off := s.LocationToOffset(pos)
	move = move && s.IsSomethingSelected()
	if move && s.dropOnSelection(off) {
		return false
	}
	if text == "" {
		return false
	}

	s.BeginUpdate()
	defer s.EndUpdate()

	start := off
	end := s.buf.Insert(off, text)
	if move {
		s.deleteSelection(&start, &end)
	}
	s.ClearSelection()
	s.SetSelectionMode(SelectionStream)
	s.selectSpan(s.buf.OffsetToPos(start), s.buf.OffsetToPos(end))
	return true
}

func (s *Session) selectSpan(anchor, lead buffer.Pos) {
	s.ClearSelection()
	s.setCaret(anchor, true)
	s.ExtendSelectionTo(lead)
}

func (s *Session) extendTo(p Point) {
	s.ExtendSelectionTo(s.ViewToLocation(p))
}

func (s *Session) pressedOnSelection(pos buffer.Pos) bool {
	sel := s.selectionPtr()
	if sel == nil || sel.Mode != SelectionStream {
		return false
	}
	r := sel.Range()
	return buffer.ComparePos(pos, r.Start) >= 0 && buffer.ComparePos(pos, r.End) < 0
}

func (s *Session) dropOnSelection(off int) bool {
	sel := s.selectionPtr()
	if sel == nil {
		return false
	}
	if sel.Mode == SelectionBlock {
		r := sel.Range()
		pos := s.buf.OffsetToPos(off)
		c0, c1 := sel.Columns()
		return pos.Row >= r.Start.Row && pos.Row <= r.End.Row && pos.Col >= c0 && pos.Col <= c1
	}
	a, b := min(s.sel.anchor, s.sel.lead), max(s.sel.anchor, s.sel.lead)
	return off >= a && off <= b
}

func (s *Session) outsideView(p Point) bool {
	return p.Y < 0 || p.Y >= s.vp.Height || p.X < s.cfg.LeftMargin || p.X >= s.vp.Width
}

func (s *Session) startAutoscroll() {
	if s.drag.autoscroll != 0 {
		return
	}
	s.drag.autoscroll = s.sched.Schedule(s.cfg.AutoscrollInterval, s.autoscrollTick)
}

// autoscrollTick scrolls one step toward the pointer and follows it with
// the selection or the drop caret.
func (s *Session) autoscrollTick() {
	s.drag.autoscroll = 0
	if !s.drag.pressed {
		return
	}
	p := s.drag.last
	var dx, dy int
	switch {
	case p.Y < 0:
		dy = -s.cfg.RowHeight
	case p.Y >= s.vp.Height:
		dy = s.cfg.RowHeight
	}
	switch {
	case p.X < s.cfg.LeftMargin:
		dx = -s.cfg.CharWidth
	case p.X >= s.vp.Width:
		dx = s.cfg.CharWidth
	}
	if dx == 0 && dy == 0 {
		return
	}
	s.ScrollBy(dx, dy)
	if s.drag.onSelection {
		s.DragMotion(p)
	} else {
		s.extendTo(p)
	}
	s.drag.autoscroll = s.sched.Schedule(s.cfg.AutoscrollInterval, s.autoscrollTick)
}

func (s *Session) stopAutoscroll() {
	if s.drag.autoscroll != 0 {
		s.sched.Cancel(s.drag.autoscroll)
		s.drag.autoscroll = 0
	}
}
