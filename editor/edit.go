package editor

import "github.com/iw2rmb/quill/buffer"

// InsertText replaces the selection, if any, with text and leaves the caret
// after it. The whole operation is one undo step.
func (s *Session) InsertText(text string) {
	if s.deferred(func() { s.InsertText(text) }) {
		return
	}
	defer s.op()()
	s.BeginUpdate()
	defer s.EndUpdate()

	if s.IsSomethingSelected() {
		s.deleteSelection()
	}
	if text == "" {
		return
	}
	off := s.buf.Insert(s.caretOff, text)
	s.setCaret(s.buf.OffsetToPos(off), true)
}

// DeleteBackward removes the selection, or the cluster (or line break)
// before the caret.
func (s *Session) DeleteBackward() {
	if s.deferred(s.DeleteBackward) {
		return
	}
	defer s.op()()
	if s.IsSomethingSelected() {
		s.DeleteSelection()
		return
	}
	prev := s.buf.PosToOffset(s.buf.MovePos(s.caret.Pos, buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft}))
	if prev == s.caretOff {
		return
	}
	s.buf.Remove(prev, s.caretOff-prev)
	s.setCaret(s.buf.OffsetToPos(prev), true)
}

// DeleteForward removes the selection, or the cluster (or line break) after
// the caret.
func (s *Session) DeleteForward() {
	if s.deferred(s.DeleteForward) {
		return
	}
	defer s.op()()
	if s.IsSomethingSelected() {
		s.DeleteSelection()
		return
	}
	next := s.buf.PosToOffset(s.buf.MovePos(s.caret.Pos, buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight}))
	if next == s.caretOff {
		return
	}
	s.buf.Remove(s.caretOff, next-s.caretOff)
}

// DeleteSelection removes the selected text, clears the selection and puts
// the caret at the start of the removed range. Block selections remove the
// column span of every covered line.
func (s *Session) DeleteSelection() {
	if s.deferred(s.DeleteSelection) {
		return
	}
	defer s.op()()
	if !s.IsSomethingSelected() {
		return
	}
	s.BeginUpdate()
	defer s.EndUpdate()
	s.deleteSelection()
}

// deleteSelection removes the selection and shifts the offsets in track
// through every edit it makes.
func (s *Session) deleteSelection(track ...*int) {
	sel := s.mustSelection()
	r := sel.Range()
	start := r.Start

	remove := func(r buffer.Range) {
		s.lastEdit = nil
		s.buf.ReplaceRange(r, "")
		if ev := s.lastEdit; ev != nil {
			for _, off := range track {
				*off = ev.MapOffset(*off, buffer.GapBiasRight)
			}
		}
	}
	if sel.Mode == SelectionBlock {
		c0, c1 := sel.Columns()
		for row := r.End.Row; row >= r.Start.Row; row-- {
			n := s.buf.LineLen(row)
			remove(buffer.Range{
				Start: buffer.Pos{Row: row, Col: min(c0, n)},
				End:   buffer.Pos{Row: row, Col: min(c1, n)},
			})
		}
		start = s.buf.ClampPos(buffer.Pos{Row: r.Start.Row, Col: c0})
	} else {
		remove(r)
	}

	s.updateSelection(func(st *selectionState) { st.active = false })
	s.setCaret(start, true)
}

// Undo reverts the last undo step and puts the caret at the end of the
// restored text.
func (s *Session) Undo() bool {
	return s.history(s.buf.Undo)
}

func (s *Session) Redo() bool {
	return s.history(s.buf.Redo)
}

func (s *Session) history(step func() bool) bool {
	if s.dispatching || s.updateDepth > 0 {
		return false
	}
	defer s.op()()
	s.lastEdit = nil
	if !step() {
		return false
	}
	s.ClearSelection()
	if ev := s.lastEdit; ev != nil {
		s.setCaret(s.buf.OffsetToPos(ev.Offset+ev.Inserted), true)
	}
	return true
}

// ToggleFoldAtLine toggles the first fold starting on row. It reports
// whether a fold was found.
func (s *Session) ToggleFoldAtLine(row int) bool {
	defer s.op()()
	folds := s.buf.FoldsStartingOnLine(row)
	if len(folds) == 0 {
		return false
	}
	if err := s.buf.ToggleFold(folds[0].ID); err != nil {
		s.log.Warn().Err(err).Int("row", row).Msg("toggle fold")
		return false
	}
	return true
}
