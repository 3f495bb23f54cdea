package editor

import (
	"strings"

	"github.com/iw2rmb/quill/buffer"
)

type SelectionMode int

const (
	SelectionStream SelectionMode = iota
	SelectionBlock
)

// SelectionState is the state of the selection machine.
type SelectionState int

const (
	NoSelection SelectionState = iota
	StreamSelection
	BlockSelection
)

func (s SelectionState) String() string {
	switch s {
	case StreamSelection:
		return "stream"
	case BlockSelection:
		return "block"
	default:
		return "none"
	}
}

// Selection is an anchor and a lead. The lead is the end that moves.
type Selection struct {
	Anchor buffer.Pos
	Lead   buffer.Pos
	Mode   SelectionMode
}

func (s Selection) IsEmpty() bool { return s.Anchor == s.Lead }

// Range returns the normalized span between anchor and lead.
func (s Selection) Range() buffer.Range {
	return buffer.NormalizeRange(buffer.Range{Start: s.Anchor, End: s.Lead})
}

// Columns returns the column span of a block selection.
func (s Selection) Columns() (start, end int) {
	return min(s.Anchor.Col, s.Lead.Col), max(s.Anchor.Col, s.Lead.Col)
}

type selectionState struct {
	active bool
	mode   SelectionMode
	anchor int // offsets
	lead   int
	// Block selections keep their requested columns; offsets cannot express
	// columns beyond a short line.
	anchorPos buffer.Pos
	leadPos   buffer.Pos
}

// Selection returns the current selection. ok is false when there is none;
// an empty selection is still returned so extending continues from its
// anchor.
func (s *Session) Selection() (Selection, bool) {
	if !s.sel.active {
		return Selection{Mode: s.sel.mode}, false
	}
	return Selection{Anchor: s.sel.anchorPos, Lead: s.sel.leadPos, Mode: s.sel.mode}, true
}

func (s *Session) selectionPtr() *Selection {
	sel, ok := s.Selection()
	if !ok || sel.IsEmpty() {
		return nil
	}
	return &sel
}

// IsSomethingSelected reports a non-empty selection.
func (s *Session) IsSomethingSelected() bool {
	return s.sel.active && s.sel.anchorPos != s.sel.leadPos
}

func (s *Session) SelectionState() SelectionState {
	if !s.IsSomethingSelected() {
		return NoSelection
	}
	if s.sel.mode == SelectionBlock {
		return BlockSelection
	}
	return StreamSelection
}

// SetSelection selects from anchor to lead in the current mode. Both ends
// are clamped into the document. The caret is not moved.
func (s *Session) SetSelection(anchor, lead buffer.Pos) {
	if s.deferred(func() { s.SetSelection(anchor, lead) }) {
		return
	}
	defer s.op()()
	s.updateSelection(func(st *selectionState) {
		st.active = true
		s.setSelectionEnds(st, anchor, lead)
	})
}

// ExtendSelectionTo moves the lead to pos and the caret with it. Without a
// selection the anchor starts at the caret.
func (s *Session) ExtendSelectionTo(pos buffer.Pos) {
	if s.deferred(func() { s.ExtendSelectionTo(pos) }) {
		return
	}
	defer s.op()()
	anchor := s.caret.Pos
	if s.sel.active {
		anchor = s.sel.anchorPos
	}
	s.updateSelection(func(st *selectionState) {
		st.active = true
		s.setSelectionEnds(st, anchor, pos)
	})
	preserve := s.caret.PreserveSelection
	s.caret.PreserveSelection = true
	s.SetCaret(s.sel.leadPos)
	s.caret.PreserveSelection = preserve
}

func (s *Session) ClearSelection() {
	if s.deferred(s.ClearSelection) {
		return
	}
	defer s.op()()
	if !s.sel.active {
		return
	}
	s.updateSelection(func(st *selectionState) { st.active = false })
}

// SetSelectionMode switches between stream and block selection. The current
// selection, if any, keeps its ends.
func (s *Session) SetSelectionMode(mode SelectionMode) {
	if s.deferred(func() { s.SetSelectionMode(mode) }) {
		return
	}
	defer s.op()()
	if s.sel.mode == mode {
		return
	}
	s.updateSelection(func(st *selectionState) { st.mode = mode })
}

// SelectAll selects the whole document in stream mode.
func (s *Session) SelectAll() {
	defer s.op()()
	end := s.buf.OffsetToPos(s.buf.Len())
	s.SetSelectionMode(SelectionStream)
	s.SetSelection(buffer.Pos{}, end)
	s.ExtendSelectionTo(end)
}

// SelectedText returns the selected text. Block selections join the column
// span of every covered line with "\n".
func (s *Session) SelectedText() string {
	sel := s.selectionPtr()
	if sel == nil {
		return ""
	}
	if sel.Mode == SelectionStream {
		return s.buf.TextIn(sel.Range())
	}
	c0, c1 := sel.Columns()
	r := sel.Range()
	parts := make([]string, 0, r.End.Row-r.Start.Row+1)
	for row := r.Start.Row; row <= r.End.Row; row++ {
		n := s.buf.LineLen(row)
		parts = append(parts, s.buf.TextIn(buffer.Range{
			Start: buffer.Pos{Row: row, Col: min(c0, n)},
			End:   buffer.Pos{Row: row, Col: min(c1, n)},
		}))
	}
	return strings.Join(parts, "\n")
}

func (s *Session) setSelectionEnds(st *selectionState, anchor, lead buffer.Pos) {
	st.anchorPos = s.clampSelectionPos(anchor, st.mode)
	st.leadPos = s.clampSelectionPos(lead, st.mode)
	st.anchor = s.buf.PosToOffset(st.anchorPos)
	st.lead = s.buf.PosToOffset(st.leadPos)
}

// clampSelectionPos clamps rows; block selections may keep a column past
// the end of a short line.
func (s *Session) clampSelectionPos(p buffer.Pos, mode SelectionMode) buffer.Pos {
	if mode != SelectionBlock {
		return s.buf.ClampPos(p)
	}
	c := s.buf.ClampPos(buffer.Pos{Row: p.Row})
	c.Col = max(p.Col, 0)
	return c
}

// updateSelection applies fn and redraws what the change requires.
func (s *Session) updateSelection(fn func(st *selectionState)) {
	old := s.selectionPtr()
	fn(&s.sel)
	if s.sel.active {
		s.setSelectionEnds(&s.sel, s.sel.anchorPos, s.sel.leadPos)
	}
	inv := ComputeInvalidation(old, s.selectionPtr())
	s.damage(Damage{All: inv.All, Lines: inv.Lines})
}

// remapSelection shifts the selection through an edit and clamps it. Block
// selections follow the edit by row only and keep their columns.
func (s *Session) remapSelection(ev buffer.TextReplaced) {
	if !s.sel.active {
		return
	}
	anchor := s.buf.OffsetToPos(ev.MapOffset(s.sel.anchor, buffer.GapBiasRight))
	lead := s.buf.OffsetToPos(ev.MapOffset(s.sel.lead, buffer.GapBiasRight))
	if s.sel.mode == SelectionBlock {
		anchor.Col = s.sel.anchorPos.Col
		lead.Col = s.sel.leadPos.Col
	}
	s.setSelectionEnds(&s.sel, anchor, lead)
}
