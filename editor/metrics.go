package editor

import (
	"fmt"

	"github.com/iw2rmb/quill/buffer"
)

// LineHeight returns the render height of row in pixels. Lines without
// markers use the uniform row height; otherwise the first extending marker
// decides. A failing marker is logged and ignored.
func (s *Session) LineHeight(row int) int {
	rh := s.cfg.RowHeight
	if !s.buf.HasMarkers(row) {
		return rh
	}
	for _, m := range s.buf.Markers(row) {
		em, ok := m.(buffer.ExtendingMarker)
		if !ok {
			continue
		}
		h, err := markerHeight(em, rh)
		if err != nil {
			s.log.Warn().Err(err).Int("row", row).Str("marker", em.Kind()).Msg("marker height failed")
			return rh
		}
		return max(h, 0)
	}
	return rh
}

func markerHeight(m buffer.ExtendingMarker, rowHeight int) (h int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("marker %s: %v", m.Kind(), r)
		}
	}()
	return m.LineHeight(rowHeight), nil
}

// onLineChanged re-measures row. A changed height shifts every row below
// it, so it repaints everything; otherwise only row is redrawn.
func (s *Session) onLineChanged(ev buffer.LineChanged) {
	h := s.LineHeight(ev.Row)
	old, ok := s.heights[ev.Row]
	if !ok {
		old = s.cfg.RowHeight
	}
	if h == s.cfg.RowHeight {
		delete(s.heights, ev.Row)
	} else {
		s.heights[ev.Row] = h
	}
	if h != old {
		s.damage(Damage{All: true})
		return
	}
	s.damage(Damage{Lines: []LineRange{{First: ev.Row, Last: ev.Row}}})
}
