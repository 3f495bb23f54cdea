package editor

import "github.com/iw2rmb/quill/buffer"

// foldRange is an outermost folded fold resolved to rows. Rows
// foldRow+1..lastRow are hidden; a fold that ends on its first row hides
// nothing and only changes how that row is drawn.
type foldRange struct {
	id          buffer.FoldID
	start, end  int // offsets
	foldRow     int
	lastRow     int
	startCol    int
	endCol      int
	placeholder string
}

func (fr foldRange) hidden() int { return fr.lastRow - fr.foldRow }

// computeFoldRanges resolves the outermost folded folds of buf in document
// order. A fold starting inside another kept fold, or on a row that fold
// hides, is ignored.
func computeFoldRanges(buf *buffer.Buffer) []foldRange {
	folded := buf.FoldedFolds()
	out := make([]foldRange, 0, len(folded))
	for _, f := range folded {
		if f.Len() == 0 {
			continue
		}
		s := buf.OffsetToPos(f.Start)
		e := buf.OffsetToPos(f.End)
		nested := false
		for _, k := range out {
			if (s.Row > k.foldRow && s.Row <= k.lastRow) || (f.Start >= k.start && f.Start < k.end) {
				nested = true
				break
			}
		}
		if nested {
			continue
		}
		out = append(out, foldRange{
			id:          f.ID,
			start:       f.Start,
			end:         f.End,
			foldRow:     s.Row,
			lastRow:     e.Row,
			startCol:    s.Col,
			endCol:      e.Col,
			placeholder: f.Placeholder,
		})
	}
	return out
}

// foldRanges returns the current outermost folds. The result is derived from
// the buffer's fold set and cached per buffer version.
func (s *Session) foldRanges() []foldRange {
	if v := s.buf.Version(); !s.foldCache.valid || s.foldCache.version != v {
		s.foldCache.ranges = computeFoldRanges(s.buf)
		s.foldCache.version = v
		s.foldCache.valid = true
	}
	return s.foldCache.ranges
}

// hidingRange returns the fold hiding row, if any.
func (s *Session) hidingRange(row int) (foldRange, bool) {
	for _, fr := range s.foldRanges() {
		if fr.foldRow >= row {
			break
		}
		if row <= fr.lastRow {
			return fr, true
		}
	}
	return foldRange{}, false
}

// IsLineHidden reports whether row is collapsed inside a folded region.
func (s *Session) IsLineHidden(row int) bool {
	_, ok := s.hidingRange(row)
	return ok
}

// VisualLineCount is the number of rows actually drawn.
func (s *Session) VisualLineCount() int {
	n := s.buf.LineCount()
	for _, fr := range s.foldRanges() {
		n -= fr.hidden()
	}
	return max(n, 1)
}

// LogicalToVisualLine returns the visual row of logical. Hidden lines map to
// the row of the fold that hides them.
func (s *Session) LogicalToVisualLine(logical int) int {
	logical = clampInt(logical, 0, s.buf.LineCount()-1)
	if fr, ok := s.hidingRange(logical); ok {
		logical = fr.foldRow
	}
	visual := logical
	for _, fr := range s.foldRanges() {
		if fr.lastRow >= logical {
			break
		}
		visual -= fr.hidden()
	}
	return visual
}

// VisualToLogicalLine returns the logical line drawn at visual. It never
// returns a hidden line.
func (s *Session) VisualToLogicalLine(visual int) int {
	logical := clampInt(visual, 0, s.VisualLineCount()-1)
	for _, fr := range s.foldRanges() {
		if fr.foldRow >= logical {
			break
		}
		logical += fr.hidden()
	}
	return clampInt(logical, 0, s.buf.LineCount()-1)
}

// LogicalLineToPixelY returns the top of logical in document pixels: the
// heights of every visible row above it.
func (s *Session) LogicalLineToPixelY(logical int) int {
	logical = clampInt(logical, 0, s.buf.LineCount()-1)
	if fr, ok := s.hidingRange(logical); ok {
		logical = fr.foldRow
	}
	y := s.LogicalToVisualLine(logical) * s.cfg.RowHeight
	for _, row := range s.buf.LinesWithMarkers() {
		if row >= logical {
			break
		}
		if s.IsLineHidden(row) {
			continue
		}
		y += s.LineHeight(row) - s.cfg.RowHeight
	}
	return y
}

// PixelYToLogicalLine returns the visible logical line whose y-range
// contains y. A tall line owns its whole height. y outside the document is
// clamped to the first or last line.
func (s *Session) PixelYToLogicalLine(y int) int {
	if y <= 0 {
		return s.VisualToLogicalLine(0)
	}
	rh := s.cfg.RowHeight
	delta := 0
	for _, row := range s.buf.LinesWithMarkers() {
		if s.IsLineHidden(row) {
			continue
		}
		top := s.LogicalToVisualLine(row)*rh + delta
		if y < top {
			break
		}
		h := s.LineHeight(row)
		if y < top+h {
			return row
		}
		delta += h - rh
	}
	return s.VisualToLogicalLine((y - delta) / rh)
}

// DocumentHeight is the pixel height of all visible rows.
func (s *Session) DocumentHeight() int {
	last := s.VisualToLogicalLine(s.VisualLineCount() - 1)
	return s.LogicalLineToPixelY(last) + s.LineHeight(last)
}
