package editor

import "github.com/iw2rmb/quill/buffer"

// Point is a pixel position. Document points are relative to the top-left
// of the text area with nothing scrolled; view points are relative to the
// top-left of the widget, margin included.
type Point struct {
	X, Y int
}

type Rect struct {
	X, Y, W, H int
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// OffsetToLocation converts a document offset to a location, clamping it
// into the document. It ignores folding.
func (s *Session) OffsetToLocation(off int) buffer.Pos {
	return s.buf.OffsetToPos(off)
}

// LocationToOffset converts a location to a document offset after clamping
// it into the document.
func (s *Session) LocationToOffset(pos buffer.Pos) int {
	return s.buf.PosToOffset(pos)
}

// LocationToPixel returns the document point of the top-left corner of the
// cluster at pos. Locations drawn after a fold placeholder resolve to the
// fold row; other locations hidden by a fold resolve to the fold's start.
func (s *Session) LocationToPixel(pos buffer.Pos) Point {
	pos = s.buf.ClampPos(pos)
	if tm, ok := s.metrics.(FoldTailMetrics); ok {
		if row, x, ok := tm.FoldTailX(pos); ok {
			return Point{X: x, Y: s.LogicalLineToPixelY(row)}
		}
	}
	if fr, ok := s.hidingRange(pos.Row); ok {
		pos = buffer.Pos{Row: fr.foldRow, Col: fr.startCol}
	}
	return Point{
		X: s.metrics.ColumnToVisualX(pos.Row, pos.Col),
		Y: s.LogicalLineToPixelY(pos.Row),
	}
}

// PixelToLocation returns the location nearest to the document point p.
func (s *Session) PixelToLocation(p Point) buffer.Pos {
	row := s.PixelYToLogicalLine(p.Y)
	if tm, ok := s.metrics.(FoldTailMetrics); ok {
		if pos, ok := tm.FoldTailLocation(row, max(p.X, 0)); ok {
			return pos
		}
	}
	col := s.metrics.VisualXToColumn(row, max(p.X, 0))
	return s.buf.ClampPos(buffer.Pos{Row: row, Col: col})
}

// ViewToDocument converts a view point to a document point.
func (s *Session) ViewToDocument(p Point) Point {
	return Point{X: p.X - s.cfg.LeftMargin + s.vp.X, Y: p.Y + s.vp.Y}
}

// DocumentToView converts a document point to a view point.
func (s *Session) DocumentToView(p Point) Point {
	return Point{X: p.X + s.cfg.LeftMargin - s.vp.X, Y: p.Y - s.vp.Y}
}

// ViewToLocation resolves a pointer position in view coordinates.
func (s *Session) ViewToLocation(p Point) buffer.Pos {
	return s.PixelToLocation(s.ViewToDocument(p))
}

// LocationToView returns the view point of pos and whether it lies inside
// the text area of the viewport.
func (s *Session) LocationToView(pos buffer.Pos) (Point, bool) {
	p := s.DocumentToView(s.LocationToPixel(pos))
	visible := p.X >= s.cfg.LeftMargin && p.X < s.vp.Width && p.Y >= 0 && p.Y < s.vp.Height
	return p, visible
}

// LineRect returns the document rectangle occupied by row, spanning the
// full text width.
func (s *Session) LineRect(row int) Rect {
	return Rect{X: 0, Y: s.LogicalLineToPixelY(row), W: s.textWidth(), H: s.LineHeight(row)}
}

func (s *Session) textWidth() int {
	return max(s.vp.Width-s.cfg.LeftMargin, 0)
}
