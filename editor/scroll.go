package editor

import "github.com/iw2rmb/quill/buffer"

// Viewport is the visible window onto the document. X and Y are the scroll
// offsets in document pixels; Width and Height are the widget size, left
// margin included.
type Viewport struct {
	X, Y          int
	Width, Height int
}

func (s *Session) Viewport() Viewport { return s.vp }

// SetViewport resizes the widget and keeps the scroll offsets in range.
func (s *Session) SetViewport(width, height int) {
	if s.deferred(func() { s.SetViewport(width, height) }) {
		return
	}
	defer s.op()()
	width, height = max(width, 0), max(height, 0)
	if s.vp.Width == width && s.vp.Height == height {
		return
	}
	s.vp.Width, s.vp.Height = width, height
	s.clampScroll()
	s.damage(Damage{All: true, Scrolled: true})
}

// ScrollBy moves the viewport by dx, dy document pixels.
func (s *Session) ScrollBy(dx, dy int) {
	if s.deferred(func() { s.ScrollBy(dx, dy) }) {
		return
	}
	defer s.op()()
	s.scrollTo(s.vp.X+dx, s.vp.Y+dy)
}

// ScrollTo scrolls the least amount that makes pos visible.
func (s *Session) ScrollTo(pos buffer.Pos) {
	if s.deferred(func() { s.ScrollTo(pos) }) {
		return
	}
	defer s.op()()
	pt := s.LocationToPixel(pos)
	h := s.LineHeight(s.buf.ClampPos(pos).Row)
	w := s.textWidth()
	x, y := s.vp.X, s.vp.Y

	switch {
	case pt.Y < y:
		y = pt.Y
	case pt.Y+h > y+s.vp.Height:
		y = pt.Y + h - s.vp.Height
	}
	switch {
	case pt.X < x:
		x = pt.X
	case pt.X+s.cfg.CharWidth > x+w:
		x = pt.X + s.cfg.CharWidth - w
	}
	s.scrollTo(x, y)
}

// CenterTo scrolls so that the line of pos sits in the middle of the view.
func (s *Session) CenterTo(pos buffer.Pos) {
	if s.deferred(func() { s.CenterTo(pos) }) {
		return
	}
	defer s.op()()
	pt := s.LocationToPixel(pos)
	h := s.LineHeight(s.buf.ClampPos(pos).Row)
	x := s.vp.X
	if w := s.textWidth(); pt.X < x || pt.X >= x+w {
		x = pt.X - w/2
	}
	s.scrollTo(x, pt.Y+h/2-s.vp.Height/2)
}

func (s *Session) scrollTo(x, y int) {
	oldX, oldY := s.vp.X, s.vp.Y
	s.vp.X, s.vp.Y = x, y
	s.clampScroll()
	if s.vp.X == oldX && s.vp.Y == oldY {
		return
	}
	s.HideTooltip()
	s.damage(Damage{All: true, Scrolled: true})
}

// clampScroll keeps the viewport inside the document. The horizontal limit
// is the widest line plus one cell for the caret.
func (s *Session) clampScroll() {
	maxY := max(s.DocumentHeight()-s.vp.Height, 0)
	s.vp.Y = clampInt(s.vp.Y, 0, maxY)

	widest := 0
	for row := 0; row < s.buf.LineCount(); row++ {
		if s.IsLineHidden(row) {
			continue
		}
		widest = max(widest, s.metrics.ColumnToVisualX(row, s.buf.LineLen(row)))
	}
	maxX := max(widest+s.cfg.CharWidth-s.textWidth(), 0)
	s.vp.X = clampInt(s.vp.X, 0, maxX)
}
