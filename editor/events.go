package editor

// Damage tells the rendering layer what to repaint.
type Damage struct {
	// All requests a repaint of the whole viewport.
	All bool
	// Scrolled is set when the viewport moved.
	Scrolled bool
	// FoldsChanged is set when folds were added, removed or toggled.
	FoldsChanged bool
	// Lines lists logical line ranges to repaint when All is false.
	Lines []LineRange
	// Rects holds the document rectangles covered by Lines.
	Rects []Rect
}

func (d Damage) Empty() bool {
	return !d.All && !d.Scrolled && !d.FoldsChanged && len(d.Lines) == 0
}

func (d *Damage) merge(o Damage) {
	d.All = d.All || o.All
	d.Scrolled = d.Scrolled || o.Scrolled
	d.FoldsChanged = d.FoldsChanged || o.FoldsChanged
	d.Lines = mergeLineRanges(append(d.Lines, o.Lines...))
}

type damageSub struct {
	id int
	fn func(Damage)
}

// Subscribe registers fn for damage notifications and returns a function
// that removes it. Session mutations requested from fn are applied after all
// subscribers returned.
func (s *Session) Subscribe(fn func(Damage)) (cancel func()) {
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, damageSub{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// BeginUpdate opens a redraw unit and an atomic undo group. Damage raised
// until the matching EndUpdate is delivered as one notification. Updates
// nest.
func (s *Session) BeginUpdate() {
	s.updateDepth++
	s.buf.BeginAtomic()
}

func (s *Session) EndUpdate() {
	if s.updateDepth == 0 {
		s.log.Warn().Msg("EndUpdate without BeginUpdate")
		return
	}
	s.updateDepth--
	s.buf.EndAtomic()
	if s.updateDepth == 0 && !s.pending.Empty() {
		d := s.pending
		s.pending = Damage{}
		s.dispatch(d)
	}
}

func (s *Session) damage(d Damage) {
	if d.Empty() {
		return
	}
	if s.updateDepth > 0 || s.dispatching {
		s.pending.merge(d)
		return
	}
	s.dispatch(d)
}

func (s *Session) dispatch(d Damage) {
	if d.All {
		d.Lines = nil
	}
	d.Rects = nil
	for _, lr := range d.Lines {
		top := s.LogicalLineToPixelY(lr.First)
		bottom := s.LogicalLineToPixelY(lr.Last) + s.LineHeight(lr.Last)
		d.Rects = append(d.Rects, Rect{X: 0, Y: top, W: s.textWidth(), H: max(bottom-top, 0)})
	}

	s.dispatching = true
	for _, sub := range append([]damageSub(nil), s.subs...) {
		sub.fn(d)
	}
	s.dispatching = false

	if s.opDepth == 0 {
		s.drainQueue()
	}
	if !s.pending.Empty() && s.updateDepth == 0 {
		next := s.pending
		s.pending = Damage{}
		s.dispatch(next)
	}
}

// deferred queues fn when called from inside a damage notification and
// reports whether it did.
func (s *Session) deferred(fn func()) bool {
	if !s.dispatching {
		return false
	}
	s.queue = append(s.queue, fn)
	return true
}

// op marks a public operation in progress. The returned function ends it;
// mutations queued by subscribers run once the outermost operation ends.
func (s *Session) op() func() {
	s.opDepth++
	return func() {
		s.opDepth--
		if s.opDepth == 0 && s.updateDepth == 0 {
			s.drainQueue()
		}
	}
}

func (s *Session) drainQueue() {
	if s.draining {
		return
	}
	s.draining = true
	defer func() { s.draining = false }()
	for len(s.queue) > 0 {
		fn := s.queue[0]
		s.queue = s.queue[1:]
		fn()
	}
}
