package editor

import (
	"maps"

	"github.com/rs/zerolog"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/sched"
)

// Modifiers is the keyboard modifier state that accompanies pointer input.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

func (m Modifiers) Has(o Modifiers) bool { return m&o == o }

// Session is the editing state for one buffer: caret, selection, viewport,
// tooltips and drag state, plus the layout queries derived from the
// buffer's lines, markers and folds.
type Session struct {
	buf     *buffer.Buffer
	cfg     Config
	log     zerolog.Logger
	sched   sched.Scheduler
	metrics GlyphMetrics
	cancel  func()

	caret      Caret
	caretOff   int
	desiredCol int
	sel        selectionState

	heights   map[int]int
	foldCache struct {
		valid   bool
		version uint64
		ranges  []foldRange
	}
	lastEdit *buffer.TextReplaced

	vp Viewport

	subs        []damageSub
	nextSub     int
	updateDepth int
	pending     Damage
	dispatching bool
	queue       []func()
	opDepth     int
	draining    bool

	tip   tooltipState
	drag  dragState
	blink blinkState
}

// NewSession starts editing buf. Call Close to detach from the buffer.
func NewSession(buf *buffer.Buffer, cfg Config) *Session {
	cfg = normalizeConfig(cfg)
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("component", "editor").Logger()
	}
	s := &Session{
		buf:        buf,
		cfg:        cfg,
		log:        log,
		sched:      cfg.Scheduler,
		metrics:    cfg.Metrics,
		desiredCol: -1,
		heights:    make(map[int]int),
	}
	if s.metrics == nil {
		s.metrics = NewCellMetrics(buf, cfg.TabWidth, cfg.CharWidth, cfg.RowHeight)
	}
	s.blink.visible = true
	s.rebuildHeights()
	s.cancel = buf.Subscribe(buffer.Listener{
		TextReplaced: s.onTextReplaced,
		LineChanged:  s.onLineChanged,
		FoldsChanged: s.onFoldsChanged,
	})
	return s
}

// Close detaches the session from its buffer and cancels its timers.
func (s *Session) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.HideTooltip()
	s.stopAutoscroll()
	s.StopBlink()
}

func (s *Session) Buffer() *buffer.Buffer { return s.buf }

func (s *Session) Config() Config { return s.cfg }

func (s *Session) Metrics() GlyphMetrics { return s.metrics }

func (s *Session) onTextReplaced(ev buffer.TextReplaced) {
	s.HideTooltip()
	s.lastEdit = &ev
	if ev.Source == buffer.ChangeSourceReset {
		mode := s.sel.mode
		s.sel = selectionState{mode: mode}
		s.caret.Pos, s.caretOff, s.desiredCol = buffer.Pos{}, 0, -1
		s.vp.X, s.vp.Y = 0, 0
		s.rebuildHeights()
		s.damage(Damage{All: true, Scrolled: true})
		return
	}

	s.remapCaret(ev)
	s.remapSelection(ev)
	if ev.LineDelta() != 0 {
		s.rebuildHeights()
		s.clampScroll()
		s.damage(Damage{All: true})
		return
	}
	if ev.RemovedLines > 0 {
		// Swallowed rows drop their markers even when the line count holds.
		before := maps.Clone(s.heights)
		s.rebuildHeights()
		if !maps.Equal(before, s.heights) {
			s.clampScroll()
			s.damage(Damage{All: true})
			return
		}
	}
	first := ev.StartRow()
	s.damage(Damage{Lines: []LineRange{{First: first, Last: first + ev.InsertedLines}}})
}

// onFoldsChanged moves a caret that became hidden to the start of the fold
// hiding it and repaints everything, as every row below may have moved.
func (s *Session) onFoldsChanged(buffer.FoldsChanged) {
	if fr, ok := s.hidingRange(s.caret.Pos.Row); ok {
		s.caret.Pos = buffer.Pos{Row: fr.foldRow, Col: fr.startCol}
		s.caretOff = fr.start
	}
	s.clampScroll()
	s.damage(Damage{All: true, FoldsChanged: true})
}

func (s *Session) rebuildHeights() {
	clear(s.heights)
	for _, row := range s.buf.LinesWithMarkers() {
		if h := s.LineHeight(row); h != s.cfg.RowHeight {
			s.heights[row] = h
		}
	}
}
