// Package teaview hosts an editor.Session in a Bubble Tea program: it maps
// keys and mouse events onto session operations, delivers session timers
// through tea.Tick, and renders the visible rows with lipgloss.
package teaview

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/editor"
	"github.com/iw2rmb/quill/sched"
)

// Options configures a Model.
type Options struct {
	// Editor configures the session. RowHeight and CharWidth are forced to
	// one cell, Metrics to the built-in cell metrics, and Scheduler to the
	// model's tea-backed one.
	Editor editor.Config

	KeyMap KeyMap
	// Style defaults to DefaultStyle when nil.
	Style           *Style
	ShowLineNumbers bool
	ReadOnly        bool
	ScrollPolicy    ScrollPolicy
	Clipboard       Clipboard
	Tooltips        []editor.TooltipProvider

	// OnChange is called after an Update that changed the text, the caret
	// or the selection.
	OnChange func(ChangeEvent)

	// Clock overrides the wall clock used for timers and click counting.
	Clock sched.Clock
}

// ChangeEvent describes the editor state after a change.
type ChangeEvent struct {
	Version      uint64
	Caret        buffer.Pos
	Selection    editor.Selection
	HasSelection bool
}

type changeState struct {
	version uint64
	caret   buffer.Pos
	sel     editor.Selection
}

// Model is a Bubble Tea component that renders and edits a buffer.
type Model struct {
	sess   *editor.Session
	buf    *buffer.Buffer
	opts   Options
	style  Style
	log    zerolog.Logger
	timers *timers
	cells  *editor.CellMetrics

	focused bool
	gutter  int

	clicks *clickTracker
	last   *changeState
}

func New(buf *buffer.Buffer, opts Options) Model {
	if len(opts.KeyMap.Left.Keys()) == 0 {
		opts.KeyMap = DefaultKeyMap()
	}
	style := DefaultStyle()
	if opts.Style != nil {
		style = *opts.Style
	}
	log := zerolog.Nop()
	if opts.Editor.Logger != nil {
		log = opts.Editor.Logger.With().Str("component", "teaview").Logger()
	}

	t := newTimers(opts.Clock)
	cfg := opts.Editor
	cfg.RowHeight, cfg.CharWidth = 1, 1
	cfg.Scheduler = t.loop
	cfg.Metrics = nil
	gutter := 0
	if opts.ShowLineNumbers {
		gutter = lineNumberWidth(buf.LineCount())
	}
	cfg.LeftMargin = gutter

	sess := editor.NewSession(buf, cfg)
	cells, _ := sess.Metrics().(*editor.CellMetrics)
	for _, p := range opts.Tooltips {
		sess.AddTooltipProvider(p)
	}

	m := Model{
		sess:    sess,
		buf:     buf,
		opts:    opts,
		style:   style,
		log:     log,
		timers:  t,
		cells:   cells,
		focused: true,
		gutter:  gutter,
		clicks:  &clickTracker{},
		last:    &changeState{},
	}
	m.last.version = buf.Version()
	sess.SetFocused(true)
	return m
}

func (m Model) Session() *editor.Session { return m.sess }

func (m Model) Buffer() *buffer.Buffer { return m.buf }

// Init starts the caret blink.
func (m Model) Init() tea.Cmd { return m.timers.drain() }

func (m Model) SetSize(width, height int) Model {
	m.sess.SetViewport(max(width, 0), max(height, 0))
	m.sess.ScrollTo(m.sess.Caret().Pos)
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.sess.SetFocused(true)
		m.sess.ScrollTo(m.sess.Caret().Pos)
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.sess.SetFocused(false)
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// Close releases the session.
func (m Model) Close() { m.sess.Close() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.SetSize(msg.Width, msg.Height)
	case TimerMsg:
		m.timers.loop.Fire(msg.Handle)
	case tea.FocusMsg:
		m = m.Focus()
	case tea.BlurMsg:
		m = m.Blur()
	case tea.KeyMsg:
		m = m.updateKey(msg)
	case tea.MouseMsg:
		m = m.updateMouse(msg)
	}
	m.notifyChange()
	return m, m.timers.drain()
}

func (m Model) notifyChange() {
	sel, ok := m.sess.Selection()
	if !ok || sel.IsEmpty() {
		sel, ok = editor.Selection{}, false
	}
	cur := changeState{version: m.buf.Version(), caret: m.sess.Caret().Pos, sel: sel}
	if cur == *m.last {
		return
	}
	*m.last = cur
	if m.opts.OnChange != nil {
		m.opts.OnChange(ChangeEvent{
			Version:      cur.version,
			Caret:        cur.caret,
			Selection:    sel,
			HasSelection: ok,
		})
	}
}
