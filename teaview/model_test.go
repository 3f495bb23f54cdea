package teaview

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/editor"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, text string, opts Options) Model {
	t.Helper()
	if opts.Editor.BlinkInterval == 0 {
		opts.Editor.BlinkInterval = -1
	}
	m := New(buffer.New(text, buffer.Options{HistoryLimit: 100}), opts)
	m = m.SetSize(20, 4)
	t.Cleanup(m.Close)
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keys(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

// runCmds executes cmd and feeds timer messages back into the model, at
// most steps times.
func runCmds(t *testing.T, m Model, cmd tea.Cmd, steps int) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 && steps > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case TimerMsg:
			steps--
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m
}

func viewLines(m Model) []string {
	return strings.Split(m.View(), "\n")
}

func TestModel_Typing(t *testing.T) {
	m := newTestModel(t, "", Options{})
	m = keys(m, runes("hi"), tea.KeyMsg{Type: tea.KeyEnter}, runes("x"), tea.KeyMsg{Type: tea.KeySpace})

	require.Equal(t, "hi\nx ", m.Buffer().Text())
	require.Equal(t, buffer.Pos{Row: 1, Col: 2}, m.Session().Caret().Pos)
}

func TestModel_PasteNormalizesNewlines(t *testing.T) {
	m := newTestModel(t, "", Options{})
	m = keys(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\r\nb\rc"), Paste: true})

	require.Equal(t, "a\nb\nc", m.Buffer().Text())
}

func TestModel_ReadOnlyIgnoresEdits(t *testing.T) {
	m := newTestModel(t, "abc", Options{ReadOnly: true})
	m = keys(m, runes("x"), tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyRight})

	require.Equal(t, "abc", m.Buffer().Text())
	require.Equal(t, buffer.Pos{Col: 1}, m.Session().Caret().Pos)
}

func TestModel_CopyPaste(t *testing.T) {
	clip := &MemoryClipboard{}
	m := newTestModel(t, "hello world", Options{Clipboard: clip})
	for range 5 {
		m = keys(m, tea.KeyMsg{Type: tea.KeyShiftRight})
	}
	m = keys(m, tea.KeyMsg{Type: tea.KeyCtrlC}, tea.KeyMsg{Type: tea.KeyEnd}, tea.KeyMsg{Type: tea.KeyCtrlV})

	require.Equal(t, "hello", clip.text)
	require.Equal(t, "hello worldhello", m.Buffer().Text())
	require.Equal(t, buffer.Pos{Col: 16}, m.Session().Caret().Pos)
}

func TestModel_CutAndUndo(t *testing.T) {
	clip := &MemoryClipboard{}
	m := newTestModel(t, "one\ntwo", Options{Clipboard: clip})
	m = keys(m, tea.KeyMsg{Type: tea.KeyCtrlL}, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.Equal(t, "", m.Buffer().Text())
	require.Equal(t, "one\ntwo", clip.text)

	m = keys(m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.Equal(t, "one\ntwo", m.Buffer().Text())
}

func TestModel_BlockModeToggle(t *testing.T) {
	m := newTestModel(t, "abcd\nabcd", Options{})
	m = keys(m, tea.KeyMsg{Type: tea.KeyCtrlB}, tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyShiftRight}, tea.KeyMsg{Type: tea.KeyShiftRight}, tea.KeyMsg{Type: tea.KeyShiftDown})

	require.Equal(t, editor.BlockSelection, m.Session().SelectionState())
	require.Equal(t, "bc\nbc", m.Session().SelectedText())
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, "ab\ncd", Options{ShowLineNumbers: true})

	require.Equal(t, []string{"  1 ab", "  2 cd", "    ", "    "}, viewLines(m))
}

func TestModel_ViewFoldPlaceholder(t *testing.T) {
	buf := buffer.New("func {\n  x\n}\nend", buffer.Options{})
	_, err := buf.AddFold(5, 12, true, "{...}")
	require.NoError(t, err)
	m := New(buf, Options{ShowLineNumbers: true, Editor: editor.Config{BlinkInterval: -1}})
	t.Cleanup(m.Close)
	m = m.SetSize(20, 3)

	require.Equal(t, []string{"  1▸func {...}", "  4 end", "    "}, viewLines(m))

	m = keys(m, tea.KeyMsg{Type: tea.KeyCtrlF})
	require.Equal(t, []string{"  1▾func {", "  2   x", "  3 }"}, viewLines(m))
}

func TestModel_ViewFoldTail(t *testing.T) {
	buf := buffer.New("if x {\n  y\n} else {\n  z\n}", buffer.Options{})
	_, err := buf.AddFold(5, 12, true, "{..}")
	require.NoError(t, err)
	m := New(buf, Options{ShowLineNumbers: true, Editor: editor.Config{BlinkInterval: -1}})
	t.Cleanup(m.Close)
	m = m.SetSize(24, 3)

	require.Equal(t, []string{"  1▸if x {..} else {", "  4   z", "  5 }"}, viewLines(m))

	m = keys(m, tea.MouseMsg{X: 14, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.Equal(t, buffer.Pos{Row: 2, Col: 2}, m.Session().Caret().Pos)
}

func TestModel_GutterClickTogglesFold(t *testing.T) {
	buf := buffer.New("a {\nb\n}", buffer.Options{})
	f, err := buf.AddFold(2, 7, false, "{..}")
	require.NoError(t, err)
	m := New(buf, Options{ShowLineNumbers: true, Editor: editor.Config{BlinkInterval: -1}})
	t.Cleanup(m.Close)
	m = m.SetSize(20, 3)

	m = keys(m, tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	got, ok := buf.Fold(f.ID)
	require.True(t, ok)
	require.True(t, got.Folded)
	require.Equal(t, 1, m.Session().VisualLineCount())
}

func TestModel_ViewClipsHorizontally(t *testing.T) {
	m := newTestModel(t, "0123456789abcdefghijklmnop", Options{})
	m = keys(m, tea.KeyMsg{Type: tea.KeyEnd})

	lines := viewLines(m)
	require.Equal(t, "789abcdefghijklmnop ", lines[0])
}

func TestModel_WheelScroll(t *testing.T) {
	text := strings.Repeat("line\n", 99) + "line"
	wheel := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}

	m := newTestModel(t, text, Options{})
	m = keys(m, wheel)
	require.Equal(t, 3, m.Session().Viewport().Y)

	m = newTestModel(t, text, Options{ScrollPolicy: ScrollFollowCaretOnly})
	m = keys(m, wheel)
	require.Equal(t, 0, m.Session().Viewport().Y)
}

func TestModel_MouseDragSelects(t *testing.T) {
	m := newTestModel(t, "hello world", Options{})
	m = keys(m,
		tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 3, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 5, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 5, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
	)

	require.Equal(t, "hello", m.Session().SelectedText())
	require.Equal(t, buffer.Pos{Col: 5}, m.Session().Caret().Pos)
}

func TestModel_DoubleClickSelectsWord(t *testing.T) {
	m := newTestModel(t, "hello world", Options{})
	press := tea.MouseMsg{X: 8, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: 8, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	m = keys(m, press, release, press, release)

	require.Equal(t, "world", m.Session().SelectedText())
}

func TestClickTracker(t *testing.T) {
	var c clickTracker
	t0 := time.Unix(0, 0)
	p := editor.Point{X: 1, Y: 1}

	require.Equal(t, 1, c.register(t0, p))
	require.Equal(t, 2, c.register(t0.Add(100*time.Millisecond), p))
	require.Equal(t, 3, c.register(t0.Add(200*time.Millisecond), p))
	require.Equal(t, 1, c.register(t0.Add(time.Second), p))
	require.Equal(t, 1, c.register(t0.Add(time.Second+time.Millisecond), editor.Point{X: 2, Y: 1}))
}

func TestModel_TooltipThroughTimers(t *testing.T) {
	tips := &TextTooltips{Lookup: func(_ *editor.Session, off int) (editor.TooltipItem, bool) {
		if off > 5 {
			return editor.TooltipItem{}, false
		}
		return editor.TooltipItem{Start: 0, End: 5, Data: "greeting"}, true
	}}
	m := newTestModel(t, "hello world", Options{
		Tooltips: []editor.TooltipProvider{tips},
		Editor:   editor.Config{TooltipDelay: time.Millisecond},
	})

	m, cmd := m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	require.NotNil(t, cmd)
	m = runCmds(t, m, cmd, 4)

	require.Equal(t, editor.TooltipShown, m.Session().TooltipState())
	lines := viewLines(m)
	require.True(t, strings.HasPrefix(lines[0], "hello world"), lines[0])
	require.True(t, strings.HasPrefix(lines[1], "greeting"), lines[1])

	m = keys(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, editor.TooltipIdle, m.Session().TooltipState())
}

func TestModel_TooltipFlipsAboveBottomRow(t *testing.T) {
	tips := &TextTooltips{Lookup: func(_ *editor.Session, off int) (editor.TooltipItem, bool) {
		return editor.TooltipItem{Start: off, End: off + 1, Data: "hint"}, true
	}}
	m := newTestModel(t, "a\nb\nc\nhello", Options{
		Tooltips: []editor.TooltipProvider{tips},
		Editor:   editor.Config{TooltipDelay: time.Millisecond},
	})

	m, cmd := m.Update(tea.MouseMsg{X: 1, Y: 3, Action: tea.MouseActionMotion})
	m = runCmds(t, m, cmd, 4)

	require.Equal(t, editor.TooltipShown, m.Session().TooltipState())
	lines := viewLines(m)
	require.True(t, strings.HasPrefix(lines[2], "chint"), lines[2])
	require.True(t, strings.HasPrefix(lines[3], "hello"), lines[3])
}

func TestModel_BlinkThroughTimers(t *testing.T) {
	m := newTestModel(t, "abc", Options{Editor: editor.Config{BlinkInterval: time.Millisecond}})
	require.True(t, m.Session().CaretVisible())

	m = runCmds(t, m, m.Init(), 1)
	require.False(t, m.Session().CaretVisible())

	m = keys(m, tea.BlurMsg{})
	require.False(t, m.Focused())
	require.True(t, m.Session().CaretVisible())
}

func TestModel_OnChange(t *testing.T) {
	var events []ChangeEvent
	m := newTestModel(t, "ab", Options{OnChange: func(ev ChangeEvent) { events = append(events, ev) }})

	m = keys(m, tea.KeyMsg{Type: tea.KeyRight})
	require.Len(t, events, 1)
	require.Equal(t, buffer.Pos{Col: 1}, events[0].Caret)
	require.False(t, events[0].HasSelection)

	m = keys(m, tea.KeyMsg{Type: tea.KeyShiftRight})
	require.Len(t, events, 2)
	require.True(t, events[1].HasSelection)

	// Nothing changed.
	keys(m, tea.WindowSizeMsg{Width: 20, Height: 4})
	require.Len(t, events, 2)
}
