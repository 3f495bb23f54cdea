package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/editor"
	"github.com/iw2rmb/quill/internal/config"
	"github.com/iw2rmb/quill/teaview"
)

var errNoPath = errors.New("no file to save to")

type appKeys struct {
	Save, Quit key.Binding
}

var keys = appKeys{
	Save: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Quit: key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
}

// app wraps the editor with a status line, saving and quitting.
type app struct {
	editor teaview.Model
	path   string
	log    zerolog.Logger
	status lipgloss.Style

	saved   uint64
	message string
}

func newApp(buf *buffer.Buffer, path string, cfg *config.Config, profile termenv.Profile, log *zerolog.Logger) *app {
	ecfg := cfg.SessionConfig()
	ecfg.Logger = log
	style := teaview.StyleForProfile(profile)

	m := teaview.New(buf, teaview.Options{
		Editor:          ecfg,
		Style:           &style,
		ShowLineNumbers: cfg.View.LineNumbers,
		ReadOnly:        cfg.View.ReadOnly,
		ScrollPolicy:    cfg.View.ScrollPolicy(),
		Clipboard:       &teaview.MemoryClipboard{},
		Tooltips:        []editor.TooltipProvider{&teaview.TextTooltips{Lookup: wordTooltip}},
	})
	m.Session().SetCaretShape(cfg.View.CaretShape())

	return &app{
		editor: m,
		path:   path,
		log:    log.With().Str("component", "demo").Logger(),
		status: lipgloss.NewStyle().Reverse(true),
		saved:  buf.TextVersion(),
	}
}

func (a *app) moveToByteOffset(off int) error {
	s := a.editor.Session()
	pos, ok := a.editor.Buffer().PosFromByteOffset(off, buffer.ConvertPolicy{ClampMode: buffer.OffsetError})
	if !ok {
		return fmt.Errorf("offset %d is outside the document or splits a character", off)
	}
	s.SetCaret(pos)
	s.CenterTo(pos)
	return nil
}

func (a *app) Init() tea.Cmd { return a.editor.Init() }

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// The last row is the status line.
		msg.Height = max(msg.Height-1, 0)
		var cmd tea.Cmd
		a.editor, cmd = a.editor.Update(msg)
		return a, cmd
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Save):
			a.save()
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

func (a *app) save() {
	err := a.write()
	switch {
	case errors.Is(err, errNoPath):
		a.message = "no file name"
	case err != nil:
		a.log.Error().Err(err).Str("path", a.path).Msg("save")
		a.message = "save failed: " + err.Error()
	default:
		a.saved = a.editor.Buffer().TextVersion()
		a.message = "saved " + a.path
		a.log.Info().Str("path", a.path).Msg("saved")
	}
}

func (a *app) write() error {
	if a.path == "" {
		return errNoPath
	}
	return os.WriteFile(a.path, []byte(a.editor.Buffer().Text()), 0o644)
}

func (a *app) View() string {
	return a.editor.View() + "\n" + a.statusLine()
}

func (a *app) statusLine() string {
	s := a.editor.Session()
	caret := s.Caret().Pos
	name := a.path
	if name == "" {
		name = "[scratch]"
	}
	if a.editor.Buffer().TextVersion() != a.saved {
		name += " *"
	}
	line := fmt.Sprintf(" %s  %d:%d  %s", name, caret.Row+1, caret.Col+1, s.SelectionState())
	if a.message != "" {
		line += "  " + a.message
	}
	if w := s.Viewport().Width; w > 0 {
		line = lipgloss.NewStyle().Width(w).MaxWidth(w).Render(line)
	}
	return a.status.Render(line)
}
