package teaview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/editor"
)

func (m Model) updateKey(msg tea.KeyMsg) Model {
	if !m.focused {
		return m
	}
	s := m.sess

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.opts.ReadOnly {
			s.InsertText(normalizeNewlines(string(msg.Runes)))
			s.ScrollTo(s.Caret().Pos)
		}
		return m
	}

	km := m.opts.KeyMap
	move := func(unit buffer.MoveUnit, dir buffer.MoveDir, extend bool) {
		s.MoveCaret(buffer.Move{Unit: unit, Dir: dir, Extend: extend})
	}
	edit := func(fn func()) {
		if m.opts.ReadOnly {
			return
		}
		fn()
		s.ScrollTo(s.Caret().Pos)
	}

	switch {
	case key.Matches(msg, km.Left):
		move(buffer.MoveGrapheme, buffer.DirLeft, false)
	case key.Matches(msg, km.Right):
		move(buffer.MoveGrapheme, buffer.DirRight, false)
	case key.Matches(msg, km.Up):
		move(buffer.MoveLine, buffer.DirUp, false)
	case key.Matches(msg, km.Down):
		move(buffer.MoveLine, buffer.DirDown, false)

	case key.Matches(msg, km.ShiftLeft):
		move(buffer.MoveGrapheme, buffer.DirLeft, true)
	case key.Matches(msg, km.ShiftRight):
		move(buffer.MoveGrapheme, buffer.DirRight, true)
	case key.Matches(msg, km.ShiftUp):
		move(buffer.MoveLine, buffer.DirUp, true)
	case key.Matches(msg, km.ShiftDown):
		move(buffer.MoveLine, buffer.DirDown, true)

	case key.Matches(msg, km.WordLeft):
		move(buffer.MoveWord, buffer.DirLeft, false)
	case key.Matches(msg, km.WordRight):
		move(buffer.MoveWord, buffer.DirRight, false)

	case key.Matches(msg, km.Home):
		move(buffer.MoveLine, buffer.DirHome, false)
	case key.Matches(msg, km.End):
		move(buffer.MoveLine, buffer.DirEnd, false)
	case key.Matches(msg, km.DocStart):
		move(buffer.MoveDoc, buffer.DirHome, false)
	case key.Matches(msg, km.DocEnd):
		move(buffer.MoveDoc, buffer.DirEnd, false)
	case key.Matches(msg, km.PageUp):
		m.page(buffer.DirUp)
	case key.Matches(msg, km.PageDown):
		m.page(buffer.DirDown)

	case key.Matches(msg, km.Backspace):
		edit(s.DeleteBackward)
	case key.Matches(msg, km.Delete):
		edit(s.DeleteForward)
	case key.Matches(msg, km.Enter):
		edit(func() { s.InsertText("\n") })
	case key.Matches(msg, km.Tab):
		edit(func() { s.InsertText("\t") })

	case key.Matches(msg, km.Undo):
		edit(func() { s.Undo() })
	case key.Matches(msg, km.Redo):
		edit(func() { s.Redo() })

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		m.copySelection()
		edit(s.DeleteSelection)
	case key.Matches(msg, km.Paste):
		edit(m.pasteClipboard)

	case key.Matches(msg, km.SelectAll):
		s.SelectAll()
	case key.Matches(msg, km.BlockMode):
		m.toggleBlockMode()
	case key.Matches(msg, km.ToggleFold):
		s.ToggleFoldAtLine(s.Caret().Pos.Row)
		s.ScrollTo(s.Caret().Pos)
	case key.Matches(msg, km.Escape):
		s.ClearSelection()
		s.HideTooltip()

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			edit(func() { s.InsertText(string(msg.Runes)) })
		} else if msg.Type == tea.KeySpace {
			edit(func() { s.InsertText(" ") })
		}
	}
	return m
}

// page moves the caret by one viewport height.
func (m Model) page(dir buffer.MoveDir) {
	s := m.sess
	n := max(s.Viewport().Height-1, 1)
	s.BeginUpdate()
	for range n {
		s.MoveCaret(buffer.Move{Unit: buffer.MoveLine, Dir: dir})
	}
	s.EndUpdate()
}

func (m Model) toggleBlockMode() {
	s := m.sess
	mode := editor.SelectionBlock
	if sel, ok := s.Selection(); ok && sel.Mode == editor.SelectionBlock {
		mode = editor.SelectionStream
	}
	s.SetSelectionMode(mode)
}

func (m Model) copySelection() {
	if m.opts.Clipboard == nil {
		return
	}
	text := m.sess.SelectedText()
	if text == "" {
		return
	}
	if err := m.opts.Clipboard.WriteText(text); err != nil {
		m.log.Warn().Err(err).Msg("clipboard write")
	}
}

func (m Model) pasteClipboard() {
	if m.opts.Clipboard == nil {
		return
	}
	text, err := m.opts.Clipboard.ReadText()
	if err != nil {
		m.log.Warn().Err(err).Msg("clipboard read")
		return
	}
	if text == "" {
		return
	}
	m.sess.InsertText(normalizeNewlines(text))
}

// normalizeNewlines converts newlines from external sources.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
