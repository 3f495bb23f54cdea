package teaview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/quill/editor"
	"github.com/iw2rmb/quill/internal/grapheme"
)

// minGutterDigits keeps the gutter from resizing while a short document
// grows.
const minGutterDigits = 3

// lineNumberWidth is the gutter width for n lines: the digits plus one
// column for the fold marker.
func lineNumberWidth(n int) int {
	return max(len(fmt.Sprint(n)), minGutterDigits) + 1
}

// View renders the visible rows. A tall line occupies its first row with
// text and the rest with blank padding.
func (m Model) View() string {
	s := m.sess
	vp := s.Viewport()
	if vp.Width <= 0 || vp.Height <= 0 || m.cells == nil {
		return ""
	}

	out := make([]string, 0, vp.Height)
	visual := s.LogicalToVisualLine(s.PixelYToLogicalLine(vp.Y))
	skip := vp.Y - s.LogicalLineToPixelY(s.VisualToLogicalLine(visual))
	for visual < s.VisualLineCount() && len(out) < vp.Height {
		row := s.VisualToLogicalLine(visual)
		h := s.LineHeight(row)
		for sub := max(skip, 0); sub < h && len(out) < vp.Height; sub++ {
			if sub == 0 {
				out = append(out, m.renderGutter(row)+m.renderLine(row))
			} else {
				out = append(out, m.renderGutter(-1))
			}
		}
		skip = 0
		visual++
	}
	for len(out) < vp.Height {
		out = append(out, m.renderGutter(-1))
	}

	view := strings.Join(out, "\n")
	if tip, x, y, ok := m.placeTooltip(vp.Width, vp.Height); ok {
		view = overlay.Composite(tip, view, overlay.Left, overlay.Top, x, y)
	}
	return view
}

// renderGutter draws the line number and fold marker of row. A negative
// row draws an empty gutter.
func (m Model) renderGutter(row int) string {
	if m.gutter == 0 {
		return ""
	}
	digits := m.gutter - 1
	if row < 0 {
		return m.style.Gutter.Render(strings.Repeat(" ", m.gutter))
	}
	num := m.style.LineNum
	if m.focused && row == m.sess.Caret().Pos.Row {
		num = m.style.LineNumActive
	}
	marker := " "
	if folds := m.buf.FoldsStartingOnLine(row); len(folds) > 0 {
		marker = "▾"
		if folds[0].Folded {
			marker = "▸"
		}
	}
	return num.Render(fmt.Sprintf("%*d", digits, row+1)) + m.style.Gutter.Render(marker)
}

type cellSpan struct{ start, end int }

// selectedColumns returns the selected column span of row.
func (m Model) selectedColumns(row, rawLen int) (cellSpan, bool) {
	sel, ok := m.sess.Selection()
	if !ok || sel.IsEmpty() {
		return cellSpan{}, false
	}
	r := sel.Range()
	if row < r.Start.Row || row > r.End.Row {
		return cellSpan{}, false
	}
	if sel.Mode == editor.SelectionBlock {
		c0, c1 := sel.Columns()
		return cellSpan{min(c0, rawLen), min(c1, rawLen)}, c0 < c1 && c0 < rawLen
	}
	span := cellSpan{0, rawLen}
	if row == r.Start.Row {
		span.start = r.Start.Col
	}
	if row == r.End.Row {
		span.end = r.End.Col
	}
	return span, span.start < span.end
}

func (m Model) caretStyle() lipgloss.Style {
	if m.sess.Caret().Shape == editor.CaretUnderscore {
		return m.style.Text.Underline(true)
	}
	return m.style.Cursor
}

// renderLine draws the tokens of row clipped to the horizontal scroll
// window.
func (m Model) renderLine(row int) string {
	s := m.sess
	vp := s.Viewport()
	vl := m.cells.VisualLine(row)
	left := vp.X
	right := left + max(vp.Width-m.gutter, 0)

	caret := s.Caret().Pos
	hasCaret := m.focused && s.CaretVisible() && caret.Row == row
	caretCell := -1
	if hasCaret {
		caretCell = m.cells.ColumnToVisualX(row, caret.Col)
	} else if r, x, ok := m.cells.FoldTailX(caret); ok && r == row {
		hasCaret = m.focused && s.CaretVisible()
		caretCell = x
	}
	tailCell, hasTail := m.cells.FoldTailCell(row)
	sel, hasSel := m.selectedColumns(row, vl.RawLen)

	var sb strings.Builder
	for _, tok := range vl.Tokens {
		l, r := max(tok.StartCell, left), min(tok.StartCell+tok.CellWidth, right)
		if l >= r {
			continue
		}
		style := m.style.Text
		switch {
		case hasCaret && caretCell == tok.StartCell:
			style = m.caretStyle()
		case hasTail && tok.StartCell >= tailCell:
			// Text after a fold, drawn plain.
		case tok.Kind == editor.VisualTokenVirtual:
			style = m.style.Fold.Inherit(m.style.Text)
		case hasSel && tok.DocStartCol < sel.end && tok.DocEndCol > sel.start:
			style = m.style.Selection.Inherit(m.style.Text)
		}
		text := tok.Text
		if r-l != tok.CellWidth {
			// Partial wide cluster: keep alignment with blanks.
			text = strings.Repeat(" ", r-l)
		} else if style.GetReverse() && isBlank(text) {
			// Terminals may elide styled trailing spaces.
			text = strings.ReplaceAll(text, " ", "\u00a0")
		}
		sb.WriteString(style.Render(text))
	}
	if hasCaret && caretCell >= vl.VisualLen() && caretCell >= left && caretCell < right {
		sb.WriteString(m.caretStyle().Render(" "))
	}
	return sb.String()
}

// placeTooltip renders a shown TextView and picks its top-left corner: the
// row under the hovered cell, or the rows above it when the view would run
// past the bottom edge.
func (m Model) placeTooltip(width, height int) (string, int, int, bool) {
	_, view, ok := m.sess.Tooltip()
	if !ok {
		return "", 0, 0, false
	}
	tv, ok := view.(*TextView)
	if !ok || tv.Text == "" {
		return "", 0, 0, false
	}
	at, _ := m.sess.TooltipPoint()

	lines := strings.Split(tv.Text, "\n")
	if len(lines) > height {
		lines = lines[:max(height, 1)]
	}
	w := 0
	for i, l := range lines {
		lines[i] = runewidth.Truncate(l, width, "…")
		w = max(w, runewidth.StringWidth(lines[i]))
	}
	for i, l := range lines {
		lines[i] = m.style.Tooltip.Render(runewidth.FillRight(l, w))
	}

	y := at.Y + 1
	if y+len(lines) > height {
		y = at.Y - len(lines)
	}
	y = clampInt(y, 0, max(height-len(lines), 0))
	x := clampInt(at.X, 0, max(width-w, 0))
	return strings.Join(lines, "\n"), x, y, true
}

func isBlank(s string) bool {
	for _, g := range grapheme.Split(s) {
		if !grapheme.IsSpace(g) {
			return false
		}
	}
	return s != ""
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
