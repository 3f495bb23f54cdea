package editor

import (
	"strings"

	"github.com/iw2rmb/quill/buffer"
)

// GlyphMetrics answers horizontal layout questions for one logical line.
// x values are pixels from the start of the text area.
type GlyphMetrics interface {
	ColumnToVisualX(row, col int) int
	// VisualXToColumn returns the column whose boundary is nearest to x.
	VisualXToColumn(row, x int) int
	CharWidth() int
	LineHeight() int
}

// FoldTailMetrics is implemented by GlyphMetrics that draw the rest of a
// folded region's last line after its placeholder. The session maps those
// cells to the folded line instead of the fold row.
type FoldTailMetrics interface {
	// FoldTailLocation returns the location nearest to x when x falls in
	// the tail drawn on row.
	FoldTailLocation(row, x int) (buffer.Pos, bool)
	// FoldTailX returns the fold row and x of pos when pos is drawn as part
	// of a tail.
	FoldTailX(pos buffer.Pos) (row, x int, ok bool)
}

// CellMetrics is the monospace GlyphMetrics used when a host does not
// provide its own. Each cluster occupies one or two cells, tabs advance to
// the next stop, and the first line of a folded region draws the fold
// placeholder in place of the folded text, followed by whatever the last
// folded line holds after the fold's end.
type CellMetrics struct {
	buf       *buffer.Buffer
	tabWidth  int
	cellWidth int
	rowHeight int

	synced  bool
	version uint64
	folds   []foldRange
	tails   map[int]foldTail // by fold row
	lines   map[int]VisualLine
}

// foldTail is the text after the end of a fold spanning rows, drawn at the
// end of its fold row.
type foldTail struct {
	foldCol int // first column of the fold row it replaces
	row     int // last row of the fold
	col     int // fold end column on row
	n       int // clusters
}

func NewCellMetrics(buf *buffer.Buffer, tabWidth, cellWidth, rowHeight int) *CellMetrics {
	return &CellMetrics{
		buf:       buf,
		tabWidth:  max(tabWidth, 1),
		cellWidth: max(cellWidth, 1),
		rowHeight: max(rowHeight, 1),
		tails:     make(map[int]foldTail),
		lines:     make(map[int]VisualLine),
	}
}

func (m *CellMetrics) CharWidth() int  { return m.cellWidth }
func (m *CellMetrics) LineHeight() int { return m.rowHeight }

func (m *CellMetrics) ColumnToVisualX(row, col int) int {
	vl := m.VisualLine(row)
	if cell, ok := m.FoldTailCell(row); ok && col >= m.tails[row].foldCol {
		return cell * m.cellWidth
	}
	return vl.CellForDocCol(col) * m.cellWidth
}

func (m *CellMetrics) VisualXToColumn(row, x int) int {
	vl := m.VisualLine(row)
	if x <= 0 {
		return vl.DocColForCell(0)
	}
	tok, ok := vl.TokenAt(x / m.cellWidth)
	if !ok {
		return vl.RawLen
	}
	if tok.Kind == VisualTokenVirtual {
		return tok.DocStartCol
	}
	left := tok.StartCell * m.cellWidth
	width := tok.CellWidth * m.cellWidth
	if 2*(x-left) >= width {
		return tok.DocEndCol
	}
	return tok.DocStartCol
}

// VisualLine returns the cell map of row, cached until the buffer changes.
func (m *CellMetrics) VisualLine(row int) VisualLine {
	m.sync()
	if vl, ok := m.lines[row]; ok {
		return vl
	}
	vl := BuildVisualLine(m.buf.LineClusters(row), m.virtualText(row), m.tabWidth)
	m.lines[row] = vl
	return vl
}

func (m *CellMetrics) sync() {
	if v := m.buf.Version(); !m.synced || v != m.version {
		m.synced = true
		m.version = v
		m.folds = computeFoldRanges(m.buf)
		clear(m.tails)
		for _, fr := range m.folds {
			if fr.lastRow == fr.foldRow {
				continue
			}
			m.tails[fr.foldRow] = foldTail{
				foldCol: fr.startCol,
				row:     fr.lastRow,
				col:     fr.endCol,
				n:       max(m.buf.LineLen(fr.lastRow)-fr.endCol, 0),
			}
		}
		clear(m.lines)
	}
}

// FoldTailCell returns the first cell of the fold tail drawn on row. A fold
// ending at the end of its last line has an empty tail starting at the end
// of the row.
func (m *CellMetrics) FoldTailCell(row int) (int, bool) {
	vl := m.VisualLine(row)
	t, ok := m.tails[row]
	if !ok {
		return 0, false
	}
	first := len(vl.Tokens) - t.n
	if t.n == 0 || first < 0 {
		return vl.VisualLen(), true
	}
	return vl.Tokens[first].StartCell, true
}

func (m *CellMetrics) FoldTailLocation(row, x int) (buffer.Pos, bool) {
	start, ok := m.FoldTailCell(row)
	if !ok || x < start*m.cellWidth {
		return buffer.Pos{}, false
	}
	t := m.tails[row]
	vl := m.VisualLine(row)
	first := len(vl.Tokens) - t.n
	col := t.col + t.n
	for i := max(first, 0); i < len(vl.Tokens); i++ {
		tok := vl.Tokens[i]
		left := tok.StartCell * m.cellWidth
		width := tok.CellWidth * m.cellWidth
		if x >= left+width {
			continue
		}
		col = t.col + i - first
		if 2*(x-left) >= width {
			col++
		}
		break
	}
	if col == t.col {
		// The fold start shares the tail's left edge and stays visible.
		return buffer.Pos{Row: row, Col: t.foldCol}, true
	}
	return buffer.Pos{Row: t.row, Col: col}, true
}

func (m *CellMetrics) FoldTailX(pos buffer.Pos) (int, int, bool) {
	m.sync()
	for foldRow, t := range m.tails {
		if pos.Row != t.row || pos.Col < t.col {
			continue
		}
		start, _ := m.FoldTailCell(foldRow)
		vl := m.VisualLine(foldRow)
		i := len(vl.Tokens) - t.n + pos.Col - t.col
		if pos.Col-t.col >= t.n || i < 0 {
			return foldRow, max(vl.VisualLen(), start) * m.cellWidth, true
		}
		return foldRow, vl.Tokens[i].StartCell * m.cellWidth, true
	}
	return 0, 0, false
}

// virtualText hides the folded text on the first line of an outermost
// folded region and shows its placeholder instead. A fold spanning rows
// deletes to the end of the row and re-anchors the text after its end
// there.
func (m *CellMetrics) virtualText(row int) VirtualText {
	var vt VirtualText
	for _, fr := range m.folds {
		if fr.foldRow != row {
			continue
		}
		end := m.buf.LineLen(row)
		if fr.lastRow == row {
			end = fr.endCol
		}
		vt.Deletions = append(vt.Deletions, VirtualDeletion{StartCol: fr.startCol, EndCol: end})
		vt.Insertions = append(vt.Insertions, VirtualInsertion{Col: fr.startCol, Text: fr.placeholder})
		if t, ok := m.tails[row]; ok && t.n > 0 {
			tail := m.buf.LineClusters(t.row)[t.col:]
			vt.Insertions = append(vt.Insertions, VirtualInsertion{Col: end, Text: strings.Join(tail, "")})
		}
	}
	return vt
}
