package editor

import (
	"strings"

	"github.com/iw2rmb/quill/internal/grapheme"
)

type VisualTokenKind int

const (
	VisualTokenDoc VisualTokenKind = iota
	VisualTokenVirtual
)

// VisualToken is one drawn cluster of a visual line.
type VisualToken struct {
	Kind VisualTokenKind

	// Text is the rendered token text. Tabs are expanded to spaces.
	Text string

	StartCell int
	CellWidth int

	// DocStartCol/DocEndCol span the raw line clusters this token draws.
	// Virtual tokens have DocStartCol == DocEndCol == their anchor.
	DocStartCol int
	DocEndCol   int
}

// VisualLine is the cell map of one logical line after virtual text is
// applied.
type VisualLine struct {
	RawLen int // cluster length of the raw buffer line

	Tokens []VisualToken

	// CellToDocCol maps each cell to a raw column. Every cell of a wide
	// cluster maps to the same column; inserted cells map to their anchor.
	CellToDocCol []int

	// DocColToCell maps raw columns to a cell offset. Deleted columns map to
	// the next visible column (or the end of the line).
	DocColToCell []int
}

// BuildVisualLine lays out clusters on a monospace cell grid, expanding tabs
// to tabWidth stops.
func BuildVisualLine(clusters []string, vt VirtualText, tabWidth int) VisualLine {
	rawLen := len(clusters)
	if tabWidth <= 0 {
		tabWidth = 4
	}
	vt = normalizeVirtualText(vt, rawLen)

	deleted := make([]bool, rawLen)
	for _, d := range vt.Deletions {
		for i := d.StartCol; i < d.EndCol; i++ {
			deleted[i] = true
		}
	}

	var (
		tokens []VisualToken
		cells  []int
		insIdx int
	)
	appendToken := func(kind VisualTokenKind, text string, width, docStart, docEnd int) {
		width = max(width, 1)
		if text == "" {
			text = " "
		}
		tokens = append(tokens, VisualToken{
			Kind:        kind,
			Text:        text,
			StartCell:   len(cells),
			CellWidth:   width,
			DocStartCol: docStart,
			DocEndCol:   docEnd,
		})
		for i := 0; i < width; i++ {
			cells = append(cells, docStart)
		}
	}
	appendInsertion := func(in VirtualInsertion) {
		for _, c := range grapheme.Split(in.Text) {
			w := cellWidth(c, len(cells), tabWidth)
			if c == "\t" {
				c = strings.Repeat(" ", w)
			}
			appendToken(VisualTokenVirtual, c, w, in.Col, in.Col)
		}
	}

	for col, c := range clusters {
		if deleted[col] {
			continue
		}
		for insIdx < len(vt.Insertions) && vt.Insertions[insIdx].Col <= col {
			appendInsertion(vt.Insertions[insIdx])
			insIdx++
		}
		w := cellWidth(c, len(cells), tabWidth)
		text := c
		if c == "\t" {
			text = strings.Repeat(" ", w)
		}
		appendToken(VisualTokenDoc, text, w, col, col+1)
	}
	for ; insIdx < len(vt.Insertions); insIdx++ {
		appendInsertion(vt.Insertions[insIdx])
	}

	visualLen := len(cells)
	docToCell := make([]int, rawLen+1)
	for i := range docToCell {
		docToCell[i] = visualLen
	}
	for _, tok := range tokens {
		if tok.Kind == VisualTokenDoc {
			docToCell[tok.DocStartCol] = tok.StartCell
		}
	}
	for c := rawLen - 1; c >= 0; c-- {
		if deleted[c] {
			docToCell[c] = docToCell[c+1]
		}
	}

	return VisualLine{
		RawLen:       rawLen,
		Tokens:       tokens,
		CellToDocCol: cells,
		DocColToCell: docToCell,
	}
}

func (vl VisualLine) VisualLen() int { return len(vl.CellToDocCol) }

// DocColForCell returns the raw column drawn at cell x. Cells past the end
// map to the end of the line.
func (vl VisualLine) DocColForCell(x int) int {
	if x < 0 {
		x = 0
	}
	if x >= len(vl.CellToDocCol) {
		return vl.RawLen
	}
	return clampInt(vl.CellToDocCol[x], 0, vl.RawLen)
}

// CellForDocCol returns the first cell of raw column col.
func (vl VisualLine) CellForDocCol(col int) int {
	col = clampInt(col, 0, vl.RawLen)
	if len(vl.DocColToCell) == 0 {
		return 0
	}
	return clampInt(vl.DocColToCell[col], 0, len(vl.CellToDocCol))
}

// TokenAt returns the token covering cell x.
func (vl VisualLine) TokenAt(x int) (VisualToken, bool) {
	for _, tok := range vl.Tokens {
		if x >= tok.StartCell && x < tok.StartCell+tok.CellWidth {
			return tok, true
		}
	}
	return VisualToken{}, false
}

func tabAdvance(visualCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return tabWidth - visualCol%tabWidth
}

func cellWidth(cluster string, visualCol, tabWidth int) int {
	if cluster == "\t" {
		return tabAdvance(visualCol, tabWidth)
	}
	return grapheme.Width(cluster)
}
