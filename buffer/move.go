package buffer

import "github.com/iw2rmb/quill/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

// Move describes a caret motion. Extend asks the caller to grow the
// selection instead of clearing it; the buffer itself ignores it.
type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool
}

// MovePos returns where p lands after m. The result is clamped into the
// document.
func (b *Buffer) MovePos(p Pos, m Move) Pos {
	p = b.ClampPos(p)
	switch m.Unit {
	case MoveGrapheme:
		return b.moveGrapheme(p, m.Dir)
	case MoveWord:
		return b.moveWord(p, m.Dir)
	case MoveLine:
		return b.moveLine(p, m.Dir)
	case MoveDoc:
		return b.moveDoc(p, m.Dir)
	default:
		return p
	}
}

func (b *Buffer) moveGrapheme(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col
	lastRow := len(b.lines) - 1

	switch dir {
	case DirLeft:
		if col > 0 {
			return Pos{Row: row, Col: col - 1}
		}
		if row == 0 {
			return p
		}
		return Pos{Row: row - 1, Col: len(b.lines[row-1])}
	case DirRight:
		if col < len(b.lines[row]) {
			return Pos{Row: row, Col: col + 1}
		}
		if row == lastRow {
			return p
		}
		return Pos{Row: row + 1}
	default:
		return b.moveLine(p, dir)
	}
}

func (b *Buffer) moveWord(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col
	line := b.lines[row]

	switch dir {
	case DirLeft:
		if col == 0 && row > 0 {
			return Pos{Row: row - 1, Col: len(b.lines[row-1])}
		}
		return Pos{Row: row, Col: prevWordBoundary(line, col)}
	case DirRight:
		if col == len(line) && row < len(b.lines)-1 {
			return Pos{Row: row + 1}
		}
		return Pos{Row: row, Col: nextWordBoundary(line, col)}
	default:
		return b.moveLine(p, dir)
	}
}

func (b *Buffer) moveLine(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col
	lastRow := len(b.lines) - 1

	switch dir {
	case DirHome:
		return Pos{Row: row}
	case DirEnd:
		return Pos{Row: row, Col: len(b.lines[row])}
	case DirUp:
		if row == 0 {
			return Pos{}
		}
		return Pos{Row: row - 1, Col: min(col, len(b.lines[row-1]))}
	case DirDown:
		if row == lastRow {
			return Pos{Row: row, Col: len(b.lines[row])}
		}
		return Pos{Row: row + 1, Col: min(col, len(b.lines[row+1]))}
	default:
		return p
	}
}

func (b *Buffer) moveDoc(p Pos, dir MoveDir) Pos {
	lastRow := len(b.lines) - 1

	switch dir {
	case DirHome, DirUp, DirLeft:
		return Pos{}
	case DirEnd, DirDown, DirRight:
		return Pos{Row: lastRow, Col: len(b.lines[lastRow])}
	default:
		return p
	}
}

// WordRange returns the run of same-class clusters around p on its line:
// word characters, whitespace, or punctuation. An empty line yields an
// empty range at p.
func (b *Buffer) WordRange(p Pos) Range {
	p = b.ClampPos(p)
	line := b.lines[p.Row]
	if len(line) == 0 {
		return Range{Start: p, End: p}
	}
	at := p.Col
	if at == len(line) {
		at--
	}
	class := clusterClass(line[at])
	start, end := at, at+1
	for start > 0 && clusterClass(line[start-1]) == class {
		start--
	}
	for end < len(line) && clusterClass(line[end]) == class {
		end++
	}
	return Range{Start: Pos{Row: p.Row, Col: start}, End: Pos{Row: p.Row, Col: end}}
}

func clusterClass(c string) int {
	switch {
	case grapheme.IsSpace(c):
		return 1
	case grapheme.IsPunct(c):
		return 2
	default:
		return 0
	}
}

// Word boundary rules: skip whitespace, then skip non-whitespace. A line
// break is a hard boundary.
func prevWordBoundary(line []string, col int) int {
	i := clampInt(col, 0, len(line))
	for i > 0 && grapheme.IsSpace(line[i-1]) {
		i--
	}
	for i > 0 && !grapheme.IsSpace(line[i-1]) {
		i--
	}
	return i
}

func nextWordBoundary(line []string, col int) int {
	i := clampInt(col, 0, len(line))
	for i < len(line) && grapheme.IsSpace(line[i]) {
		i++
	}
	for i < len(line) && !grapheme.IsSpace(line[i]) {
		i++
	}
	return i
}
