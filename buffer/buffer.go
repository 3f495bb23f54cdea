package buffer

import (
	"sort"
	"strings"

	"github.com/iw2rmb/quill/internal/grapheme"
)

// DefaultFoldPlaceholder is shown in place of folded text when a fold does
// not carry its own placeholder.
const DefaultFoldPlaceholder = "..."

type Options struct {
	HistoryLimit    int    // default: 1000; negative disables undo
	FoldPlaceholder string // default: DefaultFoldPlaceholder
}

// Buffer holds text as lines of grapheme clusters together with line markers
// and fold segments. It is not safe for concurrent use.
type Buffer struct {
	lines [][]string
	marks [][]Marker // parallel to lines

	folds    []Fold // sorted by Start, then ID
	nextFold FoldID

	version     uint64
	textVersion uint64

	starts      []int
	startsValid bool

	listeners    []listenerEntry
	nextListener int

	atomic atomicState
	opt    Options
	hist   historyState
}

func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	if opt.FoldPlaceholder == "" {
		opt.FoldPlaceholder = DefaultFoldPlaceholder
	}
	lines := splitLines(text)
	return &Buffer{
		lines:    lines,
		marks:    make([][]Marker, len(lines)),
		nextFold: 1,
		opt:      opt,
	}
}

func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range line {
			sb.WriteString(c)
		}
	}
	return sb.String()
}

// Version increases on every effective change of text, markers or folds.
func (b *Buffer) Version() uint64 { return b.version }

// TextVersion increases only when the text changes.
func (b *Buffer) TextVersion() uint64 { return b.textVersion }

func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the text of row without its line break. Out of range rows
// yield "".
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return grapheme.Join(b.lines[row])
}

// LineClusters returns the grapheme clusters of row. The slice is owned by
// the buffer and must not be modified.
func (b *Buffer) LineClusters(row int) []string {
	if row < 0 || row >= len(b.lines) {
		return nil
	}
	return b.lines[row]
}

// LineLen returns the number of grapheme clusters in row.
func (b *Buffer) LineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

// Len returns the document length in offsets.
func (b *Buffer) Len() int {
	starts := b.lineStarts()
	last := len(b.lines) - 1
	return starts[last] + len(b.lines[last])
}

// LineStart returns the offset of the first cluster of row. Rows are
// clamped into the document.
func (b *Buffer) LineStart(row int) int {
	starts := b.lineStarts()
	return starts[clampInt(row, 0, len(starts)-1)]
}

// OffsetToPos converts a document offset to a position. Offsets outside
// [0, Len()] are clamped.
func (b *Buffer) OffsetToPos(off int) Pos {
	starts := b.lineStarts()
	off = clampInt(off, 0, b.Len())
	row := sort.Search(len(starts), func(i int) bool { return starts[i] > off }) - 1
	if row < 0 {
		row = 0
	}
	return Pos{Row: row, Col: clampInt(off-starts[row], 0, len(b.lines[row]))}
}

// PosToOffset converts a position to a document offset after clamping it
// into the document.
func (b *Buffer) PosToOffset(p Pos) int {
	p = b.ClampPos(p)
	return b.lineStarts()[p.Row] + p.Col
}

func (b *Buffer) ClampPos(p Pos) Pos {
	return ClampPos(p, len(b.lines), b.LineLen)
}

// TextIn returns the text covered by r after clamping and normalizing it.
func (b *Buffer) TextIn(r Range) string {
	return textForLinesRange(b.lines, NormalizeRange(ClampRange(r, len(b.lines), b.LineLen)))
}

// TextAt returns n offsets of text starting at off.
func (b *Buffer) TextAt(off, n int) string {
	return b.TextIn(Range{Start: b.OffsetToPos(off), End: b.OffsetToPos(off + n)})
}

func (b *Buffer) lineStarts() []int {
	if b.startsValid {
		return b.starts
	}
	starts := b.starts[:0]
	off := 0
	for _, line := range b.lines {
		starts = append(starts, off)
		off += len(line) + 1
	}
	b.starts = starts
	b.startsValid = true
	return starts
}

func splitLines(text string) [][]string {
	parts := strings.Split(text, "\n")
	lines := make([][]string, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, grapheme.Split(s))
	}
	if len(lines) == 0 {
		lines = append(lines, nil)
	}
	return lines
}
