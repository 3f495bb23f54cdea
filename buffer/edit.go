package buffer

import (
	"strings"

	"github.com/iw2rmb/quill/internal/grapheme"
)

// Insert inserts text at off and returns the offset just past the inserted
// text.
func (b *Buffer) Insert(off int, text string) int {
	return b.Replace(off, 0, text)
}

// Remove deletes n offsets starting at off.
func (b *Buffer) Remove(off, n int) {
	b.Replace(off, n, "")
}

// Replace replaces n offsets starting at off with text and returns the
// offset just past the inserted text. The span is clamped into the
// document; negative n is treated as zero.
func (b *Buffer) Replace(off, n int, text string) int {
	if n < 0 {
		n = 0
	}
	start := b.OffsetToPos(off)
	end := b.OffsetToPos(off + n)
	next := b.PosToOffset(start)
	b.record(func() bool {
		ev, ok := b.applyEdit(Range{Start: start, End: end}, text, ChangeSourceLocal)
		if ok {
			next = ev.Offset + ev.Inserted
		}
		return ok
	})
	return next
}

// ReplaceRange replaces the text in r and returns the position just past
// the inserted text.
func (b *Buffer) ReplaceRange(r Range, text string) Pos {
	r = NormalizeRange(ClampRange(r, len(b.lines), b.LineLen))
	next := r.Start
	b.record(func() bool {
		ev, ok := b.applyEdit(r, text, ChangeSourceLocal)
		if ok {
			next = ev.Edit.RangeAfter.End
		}
		return ok
	})
	return next
}

// SetText replaces the whole document. Markers, folds and undo history are
// dropped.
func (b *Buffer) SetText(text string) {
	hadFolds := len(b.folds) > 0
	hadMarks := false
	b.folds = nil
	for i := range b.marks {
		hadMarks = hadMarks || len(b.marks[i]) > 0
		b.marks[i] = nil
	}
	b.hist = historyState{}
	b.atomic.changed = false

	last := len(b.lines) - 1
	r := Range{End: Pos{Row: last, Col: len(b.lines[last])}}
	if _, ok := b.applyEdit(r, text, ChangeSourceReset); !ok && (hadFolds || hadMarks) {
		b.version++
	}
	if hadFolds {
		b.emitFoldsChanged()
	}
}

// applyEdit replaces r with text, updates markers and folds, bumps versions
// and notifies listeners. r must be clamped.
func (b *Buffer) applyEdit(r Range, text string, src ChangeSource) (TextReplaced, bool) {
	r = NormalizeRange(r)
	startOff := b.PosToOffset(r.Start)
	endOff := b.PosToOffset(r.End)

	next, applied, changed := b.replaceRange(r, text)
	if !changed {
		return TextReplaced{}, false
	}

	ev := TextReplaced{
		Offset:        startOff,
		Removed:       endOff - startOff,
		RemovedLines:  r.End.Row - r.Start.Row,
		InsertedLines: next.Row - r.Start.Row,
		Edit:          applied,
		Source:        src,
		VersionBefore: b.version,
	}
	b.version++
	b.textVersion++
	b.startsValid = false
	ev.VersionAfter = b.version
	ev.Inserted = b.PosToOffset(next) - startOff

	foldsChanged := b.remapFolds(ev)

	b.emitTextReplaced(ev)
	if ev.SingleLine() {
		b.emitLineChanged(r.Start.Row)
	}
	if foldsChanged {
		b.emitFoldsChanged()
	}
	return ev, true
}

func (b *Buffer) replaceRange(r Range, text string) (next Pos, applied AppliedEdit, changed bool) {
	if r.IsEmpty() && text == "" {
		return r.Start, AppliedEdit{}, false
	}

	startRow, startCol := r.Start.Row, r.Start.Col
	endRow, endCol := r.End.Row, r.End.Col
	deletedText := textForLinesRange(b.lines, r)
	if deletedText == text {
		return r.Start, AppliedEdit{}, false
	}

	prefix := append([]string(nil), b.lines[startRow][:startCol]...)
	suffix := append([]string(nil), b.lines[endRow][endCol:]...)

	parts := strings.Split(text, "\n")
	ins := make([][]string, 0, len(parts))
	for _, p := range parts {
		ins = append(ins, grapheme.Split(p))
	}

	repl := make([][]string, 0, len(ins))
	if len(ins) == 1 {
		line := make([]string, 0, len(prefix)+len(ins[0])+len(suffix))
		line = append(line, prefix...)
		line = append(line, ins[0]...)
		line = append(line, suffix...)
		repl = append(repl, line)
		next = Pos{Row: startRow, Col: len(prefix) + len(ins[0])}
	} else {
		first := make([]string, 0, len(prefix)+len(ins[0]))
		first = append(first, prefix...)
		first = append(first, ins[0]...)
		repl = append(repl, first)

		for i := 1; i < len(ins)-1; i++ {
			repl = append(repl, ins[i])
		}

		lastPart := ins[len(ins)-1]
		last := make([]string, 0, len(lastPart)+len(suffix))
		last = append(last, lastPart...)
		last = append(last, suffix...)
		repl = append(repl, last)

		next = Pos{Row: startRow + len(ins) - 1, Col: len(lastPart)}
	}

	b.lines = spliceRows(b.lines, startRow, endRow, repl)

	// Markers of the first touched row stay with it; rows swallowed by the
	// edit lose theirs.
	marks := make([][]Marker, len(repl))
	marks[0] = b.marks[startRow]
	b.marks = spliceRows(b.marks, startRow, endRow, marks)

	applied = AppliedEdit{
		RangeBefore: r,
		RangeAfter:  Range{Start: r.Start, End: next},
		InsertText:  text,
		DeletedText: deletedText,
	}
	return next, applied, true
}

// spliceRows replaces rows [from, to] of s with repl.
func spliceRows[T any](s []T, from, to int, repl []T) []T {
	out := make([]T, 0, len(s)-(to-from+1)+len(repl))
	out = append(out, s[:from]...)
	out = append(out, repl...)
	out = append(out, s[to+1:]...)
	return out
}

func textForLinesRange(lines [][]string, r Range) string {
	if r.IsEmpty() {
		return ""
	}

	startRow, startCol := r.Start.Row, r.Start.Col
	endRow, endCol := r.End.Row, r.End.Col

	if startRow == endRow {
		return grapheme.Join(lines[startRow][startCol:endCol])
	}

	var sb strings.Builder
	for row := startRow; row <= endRow; row++ {
		if row > startRow {
			sb.WriteByte('\n')
		}
		partStart := 0
		partEnd := len(lines[row])
		if row == startRow {
			partStart = startCol
		}
		if row == endRow {
			partEnd = endCol
		}
		sb.WriteString(grapheme.Join(lines[row][partStart:partEnd]))
	}
	return sb.String()
}
