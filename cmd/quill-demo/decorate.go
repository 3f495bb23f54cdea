package main

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/editor"
	"github.com/iw2rmb/quill/internal/grapheme"
)

// wordTooltip describes the word under the pointer.
func wordTooltip(s *editor.Session, offset int) (editor.TooltipItem, bool) {
	buf := s.Buffer()
	r := buf.WordRange(buf.OffsetToPos(offset))
	if r.IsEmpty() {
		return editor.TooltipItem{}, false
	}
	word := buf.TextIn(r)
	if strings.TrimSpace(word) == "" {
		return editor.TooltipItem{}, false
	}
	start, end := buf.PosToOffset(r.Start), buf.PosToOffset(r.End)
	return editor.TooltipItem{
		Start: start,
		End:   end,
		Data:  fmt.Sprintf("%q  line %d  offsets %d..%d", word, r.Start.Row+1, start, end),
	}, true
}

// addBraceFolds adds an expanded fold for every brace pair that spans more
// than one line. It returns the number of folds added.
func addBraceFolds(buf *buffer.Buffer) int {
	var open []int
	n := 0
	for off, c := range grapheme.Split(buf.Text()) {
		switch c {
		case "{":
			open = append(open, off)
		case "}":
			if len(open) == 0 {
				continue
			}
			start := open[len(open)-1]
			open = open[:len(open)-1]
			if buf.OffsetToPos(start).Row == buf.OffsetToPos(off).Row {
				continue
			}
			if _, err := buf.AddFold(start, off+1, false, "{...}"); err == nil {
				n++
			}
		}
	}
	return n
}

// noteMarker gives a line one extra blank row below it. Note markers are
// never removed, so they need no identity.
type noteMarker struct{}

func (noteMarker) Kind() string { return "note" }

func (noteMarker) LineHeight(rowHeight int) int { return 2 * rowHeight }

// markNotes adds a noteMarker to every line containing NOTE.
func markNotes(buf *buffer.Buffer) {
	for row := range buf.LineCount() {
		if strings.Contains(buf.Line(row), "NOTE") {
			buf.AddMarker(row, noteMarker{})
		}
	}
}
