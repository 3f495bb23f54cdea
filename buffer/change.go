package buffer

// ChangeSource identifies where a change originated.
type ChangeSource uint8

const (
	ChangeSourceLocal ChangeSource = iota
	ChangeSourceUndo
	ChangeSourceRedo
	// ChangeSourceReset marks SetText replacing the whole document.
	ChangeSourceReset
)

func (s ChangeSource) String() string {
	switch s {
	case ChangeSourceLocal:
		return "local"
	case ChangeSourceUndo:
		return "undo"
	case ChangeSourceRedo:
		return "redo"
	case ChangeSourceReset:
		return "reset"
	default:
		return "unknown"
	}
}

// AppliedEdit describes one effective edit in position space.
type AppliedEdit struct {
	RangeBefore Range
	RangeAfter  Range
	InsertText  string
	DeletedText string
}

// TextReplaced reports that Removed offsets starting at Offset were replaced
// by Inserted offsets of new text.
type TextReplaced struct {
	Offset   int
	Removed  int
	Inserted int

	// Line breaks removed and inserted by the edit.
	RemovedLines  int
	InsertedLines int

	Edit          AppliedEdit
	Source        ChangeSource
	VersionBefore uint64
	VersionAfter  uint64
}

// StartRow is the first logical line touched by the edit.
func (e TextReplaced) StartRow() int { return e.Edit.RangeBefore.Start.Row }

// LineDelta is the change in line count caused by the edit.
func (e TextReplaced) LineDelta() int { return e.InsertedLines - e.RemovedLines }

// SingleLine reports whether the edit neither removed nor inserted a line
// break.
func (e TextReplaced) SingleLine() bool { return e.RemovedLines == 0 && e.InsertedLines == 0 }

// MapOffset maps an offset from before the edit to after it. Offsets inside
// the replaced span collapse to its start (GapBiasLeft) or to the end of the
// inserted text (GapBiasRight); the bias also decides which side of a pure
// insertion an offset equal to Offset lands on.
func (e TextReplaced) MapOffset(off int, bias GapBias) int {
	end := e.Offset + e.Removed
	switch {
	case off < e.Offset:
		return off
	case off > end:
		return off + e.Inserted - e.Removed
	case e.Removed == 0:
		if bias == GapBiasRight {
			return off + e.Inserted
		}
		return off
	case off == e.Offset:
		return off
	case off == end:
		return e.Offset + e.Inserted
	case bias == GapBiasRight:
		return e.Offset + e.Inserted
	default:
		return e.Offset
	}
}

// LineChanged reports that a single line needs to be measured and drawn
// again, for example because its markers changed.
type LineChanged struct {
	Row int
}

// FoldsChanged reports that fold segments were added, removed or toggled.
type FoldsChanged struct{}

// Listener receives buffer notifications. Nil callbacks are skipped.
// Callbacks run synchronously after the buffer state is updated.
type Listener struct {
	TextReplaced func(TextReplaced)
	LineChanged  func(LineChanged)
	FoldsChanged func(FoldsChanged)
}

type listenerEntry struct {
	id int
	l  Listener
}

// Subscribe registers l and returns a function that removes it.
func (b *Buffer) Subscribe(l Listener) (cancel func()) {
	b.nextListener++
	id := b.nextListener
	b.listeners = append(b.listeners, listenerEntry{id: id, l: l})
	return func() {
		for i, e := range b.listeners {
			if e.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

func (b *Buffer) emitTextReplaced(ev TextReplaced) {
	for _, e := range b.snapshotListeners() {
		if e.l.TextReplaced != nil {
			e.l.TextReplaced(ev)
		}
	}
}

func (b *Buffer) emitLineChanged(row int) {
	for _, e := range b.snapshotListeners() {
		if e.l.LineChanged != nil {
			e.l.LineChanged(LineChanged{Row: row})
		}
	}
}

func (b *Buffer) emitFoldsChanged() {
	for _, e := range b.snapshotListeners() {
		if e.l.FoldsChanged != nil {
			e.l.FoldsChanged(FoldsChanged{})
		}
	}
}

func (b *Buffer) snapshotListeners() []listenerEntry {
	if len(b.listeners) == 0 {
		return nil
	}
	return append([]listenerEntry(nil), b.listeners...)
}
