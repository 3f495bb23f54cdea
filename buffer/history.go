package buffer

// Undo history keeps whole-text snapshots. Restoring a snapshot replaces
// only the span between the common prefix and suffix of the two texts so
// listeners, folds and markers see a minimal edit.

type historyState struct {
	undo []string
	redo []string
}

type atomicState struct {
	depth   int
	before  string
	changed bool
}

// BeginAtomic opens an atomic group: every edit until the matching
// EndAtomic becomes a single undo step. Groups nest; only the outermost
// one records history.
func (b *Buffer) BeginAtomic() {
	if b.atomic.depth == 0 {
		b.atomic.changed = false
		if b.historyEnabled() {
			b.atomic.before = b.Text()
		}
	}
	b.atomic.depth++
}

// EndAtomic closes the innermost atomic group. It returns false when no
// group is open.
func (b *Buffer) EndAtomic() bool {
	if b.atomic.depth == 0 {
		return false
	}
	b.atomic.depth--
	if b.atomic.depth > 0 {
		return true
	}
	if b.atomic.changed {
		b.recordUndo(b.atomic.before)
	}
	b.atomic = atomicState{}
	return true
}

// InAtomic reports whether an atomic group is open.
func (b *Buffer) InAtomic() bool { return b.atomic.depth > 0 }

// record runs fn, which reports whether it changed the text, and records
// one undo step unless an atomic group collects it.
func (b *Buffer) record(fn func() bool) {
	if b.atomic.depth > 0 {
		if fn() {
			b.atomic.changed = true
		}
		return
	}
	var prev string
	if b.historyEnabled() {
		prev = b.Text()
	}
	if fn() {
		b.recordUndo(prev)
	}
}

func (b *Buffer) historyEnabled() bool { return b.opt.HistoryLimit > 0 }

func (b *Buffer) recordUndo(prev string) {
	if !b.historyEnabled() {
		return
	}
	b.hist.undo = pushBounded(b.hist.undo, prev, b.opt.HistoryLimit)
	b.hist.redo = nil
}

func pushBounded(stack []string, s string, limit int) []string {
	stack = append(stack, s)
	if len(stack) > limit {
		stack = stack[len(stack)-limit:]
	}
	return stack
}

func (b *Buffer) CanUndo() bool { return len(b.hist.undo) > 0 && b.atomic.depth == 0 }

func (b *Buffer) CanRedo() bool { return len(b.hist.redo) > 0 && b.atomic.depth == 0 }

// Undo restores the text before the last undo step. It is refused while an
// atomic group is open.
func (b *Buffer) Undo() bool {
	if !b.CanUndo() {
		return false
	}
	cur := b.Text()
	i := len(b.hist.undo) - 1
	prev := b.hist.undo[i]
	b.hist.undo = b.hist.undo[:i]
	b.hist.redo = append(b.hist.redo, cur)
	b.restore(prev, ChangeSourceUndo)
	return true
}

func (b *Buffer) Redo() bool {
	if !b.CanRedo() {
		return false
	}
	cur := b.Text()
	i := len(b.hist.redo) - 1
	next := b.hist.redo[i]
	b.hist.redo = b.hist.redo[:i]
	b.hist.undo = pushBounded(b.hist.undo, cur, b.opt.HistoryLimit)
	b.restore(next, ChangeSourceRedo)
	return true
}

func (b *Buffer) restore(text string, src ChangeSource) {
	oldFlat := flatten(b.lines)
	newFlat := flatten(splitLines(text))

	prefix := 0
	for prefix < len(oldFlat) && prefix < len(newFlat) && oldFlat[prefix] == newFlat[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(oldFlat)-prefix && suffix < len(newFlat)-prefix &&
		oldFlat[len(oldFlat)-1-suffix] == newFlat[len(newFlat)-1-suffix] {
		suffix++
	}

	var ins []string
	if n := len(newFlat) - suffix; n > prefix {
		ins = newFlat[prefix:n]
	}
	r := Range{
		Start: b.OffsetToPos(prefix),
		End:   b.OffsetToPos(len(oldFlat) - suffix),
	}
	b.applyEdit(r, joinFlat(ins), src)
}

// flatten lays lines out as offsets: one entry per cluster plus "\n" per
// line break.
func flatten(lines [][]string) []string {
	n := len(lines) - 1
	for _, l := range lines {
		n += len(l)
	}
	out := make([]string, 0, n)
	for i, l := range lines {
		if i > 0 {
			out = append(out, "\n")
		}
		out = append(out, l...)
	}
	return out
}

func joinFlat(flat []string) string {
	n := 0
	for _, s := range flat {
		n += len(s)
	}
	buf := make([]byte, 0, n)
	for _, s := range flat {
		buf = append(buf, s...)
	}
	return string(buf)
}
