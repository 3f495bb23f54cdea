package buffer

// Apply applies a sequence of text edits in order as one undo step. Each
// edit's range is interpreted against the buffer state at the time that
// edit is applied and is clamped into current document bounds. Every
// effective edit emits its own TextReplaced notification.
//
// Apply returns the position just past the last effective edit, or false
// when nothing changed.
func (b *Buffer) Apply(edits ...TextEdit) (Pos, bool) {
	if len(edits) == 0 {
		return Pos{}, false
	}

	var last Pos
	anyChanged := false
	b.record(func() bool {
		for _, e := range edits {
			r := NormalizeRange(ClampRange(e.Range, len(b.lines), b.LineLen))
			ev, ok := b.applyEdit(r, e.Text, ChangeSourceLocal)
			if !ok {
				continue
			}
			anyChanged = true
			last = ev.Edit.RangeAfter.End
		}
		return anyChanged
	})
	return b.ClampPos(last), anyChanged
}
