package buffer

import (
	"errors"
	"sort"
)

var (
	ErrInvalidFold = errors.New("buffer: fold end precedes start")
	ErrUnknownFold = errors.New("buffer: unknown fold")
)

type FoldID int

// Fold is a collapsible span [Start, End) of document offsets. A folded
// fold hides the lines after its first line up to and including the line
// containing End.
type Fold struct {
	ID          FoldID
	Start       int
	End         int
	Folded      bool
	Placeholder string
}

func (f Fold) Len() int { return f.End - f.Start }

// AddFold registers a fold over [start, end). Offsets are clamped into the
// document; end < start fails with ErrInvalidFold. An empty placeholder
// selects the buffer default.
func (b *Buffer) AddFold(start, end int, folded bool, placeholder string) (Fold, error) {
	if end < start {
		return Fold{}, ErrInvalidFold
	}
	n := b.Len()
	if placeholder == "" {
		placeholder = b.opt.FoldPlaceholder
	}
	f := Fold{
		ID:          b.nextFold,
		Start:       clampInt(start, 0, n),
		End:         clampInt(end, 0, n),
		Folded:      folded,
		Placeholder: placeholder,
	}
	b.nextFold++
	b.folds = append(b.folds, f)
	b.sortFolds()
	b.version++
	b.emitFoldsChanged()
	return f, nil
}

func (b *Buffer) RemoveFold(id FoldID) error {
	i := b.foldIndex(id)
	if i < 0 {
		return ErrUnknownFold
	}
	b.folds = append(b.folds[:i:i], b.folds[i+1:]...)
	b.version++
	b.emitFoldsChanged()
	return nil
}

// SetFolded collapses or expands a fold. Setting the current state again is
// a no-op without notification.
func (b *Buffer) SetFolded(id FoldID, folded bool) error {
	i := b.foldIndex(id)
	if i < 0 {
		return ErrUnknownFold
	}
	if b.folds[i].Folded == folded {
		return nil
	}
	b.folds[i].Folded = folded
	b.version++
	b.emitFoldsChanged()
	return nil
}

func (b *Buffer) ToggleFold(id FoldID) error {
	i := b.foldIndex(id)
	if i < 0 {
		return ErrUnknownFold
	}
	return b.SetFolded(id, !b.folds[i].Folded)
}

func (b *Buffer) Fold(id FoldID) (Fold, bool) {
	i := b.foldIndex(id)
	if i < 0 {
		return Fold{}, false
	}
	return b.folds[i], true
}

// Folds returns all folds ordered by Start.
func (b *Buffer) Folds() []Fold {
	return append([]Fold(nil), b.folds...)
}

// FoldedFolds returns the collapsed folds ordered by Start, longest first
// among folds that share a start.
func (b *Buffer) FoldedFolds() []Fold {
	var out []Fold
	for _, f := range b.folds {
		if f.Folded {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End > out[j].End
	})
	return out
}

// FoldsStartingOnLine returns the folds whose Start lies on row.
func (b *Buffer) FoldsStartingOnLine(row int) []Fold {
	if row < 0 || row >= len(b.lines) {
		return nil
	}
	lo := b.LineStart(row)
	hi := lo + len(b.lines[row])
	var out []Fold
	for _, f := range b.folds {
		if f.Start >= lo && f.Start <= hi {
			out = append(out, f)
		}
	}
	return out
}

func (b *Buffer) foldIndex(id FoldID) int {
	for i, f := range b.folds {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func (b *Buffer) sortFolds() {
	sort.SliceStable(b.folds, func(i, j int) bool {
		if b.folds[i].Start != b.folds[j].Start {
			return b.folds[i].Start < b.folds[j].Start
		}
		return b.folds[i].ID < b.folds[j].ID
	})
}

// remapFolds shifts folds through ev. Folds whose whole span was removed are
// dropped. It reports whether the fold set changed shape.
func (b *Buffer) remapFolds(ev TextReplaced) bool {
	if len(b.folds) == 0 {
		return false
	}
	changed := false
	kept := b.folds[:0]
	for _, f := range b.folds {
		start := ev.MapOffset(f.Start, GapBiasRight)
		end := ev.MapOffset(f.End, GapBiasLeft)
		if end < start {
			end = start
		}
		if f.End > f.Start && end == start {
			changed = true
			continue
		}
		f.Start, f.End = start, end
		kept = append(kept, f)
	}
	b.folds = kept
	b.sortFolds()
	if changed {
		b.version++
	}
	return changed
}
