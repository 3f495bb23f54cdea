package editor

import "sort"

// LineRange is an inclusive range of logical lines.
type LineRange struct {
	First, Last int
}

func lineSpan(a, b int) LineRange {
	if a > b {
		a, b = b, a
	}
	return LineRange{First: a, Last: b}
}

// Invalidation is the set of lines a selection change requires to redraw.
type Invalidation struct {
	All   bool
	Lines []LineRange
}

func (inv Invalidation) Empty() bool { return !inv.All && len(inv.Lines) == 0 }

// ComputeInvalidation returns the lines to redraw when the selection goes
// from old to new. A nil side means no selection.
//
// Block selections redraw the whole row span of both rectangles. Stream
// selections redraw only the lines between the endpoints that moved; a
// selection whose endpoints swapped without changing its extent redraws its
// two boundary lines.
func ComputeInvalidation(old, new *Selection) Invalidation {
	switch {
	case old == nil && new == nil:
		return Invalidation{}
	case old == nil:
		return lines(lineSpan(new.Anchor.Row, new.Lead.Row))
	case new == nil:
		return lines(lineSpan(old.Anchor.Row, old.Lead.Row))
	case *old == *new:
		return Invalidation{}
	}

	oa, ol := old.Anchor.Row, old.Lead.Row
	na, nl := new.Anchor.Row, new.Lead.Row

	if old.Mode == SelectionBlock || new.Mode == SelectionBlock || old.Mode != new.Mode {
		return lines(LineRange{First: min(oa, ol, na, nl), Last: max(oa, ol, na, nl)})
	}

	if old.Range() == new.Range() {
		r := new.Range()
		return lines(LineRange{First: r.Start.Row, Last: r.Start.Row}, LineRange{First: r.End.Row, Last: r.End.Row})
	}

	switch {
	case oa != na && ol != nl:
		return lines(LineRange{First: min(oa, ol, na, nl), Last: max(oa, ol, na, nl)})
	case oa != na:
		return lines(lineSpan(oa, na))
	case ol != nl:
		return lines(lineSpan(ol, nl))
	case old.Anchor == new.Anchor:
		return lines(lineSpan(nl, nl))
	case old.Lead == new.Lead:
		return lines(lineSpan(na, na))
	default:
		return lines(lineSpan(na, na), lineSpan(nl, nl))
	}
}

func lines(rs ...LineRange) Invalidation {
	return Invalidation{Lines: mergeLineRanges(rs)}
}

// mergeLineRanges sorts ranges and merges overlapping or adjacent ones.
func mergeLineRanges(rs []LineRange) []LineRange {
	if len(rs) == 0 {
		return nil
	}
	out := append([]LineRange(nil), rs...)
	sort.Slice(out, func(i, j int) bool { return out[i].First < out[j].First })
	merged := out[:1]
	for _, r := range out[1:] {
		last := &merged[len(merged)-1]
		if r.First <= last.Last+1 {
			last.Last = max(last.Last, r.Last)
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
