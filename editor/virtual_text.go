package editor

import (
	"sort"
	"strings"
)

// VirtualDeletion hides the half-open cluster range [StartCol, EndCol) of a
// single logical line. Columns index the raw line.
type VirtualDeletion struct {
	StartCol int
	EndCol   int
}

// VirtualInsertion shows view-only text at Col of a single logical line.
type VirtualInsertion struct {
	Col  int
	Text string
}

// VirtualText alters how one logical line is drawn without touching the
// buffer. Folded regions use it to replace their text with a placeholder.
type VirtualText struct {
	Insertions []VirtualInsertion
	Deletions  []VirtualDeletion
}

func normalizeVirtualText(vt VirtualText, rawLineLen int) VirtualText {
	rawLineLen = max(rawLineLen, 0)

	// Deletions: clamp, drop empty, sort, merge.
	if len(vt.Deletions) > 0 {
		dels := make([]VirtualDeletion, 0, len(vt.Deletions))
		for _, d := range vt.Deletions {
			start := clampInt(d.StartCol, 0, rawLineLen)
			end := clampInt(d.EndCol, 0, rawLineLen)
			if end < start {
				start, end = end, start
			}
			if start == end {
				continue
			}
			dels = append(dels, VirtualDeletion{StartCol: start, EndCol: end})
		}
		sort.Slice(dels, func(i, j int) bool {
			if dels[i].StartCol != dels[j].StartCol {
				return dels[i].StartCol < dels[j].StartCol
			}
			return dels[i].EndCol < dels[j].EndCol
		})
		merged := make([]VirtualDeletion, 0, len(dels))
		for _, d := range dels {
			if n := len(merged); n > 0 && d.StartCol <= merged[n-1].EndCol {
				merged[n-1].EndCol = max(merged[n-1].EndCol, d.EndCol)
				continue
			}
			merged = append(merged, d)
		}
		vt.Deletions = merged
	}

	// Insertions: clamp cols, strip line breaks, re-anchor inside deletions,
	// stable sort by col.
	if len(vt.Insertions) > 0 {
		ins := make([]VirtualInsertion, 0, len(vt.Insertions))
		for _, in := range vt.Insertions {
			text := strings.NewReplacer("\r", "", "\n", "").Replace(in.Text)
			if text == "" {
				continue
			}
			col := clampInt(in.Col, 0, rawLineLen)
			for _, d := range vt.Deletions {
				if col >= d.StartCol && col < d.EndCol {
					col = d.StartCol
					break
				}
			}
			ins = append(ins, VirtualInsertion{Col: col, Text: text})
		}
		sort.SliceStable(ins, func(i, j int) bool { return ins[i].Col < ins[j].Col })
		vt.Insertions = ins
	}

	return vt
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
