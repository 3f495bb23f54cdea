package buffer

// Byte offsets address the UTF-8 encoding of Text(). They are useful at the
// edges (files, external tools); the editor itself works in cluster offsets.

type OffsetClampMode uint8

const (
	OffsetError OffsetClampMode = iota
	OffsetClamp
)

type ConvertPolicy struct {
	ClampMode OffsetClampMode
}

// GapBias chooses a side when a position falls on an edit boundary.
type GapBias uint8

const (
	GapBiasLeft GapBias = iota
	GapBiasRight
)

// PosFromByteOffset converts a UTF-8 byte offset to a position. Offsets
// that split a grapheme cluster are rejected in every mode.
func (b *Buffer) PosFromByteOffset(off int, p ConvertPolicy) (Pos, bool) {
	off, ok := clampOffset(off, b.docByteLen(), p.ClampMode)
	if !ok {
		return Pos{}, false
	}
	return b.byteOffsetToPos(off)
}

func (b *Buffer) ByteOffsetFromPos(pos Pos, p ConvertPolicy) (int, bool) {
	pos, ok := b.normalizePosForMode(pos, p.ClampMode)
	if !ok {
		return 0, false
	}
	return b.posToByteOffset(pos), true
}

func clampOffset(off, max int, mode OffsetClampMode) (int, bool) {
	switch mode {
	case OffsetError:
		if off < 0 || off > max {
			return 0, false
		}
		return off, true
	case OffsetClamp:
		return clampInt(off, 0, max), true
	default:
		return 0, false
	}
}

func (b *Buffer) normalizePosForMode(pos Pos, mode OffsetClampMode) (Pos, bool) {
	switch mode {
	case OffsetError:
		if b.ClampPos(pos) != pos {
			return Pos{}, false
		}
		return pos, true
	case OffsetClamp:
		return b.ClampPos(pos), true
	default:
		return Pos{}, false
	}
}

func (b *Buffer) docByteLen() int {
	total := len(b.lines) - 1
	for _, line := range b.lines {
		for _, cluster := range line {
			total += len(cluster)
		}
	}
	return total
}

func (b *Buffer) byteOffsetToPos(off int) (Pos, bool) {
	cur := 0
	for row, line := range b.lines {
		if off == cur {
			return Pos{Row: row}, true
		}
		for col, cluster := range line {
			next := cur + len(cluster)
			if off > cur && off < next {
				return Pos{}, false
			}
			cur = next
			if off == cur {
				return Pos{Row: row, Col: col + 1}, true
			}
		}
		cur++ // line break
	}
	return Pos{}, false
}

func (b *Buffer) posToByteOffset(pos Pos) int {
	off := 0
	for row := 0; row < pos.Row; row++ {
		for _, cluster := range b.lines[row] {
			off += len(cluster)
		}
		off++
	}
	for col := 0; col < pos.Col; col++ {
		off += len(b.lines[pos.Row][col])
	}
	return off
}
