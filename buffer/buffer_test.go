package buffer

import "testing"

func TestBuffer_New_SplitsLinesIntoClusters(t *testing.T) {
	b := New("ab\néx\n", Options{})
	if got, want := b.LineCount(), 3; got != want {
		t.Fatalf("lines=%d, want %d", got, want)
	}
	if got, want := b.LineLen(1), 2; got != want {
		t.Fatalf("line 1 len=%d, want %d", got, want)
	}
	if got, want := b.Line(1), "éx"; got != want {
		t.Fatalf("line 1=%q, want %q", got, want)
	}
	if got, want := b.Line(99), ""; got != want {
		t.Fatalf("line 99=%q, want %q", got, want)
	}
	if got, want := b.Len(), 6; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
}

func TestBuffer_Empty(t *testing.T) {
	b := New("", Options{})
	if got := b.LineCount(); got != 1 {
		t.Fatalf("lines=%d, want 1", got)
	}
	if got := b.Len(); got != 0 {
		t.Fatalf("len=%d, want 0", got)
	}
	if got := b.OffsetToPos(5); got != (Pos{}) {
		t.Fatalf("pos=%v, want (0,0)", got)
	}
}

func TestBuffer_OffsetConversions(t *testing.T) {
	b := New("ABC\nDEFGH\nIJ", Options{})

	cases := []struct {
		off int
		pos Pos
	}{
		{0, Pos{Row: 0, Col: 0}},
		{3, Pos{Row: 0, Col: 3}},
		{4, Pos{Row: 1, Col: 0}},
		{9, Pos{Row: 1, Col: 5}},
		{10, Pos{Row: 2, Col: 0}},
		{12, Pos{Row: 2, Col: 2}},
	}
	for _, tc := range cases {
		if got := b.OffsetToPos(tc.off); got != tc.pos {
			t.Fatalf("OffsetToPos(%d)=%v, want %v", tc.off, got, tc.pos)
		}
		if got := b.PosToOffset(tc.pos); got != tc.off {
			t.Fatalf("PosToOffset(%v)=%d, want %d", tc.pos, got, tc.off)
		}
	}

	if got, want := b.OffsetToPos(-3), (Pos{}); got != want {
		t.Fatalf("OffsetToPos(-3)=%v, want %v", got, want)
	}
	if got, want := b.OffsetToPos(99), (Pos{Row: 2, Col: 2}); got != want {
		t.Fatalf("OffsetToPos(99)=%v, want %v", got, want)
	}
	if got, want := b.PosToOffset(Pos{Row: 0, Col: 99}), 3; got != want {
		t.Fatalf("PosToOffset clamp=%d, want %d", got, want)
	}
	if got, want := b.LineStart(2), 10; got != want {
		t.Fatalf("LineStart(2)=%d, want %d", got, want)
	}
}

func TestBuffer_TextAt(t *testing.T) {
	b := New("ab\ncd", Options{})
	if got, want := b.TextAt(1, 3), "b\nc"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.TextIn(Range{Start: Pos{Row: 1, Col: 2}, End: Pos{Row: 0, Col: 1}}), "b\ncd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_ByteOffsets(t *testing.T) {
	b := New("a界\nb", Options{})

	p, ok := b.PosFromByteOffset(4, ConvertPolicy{ClampMode: OffsetError})
	if !ok || p != (Pos{Row: 0, Col: 2}) {
		t.Fatalf("pos=%v ok=%v, want (0,2) true", p, ok)
	}
	if _, ok := b.PosFromByteOffset(2, ConvertPolicy{ClampMode: OffsetError}); ok {
		t.Fatalf("expected offset inside a cluster to be rejected")
	}
	p, ok = b.PosFromByteOffset(99, ConvertPolicy{ClampMode: OffsetClamp})
	if !ok || p != (Pos{Row: 1, Col: 1}) {
		t.Fatalf("pos=%v ok=%v, want (1,1) true", p, ok)
	}

	off, ok := b.ByteOffsetFromPos(Pos{Row: 1, Col: 0}, ConvertPolicy{ClampMode: OffsetError})
	if !ok || off != 5 {
		t.Fatalf("off=%d ok=%v, want 5 true", off, ok)
	}
	if _, ok := b.ByteOffsetFromPos(Pos{Row: 5}, ConvertPolicy{ClampMode: OffsetError}); ok {
		t.Fatalf("expected out of range pos to be rejected")
	}
}

func TestClampPos(t *testing.T) {
	lens := []int{2, 0}
	lineLen := func(row int) int { return lens[row] }
	cases := []struct {
		in, want Pos
	}{
		{Pos{Row: -1, Col: -1}, Pos{Row: 0, Col: 0}},
		{Pos{Row: 0, Col: 9}, Pos{Row: 0, Col: 2}},
		{Pos{Row: 7, Col: 3}, Pos{Row: 1, Col: 0}},
	}
	for _, tc := range cases {
		if got := ClampPos(tc.in, len(lens), lineLen); got != tc.want {
			t.Fatalf("ClampPos(%v)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRange_NormalizeAndContains(t *testing.T) {
	r := NormalizeRange(Range{Start: Pos{Row: 1, Col: 1}, End: Pos{Row: 0, Col: 2}})
	if r.Start != (Pos{Row: 0, Col: 2}) {
		t.Fatalf("start=%v, want (0,2)", r.Start)
	}
	if !r.Contains(Pos{Row: 1, Col: 0}) {
		t.Fatalf("expected (1,0) inside %v", r)
	}
	if r.Contains(Pos{Row: 1, Col: 1}) {
		t.Fatalf("end must be excluded")
	}
}
