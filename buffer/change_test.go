package buffer

import "testing"

func TestTextReplaced_MapOffset(t *testing.T) {
	replace := TextReplaced{Offset: 4, Removed: 3, Inserted: 5}
	insert := TextReplaced{Offset: 4, Inserted: 2}

	cases := []struct {
		name string
		ev   TextReplaced
		off  int
		bias GapBias
		want int
	}{
		{"before", replace, 2, GapBiasLeft, 2},
		{"after", replace, 9, GapBiasLeft, 11},
		{"at start", replace, 4, GapBiasRight, 4},
		{"at removed end", replace, 7, GapBiasLeft, 9},
		{"inside left", replace, 5, GapBiasLeft, 4},
		{"inside right", replace, 5, GapBiasRight, 9},
		{"insertion point left", insert, 4, GapBiasLeft, 4},
		{"insertion point right", insert, 4, GapBiasRight, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ev.MapOffset(tc.off, tc.bias); got != tc.want {
				t.Fatalf("MapOffset(%d)=%d, want %d", tc.off, got, tc.want)
			}
		})
	}
}

func TestBuffer_TextReplaced_Payload(t *testing.T) {
	b := New("ab\ncd", Options{})
	var evs []TextReplaced
	lines := 0
	b.Subscribe(Listener{
		TextReplaced: func(ev TextReplaced) { evs = append(evs, ev) },
		LineChanged:  func(LineChanged) { lines++ },
	})

	b.Replace(1, 3, "X\nY\nZ")
	if len(evs) != 1 {
		t.Fatalf("events=%d, want 1", len(evs))
	}
	ev := evs[0]
	if ev.Offset != 1 || ev.Removed != 3 || ev.Inserted != 5 {
		t.Fatalf("event=%+v", ev)
	}
	if ev.LineDelta() != 1 || ev.StartRow() != 0 {
		t.Fatalf("delta=%d start=%d, want 1 0", ev.LineDelta(), ev.StartRow())
	}
	if ev.Edit.DeletedText != "b\nc" {
		t.Fatalf("deleted=%q, want %q", ev.Edit.DeletedText, "b\nc")
	}
	if lines != 0 {
		t.Fatalf("multi-line edits must not emit LineChanged")
	}

	b.Insert(0, "q")
	if lines != 1 {
		t.Fatalf("line changes=%d, want 1", lines)
	}
}

func TestBuffer_Subscribe_Cancel(t *testing.T) {
	b := New("", Options{})
	n := 0
	cancel := b.Subscribe(Listener{TextReplaced: func(TextReplaced) { n++ }})
	b.Insert(0, "a")
	cancel()
	b.Insert(0, "b")
	if n != 1 {
		t.Fatalf("notifications=%d, want 1", n)
	}
}
