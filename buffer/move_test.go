package buffer

import "testing"

func TestBuffer_MoveGrapheme_BoundsAndLineCrossing(t *testing.T) {
	b := New("ab\nçd", Options{})

	cases := []struct {
		name string
		from Pos
		dir  MoveDir
		want Pos
	}{
		{"left at doc start", Pos{Row: 0, Col: 0}, DirLeft, Pos{Row: 0, Col: 0}},
		{"right", Pos{Row: 0, Col: 0}, DirRight, Pos{Row: 0, Col: 1}},
		{"right crosses line", Pos{Row: 0, Col: 2}, DirRight, Pos{Row: 1, Col: 0}},
		{"left crosses line", Pos{Row: 1, Col: 0}, DirLeft, Pos{Row: 0, Col: 2}},
		{"right at doc end", Pos{Row: 1, Col: 2}, DirRight, Pos{Row: 1, Col: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := b.MovePos(tc.from, Move{Unit: MoveGrapheme, Dir: tc.dir})
			if got != tc.want {
				t.Fatalf("pos=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuffer_MoveLine_HomeEndAndVerticalClamp(t *testing.T) {
	b := New("hello\nw\nworld", Options{})

	if got, want := b.MovePos(Pos{Row: 0, Col: 3}, Move{Unit: MoveLine, Dir: DirEnd}), (Pos{Row: 0, Col: 5}); got != want {
		t.Fatalf("end=%v, want %v", got, want)
	}
	if got, want := b.MovePos(Pos{Row: 0, Col: 3}, Move{Unit: MoveLine, Dir: DirHome}), (Pos{Row: 0, Col: 0}); got != want {
		t.Fatalf("home=%v, want %v", got, want)
	}
	if got, want := b.MovePos(Pos{Row: 2, Col: 5}, Move{Unit: MoveLine, Dir: DirUp}), (Pos{Row: 1, Col: 1}); got != want {
		t.Fatalf("up=%v, want %v", got, want)
	}
	if got, want := b.MovePos(Pos{Row: 0, Col: 3}, Move{Unit: MoveLine, Dir: DirUp}), (Pos{Row: 0, Col: 0}); got != want {
		t.Fatalf("up from first line=%v, want %v", got, want)
	}
	if got, want := b.MovePos(Pos{Row: 2, Col: 1}, Move{Unit: MoveLine, Dir: DirDown}), (Pos{Row: 2, Col: 5}); got != want {
		t.Fatalf("down from last line=%v, want %v", got, want)
	}
}

func TestBuffer_MoveDoc_StartEnd(t *testing.T) {
	b := New("a\nbc", Options{})
	if got, want := b.MovePos(Pos{Row: 1, Col: 1}, Move{Unit: MoveDoc, Dir: DirHome}), (Pos{}); got != want {
		t.Fatalf("home=%v, want %v", got, want)
	}
	if got, want := b.MovePos(Pos{}, Move{Unit: MoveDoc, Dir: DirEnd}), (Pos{Row: 1, Col: 2}); got != want {
		t.Fatalf("end=%v, want %v", got, want)
	}
}

func TestBuffer_MoveWord(t *testing.T) {
	b := New("foo  bar\nbaz", Options{})

	if got, want := b.MovePos(Pos{Row: 0, Col: 0}, Move{Unit: MoveWord, Dir: DirRight}), (Pos{Row: 0, Col: 3}); got != want {
		t.Fatalf("right=%v, want %v", got, want)
	}
	if got, want := b.MovePos(Pos{Row: 0, Col: 3}, Move{Unit: MoveWord, Dir: DirRight}), (Pos{Row: 0, Col: 8}); got != want {
		t.Fatalf("right=%v, want %v", got, want)
	}
	if got, want := b.MovePos(Pos{Row: 0, Col: 8}, Move{Unit: MoveWord, Dir: DirRight}), (Pos{Row: 1, Col: 0}); got != want {
		t.Fatalf("right at EOL=%v, want %v", got, want)
	}
	if got, want := b.MovePos(Pos{Row: 0, Col: 7}, Move{Unit: MoveWord, Dir: DirLeft}), (Pos{Row: 0, Col: 5}); got != want {
		t.Fatalf("left=%v, want %v", got, want)
	}
	if got, want := b.MovePos(Pos{Row: 1, Col: 0}, Move{Unit: MoveWord, Dir: DirLeft}), (Pos{Row: 0, Col: 8}); got != want {
		t.Fatalf("left at BOL=%v, want %v", got, want)
	}
}

func TestBuffer_WordRange(t *testing.T) {
	b := New("foo, bar", Options{})

	cases := []struct {
		at   int
		want [2]int
	}{
		{1, [2]int{0, 3}},
		{3, [2]int{3, 4}},
		{4, [2]int{4, 5}},
		{8, [2]int{5, 8}},
	}
	for _, tc := range cases {
		r := b.WordRange(Pos{Col: tc.at})
		if r.Start.Col != tc.want[0] || r.End.Col != tc.want[1] {
			t.Fatalf("WordRange(%d)=[%d,%d), want %v", tc.at, r.Start.Col, r.End.Col, tc.want)
		}
	}
}
