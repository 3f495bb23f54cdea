package buffer

import "testing"

func TestBuffer_Insert_ReturnsOffsetPastText(t *testing.T) {
	b := New("ad", Options{})
	v := b.Version()

	next := b.Insert(1, "bc")
	if got, want := b.Text(), "abcd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if next != 3 {
		t.Fatalf("next=%d, want 3", next)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
	if got := b.TextVersion(); got != 1 {
		t.Fatalf("text version=%d, want 1", got)
	}
}

func TestBuffer_Insert_MultiLine(t *testing.T) {
	b := New("ab", Options{})
	next := b.Insert(1, "X\nY\nZ")
	if got, want := b.Text(), "aX\nY\nZb"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.LineCount(), 3; got != want {
		t.Fatalf("lines=%d, want %d", got, want)
	}
	if got, want := b.OffsetToPos(next), (Pos{Row: 2, Col: 1}); got != want {
		t.Fatalf("next pos=%v, want %v", got, want)
	}
}

func TestBuffer_Remove_JoinsLines(t *testing.T) {
	b := New("ab\ncd\nef", Options{})
	b.Remove(1, 6)
	if got, want := b.Text(), "af"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_Remove_WholeGraphemeCluster(t *testing.T) {
	b := New("éx", Options{})
	b.Remove(0, 1)
	if got, want := b.Text(), "x"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_Replace_ClampsSpan(t *testing.T) {
	b := New("abc", Options{})
	next := b.Replace(2, 99, "Z")
	if got, want := b.Text(), "abZ"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if next != 3 {
		t.Fatalf("next=%d, want 3", next)
	}

	b.Replace(-4, -1, "Y")
	if got, want := b.Text(), "YabZ"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_NoOpsDoNotBumpVersion(t *testing.T) {
	b := New("abc", Options{})
	v := b.Version()

	b.Remove(1, 0)
	b.Insert(1, "")
	b.Replace(0, 1, "a")
	if got := b.Version(); got != v {
		t.Fatalf("version=%d, want %d", got, v)
	}
	if b.CanUndo() {
		t.Fatalf("no-op edits must not record history")
	}
}

func TestBuffer_ReplaceRange(t *testing.T) {
	b := New("hello\nworld", Options{})
	next := b.ReplaceRange(Range{Start: Pos{Row: 1, Col: 3}, End: Pos{Row: 0, Col: 4}}, "P\nQ")
	if got, want := b.Text(), "hellP\nQld"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if want := (Pos{Row: 1, Col: 1}); next != want {
		t.Fatalf("next=%v, want %v", next, want)
	}
}

func TestBuffer_SetText_DropsFoldsMarkersAndHistory(t *testing.T) {
	b := New("a\nb", Options{})
	b.Insert(0, "x")
	if _, err := b.AddFold(0, 3, true, ""); err != nil {
		t.Fatalf("AddFold: %v", err)
	}
	b.AddMarker(1, &testMarker{})

	var src ChangeSource
	folds := 0
	b.Subscribe(Listener{
		TextReplaced: func(ev TextReplaced) { src = ev.Source },
		FoldsChanged: func(FoldsChanged) { folds++ },
	})

	b.SetText("new")
	if got, want := b.Text(), "new"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if src != ChangeSourceReset {
		t.Fatalf("source=%v, want reset", src)
	}
	if folds != 1 {
		t.Fatalf("folds notifications=%d, want 1", folds)
	}
	if len(b.Folds()) != 0 || len(b.LinesWithMarkers()) != 0 {
		t.Fatalf("expected folds and markers dropped")
	}
	if b.CanUndo() {
		t.Fatalf("expected history cleared")
	}
}

func TestBuffer_Edit_MarkersFollowTheirLine(t *testing.T) {
	b := New("a\nb\nc\nd", Options{})
	m := &testMarker{}
	b.AddMarker(3, m)

	b.Remove(1, 2) // drops "\nb"
	if got := b.LinesWithMarkers(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("marked rows=%v, want [2]", got)
	}

	b.Insert(0, "x\ny\n")
	if got := b.LinesWithMarkers(); len(got) != 1 || got[0] != 4 {
		t.Fatalf("marked rows=%v, want [4]", got)
	}

	// Joining the marked line into its predecessor drops the marker.
	b.Remove(b.LineStart(4)-1, 1)
	if got := b.LinesWithMarkers(); len(got) != 0 {
		t.Fatalf("marked rows=%v, want none", got)
	}
}
