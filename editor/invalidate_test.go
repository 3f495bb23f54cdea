package editor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/quill/buffer"
)

func sel(ar, ac, lr, lc int, mode SelectionMode) *Selection {
	return &Selection{
		Anchor: buffer.Pos{Row: ar, Col: ac},
		Lead:   buffer.Pos{Row: lr, Col: lc},
		Mode:   mode,
	}
}

func TestComputeInvalidation(t *testing.T) {
	tests := []struct {
		name     string
		old, new *Selection
		want     []LineRange
	}{
		{name: "both nil"},
		{
			name: "appears",
			new:  sel(2, 0, 5, 3, SelectionStream),
			want: []LineRange{{2, 5}},
		},
		{
			name: "disappears",
			old:  sel(5, 3, 2, 0, SelectionStream),
			want: []LineRange{{2, 5}},
		},
		{
			name: "unchanged",
			old:  sel(1, 0, 3, 0, SelectionStream),
			new:  sel(1, 0, 3, 0, SelectionStream),
		},
		{
			name: "lead line moves down",
			old:  sel(2, 0, 5, 0, SelectionStream),
			new:  sel(2, 0, 7, 0, SelectionStream),
			want: []LineRange{{5, 7}},
		},
		{
			name: "anchor line moves",
			old:  sel(2, 0, 9, 0, SelectionStream),
			new:  sel(4, 0, 9, 0, SelectionStream),
			want: []LineRange{{2, 4}},
		},
		{
			name: "both lines move",
			old:  sel(2, 0, 5, 0, SelectionStream),
			new:  sel(8, 0, 10, 0, SelectionStream),
			want: []LineRange{{2, 10}},
		},
		{
			name: "lead column only",
			old:  sel(2, 0, 5, 1, SelectionStream),
			new:  sel(2, 0, 5, 4, SelectionStream),
			want: []LineRange{{5, 5}},
		},
		{
			name: "anchor column only",
			old:  sel(2, 0, 5, 1, SelectionStream),
			new:  sel(2, 3, 5, 1, SelectionStream),
			want: []LineRange{{2, 2}},
		},
		{
			name: "both columns",
			old:  sel(2, 0, 5, 1, SelectionStream),
			new:  sel(2, 3, 5, 4, SelectionStream),
			want: []LineRange{{2, 2}, {5, 5}},
		},
		{
			name: "swapped ends",
			old:  sel(2, 1, 8, 4, SelectionStream),
			new:  sel(8, 4, 2, 1, SelectionStream),
			want: []LineRange{{2, 2}, {8, 8}},
		},
		{
			name: "block lead moves",
			old:  sel(3, 1, 4, 5, SelectionBlock),
			new:  sel(3, 1, 6, 2, SelectionBlock),
			want: []LineRange{{3, 6}},
		},
		{
			name: "mode change",
			old:  sel(3, 1, 4, 5, SelectionStream),
			new:  sel(3, 1, 4, 5, SelectionBlock),
			want: []LineRange{{3, 4}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeInvalidation(tt.old, tt.new)
			require.False(t, got.All)
			require.Equal(t, tt.want, got.Lines)
		})
	}
}

func TestMergeLineRanges(t *testing.T) {
	got := mergeLineRanges([]LineRange{{7, 9}, {1, 2}, {3, 3}, {8, 12}, {20, 20}})
	require.Equal(t, []LineRange{{1, 3}, {7, 12}, {20, 20}}, got)
	require.Nil(t, mergeLineRanges(nil))
}

func TestSession_SelectionDamage(t *testing.T) {
	s, _ := newTestSession(t, numberedLines(10))
	s.SetSelection(buffer.Pos{Row: 2}, buffer.Pos{Row: 5, Col: 1})

	got := collectDamage(s)
	s.SetSelection(buffer.Pos{Row: 2}, buffer.Pos{Row: 7, Col: 1})

	require.Len(t, *got, 1)
	d := (*got)[0]
	require.False(t, d.All)
	require.Equal(t, []LineRange{{5, 7}}, d.Lines)
	require.Equal(t, []Rect{{X: 0, Y: 5, W: 80, H: 3}}, d.Rects)
}
