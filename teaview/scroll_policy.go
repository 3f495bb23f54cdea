package teaview

// ScrollPolicy controls whether the mouse wheel may scroll the view away
// from the caret.
type ScrollPolicy int

const (
	// ScrollAllowManual lets the wheel scroll even when the caret does not
	// move.
	ScrollAllowManual ScrollPolicy = iota
	// ScrollFollowCaretOnly ignores the wheel; the view only moves to keep
	// the caret visible.
	ScrollFollowCaretOnly
)
