package buffer

// Marker is a decoration attached to a logical line. Marker values are
// compared with ==, so implementations should be pointers or other
// comparable types.
type Marker interface {
	// Kind names the marker in logs.
	Kind() string
}

// ExtendingMarker is a Marker that changes the rendered height of its line.
type ExtendingMarker interface {
	Marker
	// LineHeight returns the height of the marked line given the default
	// row height.
	LineHeight(rowHeight int) int
}

// AddMarker attaches m to row. It returns false for rows outside the
// document or a nil marker.
func (b *Buffer) AddMarker(row int, m Marker) bool {
	if m == nil || row < 0 || row >= len(b.lines) {
		return false
	}
	b.marks[row] = append(b.marks[row], m)
	b.version++
	b.emitLineChanged(row)
	return true
}

// RemoveMarker detaches the first occurrence of m from row.
func (b *Buffer) RemoveMarker(row int, m Marker) bool {
	if row < 0 || row >= len(b.marks) {
		return false
	}
	for i, cur := range b.marks[row] {
		if cur != m {
			continue
		}
		b.marks[row] = append(b.marks[row][:i:i], b.marks[row][i+1:]...)
		if len(b.marks[row]) == 0 {
			b.marks[row] = nil
		}
		b.version++
		b.emitLineChanged(row)
		return true
	}
	return false
}

// Markers returns the markers of row in insertion order.
func (b *Buffer) Markers(row int) []Marker {
	if row < 0 || row >= len(b.marks) {
		return nil
	}
	return append([]Marker(nil), b.marks[row]...)
}

func (b *Buffer) HasMarkers(row int) bool {
	return row >= 0 && row < len(b.marks) && len(b.marks[row]) > 0
}

// LinesWithMarkers returns the rows carrying at least one marker, ascending.
func (b *Buffer) LinesWithMarkers() []int {
	var rows []int
	for row, ms := range b.marks {
		if len(ms) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// NotifyLineChanged tells listeners that row must be measured again, for
// example after an extending marker changed its height.
func (b *Buffer) NotifyLineChanged(row int) {
	if row < 0 || row >= len(b.lines) {
		return
	}
	b.emitLineChanged(row)
}
