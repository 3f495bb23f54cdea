// Package buffer implements the grapheme-accurate text model the editing
// session works against.
//
// Positions are 0-based (Row, Col) where Col counts grapheme clusters.
// Document offsets count grapheme clusters across the whole text with every
// line break counted as one. Ranges are half-open: [Start, End).
//
// Besides text, a Buffer owns per-line markers and fold segments, groups
// edits into atomic undo steps, and notifies subscribers about every
// effective change.
package buffer
