// Package editor implements the editing session that sits between a
// buffer.Buffer and a rendering host.
//
// A Session maps logical lines to visual rows around folds and tall lines,
// converts between offsets, locations and pixels, owns the caret and the
// selection, decides which regions must be redrawn after a change, and
// schedules hover tooltips. It never draws; hosts subscribe to Damage
// notifications and query the session while painting.
//
// Sessions are single-threaded. Timers are delivered through a
// sched.Scheduler on the host's loop.
package editor
