// Package timetable compiles a weekly schedule document into a grid of
// fixed-size time rows with merged cells, plus a per-block minute summary.
//
// # Overview
//
// [Compile] is the heart of weekgrid. Given a [schedule.Document] it:
//
//  1. Converts the visible window (Start, End) to minutes past midnight
//  2. Validates every entry: parsable times, positive duration, duration and
//     start aligned to the 15-minute [Interval], inside the window, and no
//     collisions inside a day or between invariants
//  3. Adds every occurrence (day entries and invariants) to the [Summary]
//  4. Walks the window with a cursor, emitting one [InvariantRow] per invariant
//     and one [TimeRow] per remaining boundary
//
// The result is plain data intended for table renderers: an HTML renderer maps
// [Cell.RowSpanSlots] to rowspan and [InvariantRow] to a full-width colspan.
//
// # Rows
//
// [Row] is a sealed interface with two implementations:
//
//   - [InvariantRow]: one block shared by every day. It stands for
//     DurationSlots grid boundaries, which the cursor skips over.
//   - [TimeRow]: one boundary. Days whose block starts here get a [Cell];
//     days still inside an earlier block, or with nothing scheduled, get nil.
//
// Use a type switch to handle both:
//
//	for _, row := range result.Grid.Rows {
//	    switch r := row.(type) {
//	    case timetable.InvariantRow:
//	        fmt.Println(r.Label, r.Block)
//	    case timetable.TimeRow:
//	        fmt.Println(r.Label, r.Cells)
//	    }
//	}
//
// # Shadowing
//
// When an invariant and a day entry start at the same boundary, the invariant
// wins: the day entry is never drawn, but its minutes still count towards the
// summary. Any other overlap is rejected with INVALID_RANGE.
//
// # Concurrency
//
// Compile is a pure function. It never mutates the document, keeps no state
// between calls, and may be called from many goroutines at once.
package timetable
