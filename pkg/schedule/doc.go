// Package schedule defines the weekly timetable document and decodes it from
// YAML, TOML or JSON text.
//
// # Document Shape
//
// A document names the visible time window, the per-day blocks, the blocks
// shared by every day ("invariants") and optional colours:
//
//	Start: 8:00 AM
//	End: 2:30 PM
//	Colors:
//	  Invariants: lightgray
//	  French: lightblue
//	Invariants:
//	  - Block: First Recess
//	    Time: 10:00 AM - 10:25 AM
//	Monday:
//	  - Block: French
//	    Time: 8:00 AM - 10:00 AM
//	Tuesday:
//	  - Block: Math
//	    Start: 8:00 AM
//	    End: 9:00 AM
//
// Keys are matched case-insensitively. An entry gives its times either as a
// single Time range or as separate Start and End fields. Unknown keys,
// including weekend days, are ignored.
//
// # Errors
//
// Structural problems (missing Start/End, a day that is not a list, an entry
// without a Block) are reported as DOCUMENT_SHAPE; a Time value without a "-"
// separator is MALFORMED_TIME. Every error records the field path, such as
// "Monday[1].Time", so the message can point at the exact line.
//
// Parsing only checks structure. Time arithmetic and range validation belong to
// the timetable compiler.
package schedule
