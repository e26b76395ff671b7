package timetable

import (
	"cmp"
	"slices"

	"github.com/matzehuels/weekgrid/pkg/clock"
)

// Interval is the grid row granularity in minutes.
const Interval = 15

// Default colours used when a document does not name one.
const (
	DefaultCellColor      = "white"
	DefaultInvariantColor = "lightgray"
)

// RowKind discriminates the two row variants.
type RowKind string

// Row kinds.
const (
	KindInvariant RowKind = "invariant"
	KindTime      RowKind = "time"
)

// Result holds everything a single Compile call produces.
type Result struct {
	Grid    Grid
	Summary Summary
}

// Grid is the compiled table: ordered rows over a fixed set of day columns.
type Grid struct {
	Start    int             // Window start, minutes past midnight
	End      int             // Window end (exclusive), minutes past midnight
	Interval int             // Row granularity in minutes
	Days     []clock.Weekday // Day columns in display order
	Rows     []Row
}

// Row is either an InvariantRow or a TimeRow.
type Row interface {
	Kind() RowKind
	// StartMinute is the boundary the row begins at.
	StartMinute() int
	// Slots is the number of grid boundaries the row stands for.
	Slots() int

	isRow()
}

// InvariantRow is a single block spanning every day column.
type InvariantRow struct {
	Label         string // Time range exactly as written in the document
	Minute        int
	Block         string
	Color         string
	DurationSlots int
}

// TimeRow is one grid boundary. Cells is indexed by clock.Weekday; a nil
// entry means no block starts on that day at this boundary.
type TimeRow struct {
	Label  string
	Minute int
	Cells  [clock.NumWeekdays]*Cell
}

// Cell marks the first slot of a block occurrence on one day.
type Cell struct {
	Block        string
	Color        string
	RowSpanSlots int
}

func (InvariantRow) Kind() RowKind      { return KindInvariant }
func (r InvariantRow) StartMinute() int { return r.Minute }
func (r InvariantRow) Slots() int       { return r.DurationSlots }
func (InvariantRow) isRow()             {}

func (TimeRow) Kind() RowKind      { return KindTime }
func (r TimeRow) StartMinute() int { return r.Minute }
func (TimeRow) Slots() int         { return 1 }
func (TimeRow) isRow()             {}

// Cell returns the cell starting on day, or nil.
func (r TimeRow) Cell(day clock.Weekday) *Cell {
	if day < 0 || int(day) >= clock.NumWeekdays {
		return nil
	}
	return r.Cells[day]
}

// =============================================================================
// Occupancy
// =============================================================================

// SlotState describes what occupies one day column of one emitted row.
type SlotState int

// Slot states.
const (
	SlotEmpty     SlotState = iota // Nothing scheduled
	SlotStart                      // A Cell starts here
	SlotContinued                  // Covered by a Cell from an earlier row
	SlotInvariant                  // Part of an InvariantRow
)

// Occupancy resolves row spans into an explicit matrix: one entry per emitted
// row, one column per day. Renderers that cannot express rowspan natively
// (terminals, canvases) draw from this.
func (g Grid) Occupancy() [][clock.NumWeekdays]SlotState {
	out := make([][clock.NumWeekdays]SlotState, len(g.Rows))
	var remaining [clock.NumWeekdays]int

	for i, row := range g.Rows {
		switch r := row.(type) {
		case InvariantRow:
			for d := range out[i] {
				out[i][d] = SlotInvariant
			}
		case TimeRow:
			for d := range out[i] {
				switch {
				case r.Cells[d] != nil:
					out[i][d] = SlotStart
					remaining[d] = r.Cells[d].RowSpanSlots - 1
				case remaining[d] > 0:
					out[i][d] = SlotContinued
					remaining[d]--
				default:
					out[i][d] = SlotEmpty
				}
			}
		}
	}
	return out
}

// =============================================================================
// Summary
// =============================================================================

// Summary maps block names to total scheduled minutes across the week.
type Summary map[string]int

// Names returns block names ordered by total minutes (largest first), then by
// name, giving renderers a stable order.
func (s Summary) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(s[b], s[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return names
}

// Total returns the sum of all block minutes.
func (s Summary) Total() int {
	total := 0
	for _, m := range s {
		total += m
	}
	return total
}
