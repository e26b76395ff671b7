package timetable

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/weekgrid/pkg/clock"
	errs "github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/schedule"
)

// occurrence is an entry resolved to minutes.
type occurrence struct {
	entry    schedule.Entry
	start    int
	end      int
	shadowed bool // starts together with an invariant and is never drawn
}

func (o occurrence) minutes() int { return o.end - o.start }

func (o occurrence) slots() int { return o.minutes() / Interval }

// Compile turns a parsed document into a grid and summary.
//
// Compile fails with a single *errors.Error (MALFORMED_TIME, INVALID_RANGE or
// DOCUMENT_SHAPE) naming the offending field and text; it never returns a
// partial result. The document is not modified and the result shares no
// memory with it.
func Compile(doc *schedule.Document) (*Result, error) {
	if doc == nil {
		return nil, errs.New(errs.ErrCodeDocumentShape, "document is empty")
	}

	start, end, err := window(doc)
	if err != nil {
		return nil, err
	}

	summary := make(Summary)

	invariants, err := resolveAll(doc.Invariants, start, end, summary)
	if err != nil {
		return nil, err
	}
	if err := checkOverlaps(invariants, "invariant"); err != nil {
		return nil, err
	}

	var days [clock.NumWeekdays][]occurrence
	for _, day := range clock.Weekdays() {
		occs, err := resolveAll(doc.Entries(day), start, end, summary)
		if err != nil {
			return nil, err
		}
		if err := checkOverlaps(occs, day.String()); err != nil {
			return nil, err
		}
		if err := shadow(occs, invariants); err != nil {
			return nil, err
		}
		days[day] = occs
	}

	grid := emit(doc, start, end, invariants, days)
	return &Result{Grid: grid, Summary: summary}, nil
}

// window converts the document's visible range.
func window(doc *schedule.Document) (int, int, error) {
	if doc.Start == "" {
		return 0, 0, errs.New(errs.ErrCodeDocumentShape, "missing required field Start").WithField("Start", "")
	}
	if doc.End == "" {
		return 0, 0, errs.New(errs.ErrCodeDocumentShape, "missing required field End").WithField("End", "")
	}

	start, err := clock.ToMinutes(doc.Start)
	if err != nil {
		return 0, 0, atField(err, "Start")
	}
	end, err := clock.ToMinutes(doc.End)
	if err != nil {
		return 0, 0, atField(err, "End")
	}
	if end < start {
		return 0, 0, errs.New(errs.ErrCodeInvalidRange, "schedule ends (%s) before it starts (%s)", doc.End, doc.Start).
			WithField("End", doc.End)
	}
	return start, end, nil
}

// resolveAll converts and validates entries, adding each to the summary.
// The returned occurrences are sorted by start time.
func resolveAll(entries []schedule.Entry, windowStart, windowEnd int, summary Summary) ([]occurrence, error) {
	occs := make([]occurrence, 0, len(entries))
	for _, e := range entries {
		o, err := resolve(e, windowStart, windowEnd)
		if err != nil {
			return nil, err
		}
		summary[e.Block] += o.minutes()
		occs = append(occs, o)
	}
	slices.SortStableFunc(occs, func(a, b occurrence) int { return a.start - b.start })
	return occs, nil
}

func resolve(e schedule.Entry, windowStart, windowEnd int) (occurrence, error) {
	start, err := clock.ToMinutes(e.Start)
	if err != nil {
		return occurrence{}, atField(err, e.StartField())
	}
	end, err := clock.ToMinutes(e.End)
	if err != nil {
		return occurrence{}, atField(err, e.EndField())
	}

	label := e.Label()
	switch d := end - start; {
	case d <= 0:
		return occurrence{}, invalidRange(e, "%s %q ends before it starts: %s", e.Path, e.Block, label)
	case d%Interval != 0:
		return occurrence{}, invalidRange(e, "%s %q lasts %d minutes, not a multiple of %d: %s", e.Path, e.Block, d, Interval, label)
	case (start-windowStart)%Interval != 0:
		return occurrence{}, invalidRange(e, "%s %q does not start on a %d-minute boundary: %s", e.Path, e.Block, Interval, label)
	case start < windowStart || end > windowEnd:
		return occurrence{}, invalidRange(e, "%s %q falls outside %s - %s: %s", e.Path, e.Block,
			clock.ToText(windowStart), clock.ToText(windowEnd), label)
	}
	return occurrence{entry: e, start: start, end: end}, nil
}

// checkOverlaps rejects sorted occurrences that share any minute.
func checkOverlaps(occs []occurrence, scope string) error {
	for i := 1; i < len(occs); i++ {
		prev, cur := occs[i-1], occs[i]
		if cur.start < prev.end {
			return invalidRange(cur.entry, "%s: %q (%s) overlaps %q (%s)", scope,
				cur.entry.Block, cur.entry.Label(), prev.entry.Block, prev.entry.Label())
		}
	}
	return nil
}

// shadow marks day occurrences that start together with an invariant and
// rejects any other collision with an invariant span.
func shadow(occs []occurrence, invariants []occurrence) error {
	for i := range occs {
		o := &occs[i]
		for _, inv := range invariants {
			if o.start == inv.start {
				o.shadowed = true
				break
			}
			if o.start < inv.end && inv.start < o.end {
				return invalidRange(o.entry, "%s %q (%s) overlaps invariant %q (%s)", o.entry.Path,
					o.entry.Block, o.entry.Label(), inv.entry.Block, inv.entry.Label())
			}
		}
	}
	return nil
}

// =============================================================================
// Row emission
// =============================================================================

// emitState is the row-emission state machine.
type emitState int

const (
	scanning        emitState = iota // emitting one TimeRow per boundary
	withinInvariant                  // skipping the boundaries an invariant covers
)

func emit(doc *schedule.Document, start, end int, invariants []occurrence, days [clock.NumWeekdays][]occurrence) Grid {
	invariantAt := make(map[int]occurrence, len(invariants))
	for _, inv := range invariants {
		invariantAt[inv.start] = inv
	}
	var dayAt [clock.NumWeekdays]map[int]occurrence
	for d, occs := range days {
		dayAt[d] = make(map[int]occurrence, len(occs))
		for _, o := range occs {
			if !o.shadowed {
				dayAt[d][o.start] = o
			}
		}
	}

	grid := Grid{
		Start:    start,
		End:      end,
		Interval: Interval,
		Days:     clock.Weekdays(),
		Rows:     make([]Row, 0, (end-start)/Interval+1),
	}

	state := scanning
	cursor, resume := start, start
	for cursor < end {
		switch state {
		case scanning:
			if inv, ok := invariantAt[cursor]; ok {
				grid.Rows = append(grid.Rows, InvariantRow{
					Label:         inv.entry.Label(),
					Minute:        inv.start,
					Block:         inv.entry.Block,
					Color:         invariantColor(doc, inv.entry.Block),
					DurationSlots: inv.slots(),
				})
				resume = inv.end
				state = withinInvariant
				continue
			}

			row := TimeRow{Label: clock.ToText(cursor), Minute: cursor}
			for d := range dayAt {
				if o, ok := dayAt[d][cursor]; ok {
					row.Cells[d] = &Cell{
						Block:        o.entry.Block,
						Color:        cellColor(doc, o.entry.Block),
						RowSpanSlots: o.slots(),
					}
				}
			}
			grid.Rows = append(grid.Rows, row)
			cursor += Interval

		case withinInvariant:
			cursor = resume
			state = scanning
		}
	}
	return grid
}

func cellColor(doc *schedule.Document, block string) string {
	if c, ok := doc.Color(block); ok {
		return c
	}
	return DefaultCellColor
}

func invariantColor(doc *schedule.Document, block string) string {
	if c, ok := doc.Color(block); ok {
		return c
	}
	if c, ok := doc.Color(schedule.InvariantsColorKey); ok {
		return c
	}
	return DefaultInvariantColor
}

// =============================================================================
// Error helpers
// =============================================================================

// atField attaches a document field path to an *errors.Error, keeping its text.
func atField(err error, field string) error {
	var e *errs.Error
	if errors.As(err, &e) {
		e.Field = field
		return e
	}
	return fmt.Errorf("%s: %w", field, err)
}

func invalidRange(e schedule.Entry, format string, args ...any) error {
	return errs.New(errs.ErrCodeInvalidRange, format, args...).WithField(e.Path, e.Label())
}
