package timetable

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/weekgrid/pkg/clock"
)

// wireResult is the JSON form of a Result, used for the JSON sink, the HTTP
// API and the cache. Rows carry a "kind" discriminator.
type wireResult struct {
	Start       string         `json:"start"`
	End         string         `json:"end"`
	StartMinute int            `json:"start_minute"`
	EndMinute   int            `json:"end_minute"`
	Interval    int            `json:"interval"`
	Days        []string       `json:"days"`
	Rows        []wireRow      `json:"rows"`
	Summary     map[string]int `json:"summary"`
}

type wireRow struct {
	Kind          RowKind              `json:"kind"`
	Label         string               `json:"label"`
	Minute        int                  `json:"minute"`
	Block         string               `json:"block,omitempty"`
	Color         string               `json:"color,omitempty"`
	DurationSlots int                  `json:"duration_slots,omitempty"`
	Cells         map[string]*wireCell `json:"cells,omitempty"`
}

type wireCell struct {
	Block        string `json:"block"`
	Color        string `json:"color"`
	RowSpanSlots int    `json:"row_span_slots"`
}

// MarshalResult encodes r as compact JSON.
func MarshalResult(r *Result) ([]byte, error) {
	return json.Marshal(toWire(r))
}

// MarshalResultIndent encodes r as indented JSON.
func MarshalResultIndent(r *Result) ([]byte, error) {
	return json.MarshalIndent(toWire(r), "", "  ")
}

// UnmarshalResult decodes JSON produced by MarshalResult.
func UnmarshalResult(data []byte) (*Result, error) {
	var w wireResult
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode timetable: %w", err)
	}
	return fromWire(w)
}

func toWire(r *Result) wireResult {
	g := r.Grid
	w := wireResult{
		Start:       clock.ToText(g.Start),
		End:         clock.ToText(g.End),
		StartMinute: g.Start,
		EndMinute:   g.End,
		Interval:    g.Interval,
		Days:        make([]string, len(g.Days)),
		Rows:        make([]wireRow, 0, len(g.Rows)),
		Summary:     make(map[string]int, len(r.Summary)),
	}
	for i, d := range g.Days {
		w.Days[i] = d.String()
	}
	for name, m := range r.Summary {
		w.Summary[name] = m
	}

	for _, row := range g.Rows {
		switch rr := row.(type) {
		case InvariantRow:
			w.Rows = append(w.Rows, wireRow{
				Kind:          KindInvariant,
				Label:         rr.Label,
				Minute:        rr.Minute,
				Block:         rr.Block,
				Color:         rr.Color,
				DurationSlots: rr.DurationSlots,
			})
		case TimeRow:
			wr := wireRow{Kind: KindTime, Label: rr.Label, Minute: rr.Minute}
			for d, c := range rr.Cells {
				if c == nil {
					continue
				}
				if wr.Cells == nil {
					wr.Cells = make(map[string]*wireCell)
				}
				wr.Cells[clock.Weekday(d).String()] = &wireCell{Block: c.Block, Color: c.Color, RowSpanSlots: c.RowSpanSlots}
			}
			w.Rows = append(w.Rows, wr)
		}
	}
	return w
}

func fromWire(w wireResult) (*Result, error) {
	r := &Result{
		Grid: Grid{
			Start:    w.StartMinute,
			End:      w.EndMinute,
			Interval: w.Interval,
			Days:     make([]clock.Weekday, 0, len(w.Days)),
			Rows:     make([]Row, 0, len(w.Rows)),
		},
		Summary: make(Summary, len(w.Summary)),
	}
	for _, name := range w.Days {
		d, ok := clock.ParseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("decode timetable: unknown day %q", name)
		}
		r.Grid.Days = append(r.Grid.Days, d)
	}
	for name, m := range w.Summary {
		r.Summary[name] = m
	}

	for i, wr := range w.Rows {
		switch wr.Kind {
		case KindInvariant:
			r.Grid.Rows = append(r.Grid.Rows, InvariantRow{
				Label:         wr.Label,
				Minute:        wr.Minute,
				Block:         wr.Block,
				Color:         wr.Color,
				DurationSlots: wr.DurationSlots,
			})
		case KindTime:
			row := TimeRow{Label: wr.Label, Minute: wr.Minute}
			for name, c := range wr.Cells {
				d, ok := clock.ParseWeekday(name)
				if !ok || c == nil {
					return nil, fmt.Errorf("decode timetable: row %d: bad cell %q", i, name)
				}
				row.Cells[d] = &Cell{Block: c.Block, Color: c.Color, RowSpanSlots: c.RowSpanSlots}
			}
			r.Grid.Rows = append(r.Grid.Rows, row)
		default:
			return nil, fmt.Errorf("decode timetable: row %d: unknown kind %q", i, wr.Kind)
		}
	}
	return r, nil
}
