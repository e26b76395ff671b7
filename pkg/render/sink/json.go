package sink

import "github.com/matzehuels/weekgrid/pkg/timetable"

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
}

// WithJSONCompact drops indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// RenderJSON exports the grid and summary as JSON. The document is the
// timetable wire format: it decodes back with [timetable.UnmarshalResult],
// which is how the pipeline cache and the HTTP API exchange results.
//
// Rows carry a "kind" of "invariant" or "time"; time rows list their cells
// by weekday name and omit empty days.
func RenderJSON(r *timetable.Result, opts ...JSONOption) ([]byte, error) {
	j := jsonRenderer{}
	for _, opt := range opts {
		opt(&j)
	}
	if j.compact {
		return timetable.MarshalResult(r)
	}
	return timetable.MarshalResultIndent(r)
}
