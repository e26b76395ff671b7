package schedule

import (
	"maps"
	"strings"

	"github.com/matzehuels/weekgrid/pkg/clock"
)

// InvariantsColorKey is the Colors key used for invariant blocks that have no
// colour of their own.
const InvariantsColorKey = "Invariants"

// Document is a parsed weekly timetable. It is read-only input to the compiler.
type Document struct {
	Start      string                    // First visible time, e.g. "8:00 AM"
	End        string                    // Last visible time (exclusive)
	Days       map[clock.Weekday][]Entry // Per-day blocks in document order
	Invariants []Entry                   // Blocks shared by every day
	Colors     map[string]string         // Block name → display colour
}

// Entry is one scheduled occurrence of a block.
type Entry struct {
	Block string // Block name, e.g. "Math"
	Start string // Start time text
	End   string // End time text
	Time  string // Original "start - end" text, empty when given as Start/End
	Path  string // Field path inside the document, e.g. "Monday[0]"
}

// Label returns the entry's time range as written in the document.
func (e Entry) Label() string {
	if e.Time != "" {
		return e.Time
	}
	return e.Start + " - " + e.End
}

// StartField returns the path of the field holding the start time.
func (e Entry) StartField() string {
	if e.Time != "" {
		return e.Path + ".Time"
	}
	return e.Path + ".Start"
}

// EndField returns the path of the field holding the end time.
func (e Entry) EndField() string {
	if e.Time != "" {
		return e.Path + ".Time"
	}
	return e.Path + ".End"
}

// Entries returns the entries for day, or nil.
func (d *Document) Entries(day clock.Weekday) []Entry {
	if d.Days == nil {
		return nil
	}
	return d.Days[day]
}

// Color looks up a colour for key, matching case-insensitively when there is
// no exact match.
func (d *Document) Color(key string) (string, bool) {
	if c, ok := d.Colors[key]; ok && c != "" {
		return c, true
	}
	for k, c := range d.Colors {
		if strings.EqualFold(k, key) && c != "" {
			return c, true
		}
	}
	return "", false
}

// WithDefaultColors returns a shallow copy of d whose Colors also contain
// every entry of defaults that d does not define itself.
func (d *Document) WithDefaultColors(defaults map[string]string) *Document {
	out := *d
	out.Colors = make(map[string]string, len(d.Colors)+len(defaults))
	maps.Copy(out.Colors, defaults)
	maps.Copy(out.Colors, d.Colors)
	return &out
}
