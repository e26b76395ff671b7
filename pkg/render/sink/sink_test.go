package sink

import (
	"testing"

	"github.com/matzehuels/weekgrid/pkg/schedule"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

const testDocument = `
Start: 8:00 AM
End: 10:00 AM
Colors:
  Invariants: silver
  Math: lightgreen
  French: "#add8e6"
Invariants:
  - Block: Recess
    Time: 9:00 AM - 9:30 AM
Monday:
  - Block: French
    Time: 8:00 AM - 9:00 AM
  - Block: Math
    Time: 9:30 AM - 10:00 AM
Wednesday:
  - Block: Art & Craft
    Time: 8:15 AM - 8:45 AM
`

func testResult(t *testing.T) *timetable.Result {
	t.Helper()
	doc, err := schedule.Parse([]byte(testDocument), schedule.FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	r, err := timetable.Compile(doc)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	return r
}
