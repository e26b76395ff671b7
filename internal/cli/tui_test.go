package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	errs "github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/pipeline"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

func compileWeek(t *testing.T) *timetable.Result {
	t.Helper()
	tt, err := pipeline.NewRunner(nil, nil, nil).Compile(t.Context(), []byte(week), pipeline.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return tt
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m ViewerModel, msg tea.Msg) (ViewerModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(ViewerModel), cmd
}

func TestViewerLoad(t *testing.T) {
	tt := compileWeek(t)
	calls := 0
	m := NewViewerModel("week.yaml", func() (*timetable.Result, error) {
		calls++
		return tt, nil
	})
	m.Colors = false

	if !strings.Contains(m.View(), "loading") {
		t.Error("viewer should show loading before the first result")
	}

	m, _ = update(m, m.Init()())
	if calls != 1 || m.Result != tt {
		t.Fatalf("Init should load once, calls = %d", calls)
	}
	view := m.View()
	for _, want := range []string{"week.yaml", "Monday", "Recess", "08:00 AM"} {
		if !strings.Contains(view, want) {
			t.Errorf("grid view missing %q", want)
		}
	}

	m, cmd := update(m, key("r"))
	if cmd == nil {
		t.Fatal("r should return a reload command")
	}
	m, _ = update(m, cmd())
	if calls != 2 {
		t.Errorf("reload calls = %d, want 2", calls)
	}
}

func TestViewerTabSwitchesMode(t *testing.T) {
	tt := compileWeek(t)
	m := NewViewerModel("week", func() (*timetable.Result, error) { return tt, nil })
	m, _ = update(m, loadedMsg{result: tt})

	m, _ = update(m, key("tab"))
	if m.Mode != modeSummary {
		t.Fatalf("Mode = %v, want Summary", m.Mode)
	}
	if !strings.Contains(m.View(), "Total Minutes") {
		t.Error("summary view should show the summary table")
	}

	m, _ = update(m, key("tab"))
	if m.Mode != modeGrid {
		t.Errorf("Mode = %v, want Grid", m.Mode)
	}
}

func TestViewerKeepsResultOnError(t *testing.T) {
	tt := compileWeek(t)
	m := NewViewerModel("week", nil)
	m, _ = update(m, loadedMsg{result: tt})

	bad := errs.New(errs.ErrCodeMalformedTime, "Invalid time format: %s", "9:7 AM").WithField("Start", "9:7 AM")
	m, _ = update(m, loadedMsg{err: bad})

	if m.Result != tt {
		t.Error("failed reload should keep the previous result")
	}
	view := m.View()
	if !strings.Contains(view, "Invalid time format: 9:7 AM") || !strings.Contains(view, "at Start") {
		t.Errorf("view should show the error:\n%s", view)
	}
}

func TestViewerScroll(t *testing.T) {
	tt := compileWeek(t)
	m := NewViewerModel("week", nil)
	m, _ = update(m, loadedMsg{result: tt})
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 10})

	if m.Height != 5 {
		t.Fatalf("Height = %d, want 5", m.Height)
	}
	for i := 0; i < 100; i++ {
		m, _ = update(m, key("down"))
	}
	if want := len(m.lines()) - m.Height; m.Offset != want {
		t.Errorf("Offset = %d, want clamped to %d", m.Offset, want)
	}

	_, cmd := update(m, key("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
}
