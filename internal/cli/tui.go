package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	errs "github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/render/sink"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

var (
	viewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	viewErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	viewTabStyle   = lipgloss.NewStyle().Foreground(colorGray)
	viewActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// viewMode selects what the viewer shows.
type viewMode int

const (
	modeGrid viewMode = iota
	modeSummary
)

func (m viewMode) String() string {
	if m == modeSummary {
		return "Summary"
	}
	return "Grid"
}

// loadedMsg carries the result of a (re)load.
type loadedMsg struct {
	result *timetable.Result
	err    error
}

// =============================================================================
// ViewerModel - Interactive timetable viewer
// =============================================================================

// ViewerModel is the bubbletea model behind the view command.
//
// tab switches between grid and summary, r reloads the document, the arrow
// keys scroll. A failed reload keeps the last good timetable on screen and
// shows the error above it.
type ViewerModel struct {
	Title  string
	Result *timetable.Result
	Err    error
	Mode   viewMode
	Offset int
	Height int
	Colors bool

	load func() (*timetable.Result, error)
}

// NewViewerModel creates a viewer that calls load on start and on every reload.
func NewViewerModel(title string, load func() (*timetable.Result, error)) ViewerModel {
	return ViewerModel{Title: title, Height: 20, Colors: true, load: load}
}

func (m ViewerModel) Init() tea.Cmd {
	return m.reload
}

func (m ViewerModel) reload() tea.Msg {
	tt, err := m.load()
	return loadedMsg{result: tt, err: err}
}

func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.Err = msg.err
		if msg.err == nil {
			m.Result = msg.result
			m.clampOffset()
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.Mode = (m.Mode + 1) % 2
			m.Offset = 0
		case "r":
			return m, m.reload
		case "up", "k":
			if m.Offset > 0 {
				m.Offset--
			}
		case "down", "j":
			m.Offset++
			m.clampOffset()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 5
		if m.Height < 5 {
			m.Height = 5
		}
		m.clampOffset()
	}
	return m, nil
}

func (m ViewerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("  ")
	for i, mode := range []viewMode{modeGrid, modeSummary} {
		if i > 0 {
			b.WriteString(viewTabStyle.Render(" · "))
		}
		if mode == m.Mode {
			b.WriteString(viewActiveTab.Render(mode.String()))
		} else {
			b.WriteString(viewTabStyle.Render(mode.String()))
		}
	}
	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("tab switch  r reload  ↑/↓ scroll  q quit"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(viewErrorStyle.Render(iconError + " " + errs.UserMessage(m.Err)))
		if f := errs.Field(m.Err); f != "" {
			b.WriteString(viewHelpStyle.Render(fmt.Sprintf("  (at %s)", f)))
		}
		b.WriteString("\n\n")
	}
	if m.Result == nil {
		if m.Err == nil {
			b.WriteString(viewHelpStyle.Render("loading..."))
		}
		return b.String()
	}

	lines := m.lines()
	end := m.Offset + m.Height
	if end > len(lines) {
		end = len(lines)
	}
	b.WriteString(strings.Join(lines[m.Offset:end], "\n"))
	if len(lines) > m.Height {
		b.WriteString("\n")
		b.WriteString(viewHelpStyle.Render(fmt.Sprintf("  [%d-%d/%d]", m.Offset+1, end, len(lines))))
	}
	return b.String()
}

// lines renders the current mode.
func (m ViewerModel) lines() []string {
	if m.Result == nil {
		return nil
	}
	var s string
	if m.Mode == modeSummary {
		s = sink.RenderSummaryText(m.Result.Summary)
	} else {
		opts := []sink.TextOption{sink.WithTextSummary(false)}
		if m.Colors {
			opts = append(opts, sink.WithTextColors())
		}
		s = strings.TrimRight(string(sink.RenderText(m.Result, opts...)), "\n")
	}
	return strings.Split(s, "\n")
}

func (m *ViewerModel) clampOffset() {
	limit := len(m.lines()) - m.Height
	if limit < 0 {
		limit = 0
	}
	if m.Offset > limit {
		m.Offset = limit
	}
}
