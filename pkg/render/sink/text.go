package sink

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/weekgrid/pkg/render"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// Continuation marks a slot covered by a cell that started in an earlier row.
const Continuation = "┆"

// TextOption configures terminal rendering.
type TextOption func(*textRenderer)

type textRenderer struct {
	colors  bool
	summary bool
}

// WithTextColors paints cells with their background colour.
func WithTextColors() TextOption { return func(r *textRenderer) { r.colors = true } }

// WithTextSummary toggles the summary table (on by default).
func WithTextSummary(on bool) TextOption { return func(r *textRenderer) { r.summary = on } }

var (
	textHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	textCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	textTimeStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	textBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RenderText draws the grid as a terminal table. Terminals have no row or
// column spans, so the grid is drawn from [timetable.Grid.Occupancy]:
// continued slots show [Continuation] and invariant bands repeat their
// block across every day.
func RenderText(r *timetable.Result, opts ...TextOption) []byte {
	tr := textRenderer{summary: true}
	for _, opt := range opts {
		opt(&tr)
	}

	var b strings.Builder
	b.WriteString(tr.grid(r.Grid))
	b.WriteString("\n")
	if tr.summary {
		b.WriteString("\n")
		b.WriteString(RenderSummaryText(r.Summary))
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// RenderSummaryText draws the "Block / Total Minutes" table.
func RenderSummaryText(s timetable.Summary) string {
	names := s.Names()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, fmt.Sprint(s[name])})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(textBorderStyle).
		Headers("Block", "Total Minutes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return textHeaderStyle
			}
			if col == 1 {
				return textTimeStyle
			}
			return textCellStyle
		})
	return t.Render()
}

func (tr textRenderer) grid(g timetable.Grid) string {
	occ := g.Occupancy()
	rows := make([][]string, len(g.Rows))
	fills := make([][]string, len(g.Rows))

	for i, row := range g.Rows {
		cells := make([]string, len(g.Days)+1)
		colors := make([]string, len(g.Days)+1)
		switch rr := row.(type) {
		case timetable.InvariantRow:
			cells[0] = rr.Label
			for j := range g.Days {
				cells[j+1] = rr.Block
				colors[j+1] = rr.Color
			}
		case timetable.TimeRow:
			cells[0] = rr.Label
			for j, d := range g.Days {
				switch occ[i][d] {
				case timetable.SlotStart:
					cells[j+1] = rr.Cells[d].Block
					colors[j+1] = rr.Cells[d].Color
				case timetable.SlotContinued:
					cells[j+1] = Continuation
				}
			}
		}
		rows[i] = cells
		fills[i] = colors
	}

	headers := make([]string, 0, len(g.Days)+1)
	headers = append(headers, "Time")
	for _, d := range g.Days {
		headers = append(headers, d.String())
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(textBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return textHeaderStyle
			case col == 0:
				return textTimeStyle
			}
			if !tr.colors || row >= len(fills) || fills[row][col] == "" {
				return textCellStyle
			}
			bg := render.RGBA(fills[row][col])
			return textCellStyle.
				Background(lipgloss.Color(render.Hex(bg))).
				Foreground(lipgloss.Color(render.Hex(render.TextColor(bg))))
		})
	return t.Render()
}
