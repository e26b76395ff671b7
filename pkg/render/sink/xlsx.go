package sink

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/weekgrid/pkg/render"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// Sheet names used by RenderXLSX.
const (
	TimetableSheet = "Timetable"
	SummarySheet   = "Summary"
)

// XLSXOption configures workbook rendering.
type XLSXOption func(*xlsxRenderer)

type xlsxRenderer struct {
	title   string
	summary bool
}

// WithXLSXTitle writes a title line above the grid.
func WithXLSXTitle(title string) XLSXOption { return func(r *xlsxRenderer) { r.title = title } }

// WithXLSXSummary toggles the Summary sheet (on by default).
func WithXLSXSummary(on bool) XLSXOption { return func(r *xlsxRenderer) { r.summary = on } }

// RenderXLSX renders the timetable as an Excel workbook. Each emitted row is
// one spreadsheet row; spanning cells and invariant bands become merged
// ranges filled with their colour.
func RenderXLSX(r *timetable.Result, opts ...XLSXOption) ([]byte, error) {
	x := xlsxRenderer{summary: true}
	for _, opt := range opts {
		opt(&x)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), TimetableSheet); err != nil {
		return nil, err
	}
	w := &workbook{f: f, styles: make(map[string]int)}

	if err := w.writeGrid(r.Grid, x.title); err != nil {
		return nil, fmt.Errorf("xlsx grid: %w", err)
	}
	if x.summary {
		if err := w.writeSummary(r.Summary); err != nil {
			return nil, fmt.Errorf("xlsx summary: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type workbook struct {
	f      *excelize.File
	styles map[string]int // fill hex -> style id
	header int
}

func (w *workbook) writeGrid(g timetable.Grid, title string) error {
	sheet := TimetableSheet
	row := 1
	if title != "" {
		if err := w.f.SetCellValue(sheet, "A1", title); err != nil {
			return err
		}
		row++
	}

	header, err := w.headerStyle()
	if err != nil {
		return err
	}
	if err := w.set(sheet, 1, row, "Time", header); err != nil {
		return err
	}
	for i, d := range g.Days {
		if err := w.set(sheet, i+2, row, d.String(), header); err != nil {
			return err
		}
	}
	if err := w.f.SetColWidth(sheet, "A", "A", 20); err != nil {
		return err
	}
	if last, err := excelize.ColumnNumberToName(len(g.Days) + 1); err == nil && len(g.Days) > 0 {
		if err := w.f.SetColWidth(sheet, "B", last, 18); err != nil {
			return err
		}
	}

	first := row + 1
	for i, gr := range g.Rows {
		y := first + i
		switch rr := gr.(type) {
		case timetable.InvariantRow:
			if err := w.set(sheet, 1, y, rr.Label, 0); err != nil {
				return err
			}
			if len(g.Days) == 0 {
				continue
			}
			style, err := w.fillStyle(rr.Color)
			if err != nil {
				return err
			}
			if err := w.span(sheet, 2, y, len(g.Days)+1, y, rr.Block, style); err != nil {
				return err
			}
		case timetable.TimeRow:
			if err := w.set(sheet, 1, y, rr.Label, 0); err != nil {
				return err
			}
			for col, d := range g.Days {
				c := rr.Cells[d]
				if c == nil {
					continue
				}
				style, err := w.fillStyle(c.Color)
				if err != nil {
					return err
				}
				if err := w.span(sheet, col+2, y, col+2, y+c.RowSpanSlots-1, c.Block, style); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (w *workbook) writeSummary(s timetable.Summary) error {
	if _, err := w.f.NewSheet(SummarySheet); err != nil {
		return err
	}
	header, err := w.headerStyle()
	if err != nil {
		return err
	}
	if err := w.set(SummarySheet, 1, 1, "Block", header); err != nil {
		return err
	}
	if err := w.set(SummarySheet, 2, 1, "Total Minutes", header); err != nil {
		return err
	}
	for i, name := range s.Names() {
		if err := w.set(SummarySheet, 1, i+2, name, 0); err != nil {
			return err
		}
		if err := w.set(SummarySheet, 2, i+2, s[name], 0); err != nil {
			return err
		}
	}
	return w.f.SetColWidth(SummarySheet, "A", "B", 20)
}

// set writes one value, applying style when non-zero.
func (w *workbook) set(sheet string, col, row int, value any, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(sheet, cell, value); err != nil {
		return err
	}
	if style == 0 {
		return nil
	}
	return w.f.SetCellStyle(sheet, cell, cell, style)
}

// span writes value into a merged, styled range.
func (w *workbook) span(sheet string, col1, row1, col2, row2 int, value any, style int) error {
	from, err := excelize.CoordinatesToCellName(col1, row1)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(col2, row2)
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(sheet, from, value); err != nil {
		return err
	}
	if from != to {
		if err := w.f.MergeCell(sheet, from, to); err != nil {
			return err
		}
	}
	return w.f.SetCellStyle(sheet, from, to, style)
}

func (w *workbook) headerStyle() (int, error) {
	if w.header != 0 {
		return w.header, nil
	}
	id, err := w.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#EEEEEE"}},
		Border:    borders(),
	})
	if err != nil {
		return 0, err
	}
	w.header = id
	return id, nil
}

// fillStyle returns a cached style for a colour name.
func (w *workbook) fillStyle(name string) (int, error) {
	bg := render.RGBA(name)
	hex := render.Hex(bg)
	if id, ok := w.styles[hex]; ok {
		return id, nil
	}
	id, err := w.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: render.Hex(render.TextColor(bg))},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex}},
		Border:    borders(),
	})
	if err != nil {
		return 0, err
	}
	w.styles[hex] = id
	return id, nil
}

func borders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "555555", Style: 1},
		{Type: "top", Color: "555555", Style: 1},
		{Type: "right", Color: "555555", Style: 1},
		{Type: "bottom", Color: "555555", Style: 1},
	}
}
