package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/weekgrid/pkg/render"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// Default SVG geometry in user units.
const (
	DefaultSlotHeight  = 20.0
	DefaultColumnWidth = 140.0
	DefaultTimeWidth   = 130.0

	svgHeaderHeight = 28.0
	svgMargin       = 10.0
	svgSummaryLine  = 18.0
	svgFontSize     = 12.0
	svgGridStroke   = "#555555"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	slotHeight  float64
	columnWidth float64
	timeWidth   float64
	title       string
	summary     bool
}

func WithSlotHeight(h float64) SVGOption  { return func(r *svgRenderer) { r.slotHeight = h } }
func WithColumnWidth(w float64) SVGOption { return func(r *svgRenderer) { r.columnWidth = w } }
func WithTimeWidth(w float64) SVGOption   { return func(r *svgRenderer) { r.timeWidth = w } }
func WithSVGTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }
func WithSVGSummary() SVGOption           { return func(r *svgRenderer) { r.summary = true } }

// RenderSVG draws the grid. Rows are placed by start minute, so a slot
// always has the same height whether it belongs to a time row or an
// invariant band.
func RenderSVG(r *timetable.Result, opts ...SVGOption) []byte {
	s := newSVGRenderer(opts...)
	g := r.Grid

	top := svgMargin
	if s.title != "" {
		top += svgHeaderHeight
	}
	gridTop := top + svgHeaderHeight
	slots := float64(g.End-g.Start) / float64(timetable.Interval)
	gridHeight := slots * s.slotHeight

	width := 2*svgMargin + s.timeWidth + float64(len(g.Days))*s.columnWidth
	height := gridTop + gridHeight + svgMargin
	if s.summary {
		height += svgSummaryLine * float64(len(r.Summary)+2)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", width, height)
	fmt.Fprintf(&buf, `  <g font-family="sans-serif" font-size="%.0f">`+"\n", svgFontSize)

	if s.title != "" {
		text(&buf, width/2, svgMargin+svgHeaderHeight/2, "middle", "#000000", s.title, true)
	}
	s.renderHeader(&buf, g, top)

	for _, row := range g.Rows {
		y := gridTop + float64(row.StartMinute()-g.Start)/float64(timetable.Interval)*s.slotHeight
		switch rr := row.(type) {
		case timetable.InvariantRow:
			s.renderInvariant(&buf, g, rr, y)
		case timetable.TimeRow:
			s.renderTimeRow(&buf, g, rr, y)
		}
	}

	if s.summary {
		s.renderSummary(&buf, r.Summary, gridTop+gridHeight+svgMargin)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		slotHeight:  DefaultSlotHeight,
		columnWidth: DefaultColumnWidth,
		timeWidth:   DefaultTimeWidth,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (s *svgRenderer) columnX(i int) float64 {
	return svgMargin + s.timeWidth + float64(i)*s.columnWidth
}

func (s *svgRenderer) renderHeader(buf *bytes.Buffer, g timetable.Grid, y float64) {
	rect(buf, svgMargin, y, s.timeWidth, svgHeaderHeight, "#eeeeee")
	text(buf, svgMargin+s.timeWidth/2, y+svgHeaderHeight/2, "middle", "#000000", "Time", true)
	for i, d := range g.Days {
		x := s.columnX(i)
		rect(buf, x, y, s.columnWidth, svgHeaderHeight, "#eeeeee")
		text(buf, x+s.columnWidth/2, y+svgHeaderHeight/2, "middle", "#000000", d.String(), true)
	}
}

func (s *svgRenderer) renderInvariant(buf *bytes.Buffer, g timetable.Grid, row timetable.InvariantRow, y float64) {
	h := float64(row.DurationSlots) * s.slotHeight
	rect(buf, svgMargin, y, s.timeWidth, h, "#ffffff")
	text(buf, svgMargin+s.timeWidth-6, y+h/2, "end", "#000000", row.Label, false)

	fill := render.RGBA(row.Color)
	w := float64(len(g.Days)) * s.columnWidth
	rect(buf, s.columnX(0), y, w, h, render.Hex(fill))
	text(buf, s.columnX(0)+w/2, y+h/2, "middle", render.Hex(render.TextColor(fill)), row.Block, false)
}

func (s *svgRenderer) renderTimeRow(buf *bytes.Buffer, g timetable.Grid, row timetable.TimeRow, y float64) {
	rect(buf, svgMargin, y, s.timeWidth, s.slotHeight, "#ffffff")
	text(buf, svgMargin+s.timeWidth-6, y+s.slotHeight/2, "end", "#000000", row.Label, false)

	for i, d := range g.Days {
		c := row.Cells[d]
		if c == nil {
			continue
		}
		fill := render.RGBA(c.Color)
		x := s.columnX(i)
		h := float64(c.RowSpanSlots) * s.slotHeight
		fmt.Fprintf(buf, `    <rect class="cell" data-day="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			d, x, y, s.columnWidth, h, render.Hex(fill), svgGridStroke)
		text(buf, x+s.columnWidth/2, y+h/2, "middle", render.Hex(render.TextColor(fill)), c.Block, false)
	}
}

func (s *svgRenderer) renderSummary(buf *bytes.Buffer, sum timetable.Summary, y float64) {
	x := svgMargin
	text(buf, x, y+svgSummaryLine/2, "start", "#000000", "Block", true)
	text(buf, x+2*s.columnWidth, y+svgSummaryLine/2, "end", "#000000", "Total Minutes", true)
	for i, name := range sum.Names() {
		ly := y + float64(i+1)*svgSummaryLine + svgSummaryLine/2
		text(buf, x, ly, "start", "#000000", name, false)
		text(buf, x+2*s.columnWidth, ly, "end", "#000000", fmt.Sprint(sum[name]), false)
	}
}

func rect(buf *bytes.Buffer, x, y, w, h float64, fill string) {
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		x, y, w, h, fill, svgGridStroke)
}

func text(buf *bytes.Buffer, x, y float64, anchor, fill, s string, bold bool) {
	weight := ""
	if bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="%s" dominant-baseline="middle" fill="%s"%s>%s</text>`+"\n",
		x, y, anchor, fill, weight, html.EscapeString(s))
}
