package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// HTMLOption configures HTML rendering.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title    string
	document bool
	summary  bool
}

// WithHTMLTitle sets the page title and caption.
func WithHTMLTitle(title string) HTMLOption { return func(r *htmlRenderer) { r.title = title } }

// WithHTMLDocument wraps the tables in a complete HTML page.
func WithHTMLDocument() HTMLOption { return func(r *htmlRenderer) { r.document = true } }

// WithHTMLSummary toggles the summary table (on by default).
func WithHTMLSummary(on bool) HTMLOption { return func(r *htmlRenderer) { r.summary = on } }

const htmlStyle = `
    body { font-family: sans-serif; margin: 2em; }
    table { border-collapse: collapse; margin-bottom: 2em; }
    th, td { padding: 4px 10px; text-align: center; }
    td.time { white-space: nowrap; text-align: right; }`

// RenderHTML renders the timetable as an HTML fragment: the grid table
// followed by the summary table.
func RenderHTML(r *timetable.Result, opts ...HTMLOption) []byte {
	h := htmlRenderer{summary: true}
	for _, opt := range opts {
		opt(&h)
	}

	var buf bytes.Buffer
	if h.document {
		buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
		if h.title != "" {
			fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(h.title))
		}
		fmt.Fprintf(&buf, "<style>%s\n</style>\n</head>\n<body>\n", htmlStyle)
	}

	writeGridTable(&buf, r.Grid, h.title)
	if h.summary {
		writeSummaryTable(&buf, r.Summary)
	}

	if h.document {
		buf.WriteString("</body>\n</html>\n")
	}
	return buf.Bytes()
}

func writeGridTable(buf *bytes.Buffer, g timetable.Grid, title string) {
	buf.WriteString("<table border=\"1\" class=\"timetable\">\n")
	if title != "" {
		fmt.Fprintf(buf, "  <caption>%s</caption>\n", html.EscapeString(title))
	}

	buf.WriteString("  <thead>\n    <tr><th>Time</th>")
	for _, d := range g.Days {
		fmt.Fprintf(buf, "<th>%s</th>", d)
	}
	buf.WriteString("</tr>\n  </thead>\n  <tbody>\n")

	occ := g.Occupancy()
	for i, row := range g.Rows {
		switch rr := row.(type) {
		case timetable.InvariantRow:
			fmt.Fprintf(buf, "    <tr class=\"invariant\"><td class=\"time\">%s</td>", html.EscapeString(rr.Label))
			fmt.Fprintf(buf, "<td colspan=\"%d\" rowspan=\"1\" style=\"background-color: %s\">%s</td></tr>\n",
				len(g.Days), cssColor(rr.Color), html.EscapeString(rr.Block))
		case timetable.TimeRow:
			fmt.Fprintf(buf, "    <tr><td class=\"time\">%s</td>", html.EscapeString(rr.Label))
			for _, d := range g.Days {
				switch occ[i][d] {
				case timetable.SlotStart:
					c := rr.Cells[d]
					fmt.Fprintf(buf, "<td rowspan=\"%d\" style=\"background-color: %s\">%s</td>",
						c.RowSpanSlots, cssColor(c.Color), html.EscapeString(c.Block))
				case timetable.SlotEmpty:
					buf.WriteString("<td></td>")
				}
			}
			buf.WriteString("</tr>\n")
		}
	}
	buf.WriteString("  </tbody>\n</table>\n")
}

func writeSummaryTable(buf *bytes.Buffer, s timetable.Summary) {
	buf.WriteString("<table border=\"1\" class=\"summary\">\n")
	buf.WriteString("  <thead>\n    <tr><th>Block</th><th>Total Minutes</th></tr>\n  </thead>\n  <tbody>\n")
	for _, name := range s.Names() {
		fmt.Fprintf(buf, "    <tr><td>%s</td><td>%d</td></tr>\n", html.EscapeString(name), s[name])
	}
	buf.WriteString("  </tbody>\n</table>\n")
}

// cssColor passes colour names through to CSS, escaping anything odd.
func cssColor(name string) string {
	return html.EscapeString(name)
}
