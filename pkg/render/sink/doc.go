// Package sink renders a compiled timetable to output formats.
//
// # Overview
//
// Every sink takes a [*timetable.Result] and returns the encoded artifact.
// Sinks never modify the result and are safe to call concurrently.
//
//   - [RenderHTML]: an HTML table using rowspan and colspan, plus the
//     "Block / Total Minutes" summary table
//   - [RenderSVG]: a vector drawing of the grid, one band per 15-minute slot
//   - [RenderPNG], [RenderPDF]: the SVG converted with rsvg-convert
//   - [RenderXLSX]: an Excel workbook with merged cells and a Summary sheet
//   - [RenderJSON]: the grid and summary as indented JSON
//   - [RenderText]: a terminal table drawn with lipgloss
//
// # Options
//
// Sinks are configured with functional options:
//
//	html := sink.RenderHTML(r, sink.WithHTMLTitle("Grade 3"), sink.WithHTMLDocument())
//	svg := sink.RenderSVG(r, sink.WithSlotHeight(24))
//	png, err := sink.RenderPNG(r, sink.WithScale(2), sink.WithPNGSVGOptions(sink.WithSlotHeight(24)))
//
// # Colours
//
// Cell and invariant colours come from the compiled grid. Formats that need
// concrete values (SVG, XLSX, terminal) resolve names with
// [render.ResolveColor]; HTML passes the name through to CSS.
//
// [*timetable.Result]: github.com/matzehuels/weekgrid/pkg/timetable.Result
// [render.ResolveColor]: github.com/matzehuels/weekgrid/pkg/render.ResolveColor
package sink
