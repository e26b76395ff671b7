// Package render holds the rendering helpers shared by every timetable sink.
//
// # Overview
//
// The sinks themselves live in the [sink] subpackage. This package provides
// the pieces they have in common:
//
//   - Colour resolution ([ResolveColor], [RGBA], [TextColor])
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Colours
//
// Timetable documents name colours the way a web page does: CSS colour
// keywords ("lightblue", "lightgray") or hex triples ("#ffcc00", "#fc0").
// [ResolveColor] normalizes either form to "#rrggbb" using the SVG 1.1 colour
// table from golang.org/x/image/colornames. Names it does not know resolve to
// white, so a typo never breaks a render.
//
//	render.ResolveColor("LightBlue") // "#add8e6"
//	render.ResolveColor("#fc0")      // "#ffcc00"
//	render.ResolveColor("nope")      // "#ffffff"
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The PNG and PDF sinks build
// on them.
//
//	svg := sink.RenderSVG(result)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [sink]: github.com/matzehuels/weekgrid/pkg/render/sink
package render
