package sink

import (
	"github.com/matzehuels/weekgrid/pkg/render"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPDF renders the timetable as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(r *timetable.Result, opts ...PDFOption) ([]byte, error) {
	p := pdfRenderer{}
	for _, opt := range opts {
		opt(&p)
	}
	svg := RenderSVG(r, p.svgOpts...)
	return render.ToPDF(svg)
}
