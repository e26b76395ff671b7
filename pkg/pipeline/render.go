package pipeline

import (
	"fmt"

	"github.com/matzehuels/weekgrid/pkg/render/sink"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// Render generates output artifacts in the requested formats.
func Render(r *timetable.Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(r, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders a single format.
func RenderFormat(r *timetable.Result, format string, opts Options) ([]byte, error) {
	var data []byte
	var err error

	switch format {
	case FormatHTML:
		data = sink.RenderHTML(r, htmlOptions(opts)...)
	case FormatSVG:
		data = sink.RenderSVG(r, svgOptions(opts)...)
	case FormatPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = DefaultScale
		}
		data, err = sink.RenderPNG(r, sink.WithScale(scale), sink.WithPNGSVGOptions(svgOptions(opts)...))
	case FormatPDF:
		data, err = sink.RenderPDF(r, sink.WithPDFSVGOptions(svgOptions(opts)...))
	case FormatXLSX:
		data, err = sink.RenderXLSX(r, sink.WithXLSXTitle(opts.Title), sink.WithXLSXSummary(!opts.NoSummary))
	case FormatJSON:
		data, err = sink.RenderJSON(r)
	case FormatText:
		data = sink.RenderText(r, sink.WithTextSummary(!opts.NoSummary))
	default:
		return nil, ValidateFormat(format)
	}

	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

// ContentType returns the MIME type of a rendered format.
func ContentType(format string) string {
	switch format {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	case FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

func htmlOptions(opts Options) []sink.HTMLOption {
	o := []sink.HTMLOption{sink.WithHTMLDocument(), sink.WithHTMLSummary(!opts.NoSummary)}
	if opts.Title != "" {
		o = append(o, sink.WithHTMLTitle(opts.Title))
	}
	return o
}

func svgOptions(opts Options) []sink.SVGOption {
	var o []sink.SVGOption
	if opts.Title != "" {
		o = append(o, sink.WithSVGTitle(opts.Title))
	}
	if !opts.NoSummary {
		o = append(o, sink.WithSVGSummary())
	}
	return o
}
