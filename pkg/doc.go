// Package pkg provides the core libraries for Weekgrid timetable compilation.
//
// # Overview
//
// Weekgrid turns a weekly schedule document (named blocks per weekday plus
// daily invariants such as recess) into a grid with one row per 15-minute
// boundary, and renders that grid as HTML, text, SVG, PNG, PDF, XLSX or
// JSON. The pkg directory is organized into these areas:
//
//  1. [clock] - Wall-clock time text ("8:05 AM") to minutes and back
//  2. [schedule] - Document model and YAML/TOML/JSON decoding
//  3. [timetable] - The compiler: validation, summary, grid rows
//  4. [render] - Colour resolution and SVG conversion, with sinks in [render/sink]
//  5. [pipeline] - Orchestration (parse → compile → render) with caching
//  6. [cache], [config], [server], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow through Weekgrid:
//
//	Schedule document (YAML/TOML/JSON)
//	         ↓
//	    [schedule] package (decode + shape checks)
//	         ↓
//	    [timetable] package (time validation + grid rows + summary)
//	         ↓
//	    [render/sink] package (one renderer per output format)
//	         ↓
//	    HTML/TXT/SVG/PNG/PDF/XLSX/JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/weekgrid/pkg/render/sink"
//	    "github.com/matzehuels/weekgrid/pkg/schedule"
//	    "github.com/matzehuels/weekgrid/pkg/timetable"
//	)
//
//	doc, _ := schedule.ParseFile("week.yaml")
//	result, _ := timetable.Compile(doc)
//	page := sink.RenderHTML(result, sink.WithHTMLDocument())
//
// With caching, through the same runner the CLI and HTTP server use:
//
//	c, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, _ := runner.Execute(ctx, data, pipeline.Options{Formats: []string{"html", "xlsx"}})
//
// # Testing
//
//	go test ./pkg/...
//	go test -run Example ./pkg/timetable
//
// PNG and PDF tests skip when rsvg-convert is not installed.
//
// [clock]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/clock
// [schedule]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/schedule
// [timetable]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/timetable
// [render]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/weekgrid/pkg/observability
package pkg
