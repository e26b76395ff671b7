// Package pipeline runs the load → compile → render pipeline shared by the
// CLI, the file watcher and the HTTP server.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Load: decode YAML, TOML or JSON bytes into a schedule.Document and
//     merge configured default colours
//  2. Compile: build the timetable grid and minute summary
//  3. Render: encode the result in each requested format
//
// Each stage can be run on its own or through [Runner.Execute]. The runner
// caches compiled grids by document hash and artifacts by grid hash, so
// re-rendering an unchanged document costs one cache lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, data, pipeline.Options{
//	    DocumentFormat: "yaml",
//	    Formats:        []string{"html", "xlsx"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
//
// Run individual stages:
//
//	tt, err := runner.Compile(ctx, data, opts)
//	artifacts, err := runner.Render(ctx, tt, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/weekgrid/pkg/cache"
	errs "github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/schedule"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
	FormatText = "txt"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatHTML

// Formats lists every output format in display order.
var Formats = []string{FormatHTML, FormatSVG, FormatPNG, FormatPDF, FormatXLSX, FormatJSON, FormatText}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatXLSX: true,
	FormatJSON: true,
	FormatText: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	DocumentFormat string            `json:"document_format,omitempty"` // yaml, toml or json
	DefaultColors  map[string]string `json:"default_colors,omitempty"`  // filled in where the document has none
	Refresh        bool              `json:"refresh,omitempty"`         // bypass cached grids and artifacts

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Title     string   `json:"title,omitempty"`
	NoSummary bool     `json:"no_summary,omitempty"`
	Scale     float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Timetable is the compiled grid and summary.
	Timetable *timetable.Result

	// DocumentHash is the SHA-256 of the input bytes.
	DocumentHash string

	// TimetableHash is the SHA-256 of the grid's JSON form.
	TimetableHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows        int
	Blocks      int
	CompileTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	CompileHit bool // Whether the grid came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list, trimming and lowercasing each
// entry and dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForLoad checks the document format and applies load defaults.
func (o *Options) ValidateForLoad() error {
	f, err := schedule.ParseFormat(o.DocumentFormat)
	if err != nil {
		return err
	}
	o.DocumentFormat = string(f)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults prepares options for a full run.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// TimetableKeyOpts returns cache key options for compilation.
func (o *Options) TimetableKeyOpts() cache.TimetableKeyOpts {
	return cache.TimetableKeyOpts{Format: o.DocumentFormat, DefaultColors: o.DefaultColors}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Title: o.Title, Summary: !o.NoSummary}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
