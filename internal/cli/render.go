package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weekgrid/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file (single format) or base path
	formats   []string // output formats, see pipeline.Formats
	title     string   // heading drawn above the grid
	noSummary bool     // omit the minute summary
	scale     float64  // PNG scale factor
	refresh   bool     // ignore cached results
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [schedule]",
		Short: "Render a schedule to HTML, SVG, PNG, PDF, XLSX, JSON or text",
		Long: `Render a schedule document in one or more formats.

With a single format, -o names the output file. With several, -o is a base
path and each artifact gets its format as extension (week.html, week.xlsx).
Without -o, outputs are written next to the input file.

PNG and PDF need rsvg-convert on PATH.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSchedule,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.setFormats(formatsStr); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	addRenderFlags(cmd, &opts, &formatsStr)
	return cmd
}

// addRenderFlags registers the flags shared by render and watch.
func addRenderFlags(cmd *cobra.Command, opts *renderOpts, formats *string) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.Formats, ", ")+" (comma-separated)")
	cmd.Flags().StringVar(&opts.title, "title", "", "title shown above the grid")
	cmd.Flags().BoolVar(&opts.noSummary, "no-summary", false, "omit the minute summary")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
}

// setFormats parses and validates the --format value.
func (o *renderOpts) setFormats(s string) error {
	if s != "" {
		o.formats = pipeline.ParseFormats(s)
	}
	return pipeline.ValidateFormats(o.formats)
}

// pipelineOptions merges flags over the configured defaults.
func (c *CLI) pipelineOptions(doc document, opts renderOpts) pipeline.Options {
	p := c.baseOptions(doc)
	if len(opts.formats) > 0 {
		p.Formats = opts.formats
	}
	if opts.title != "" {
		p.Title = opts.title
	}
	if opts.noSummary {
		p.NoSummary = true
	}
	if opts.scale != 0 {
		p.Scale = opts.scale
	}
	p.Refresh = opts.refresh
	return p
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	runner := c.newRunner(ctx)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()
	result, paths, err := c.renderFile(ctx, runner, input, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	reportRender(input, result, paths)
	return nil
}

// renderFile reads, compiles and renders input, then writes every artifact.
func (c *CLI) renderFile(ctx context.Context, runner *pipeline.Runner, input string, opts renderOpts) (*pipeline.Result, []string, error) {
	doc, err := readDocument(input)
	if err != nil {
		return nil, nil, err
	}

	popts := c.pipelineOptions(doc, opts)
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}

	result, err := runner.Execute(ctx, doc.data, popts)
	if err != nil {
		return nil, nil, err
	}
	paths, err := writeArtifacts(result.Artifacts, popts.Formats, input, opts.output)
	if err != nil {
		return nil, nil, err
	}
	return result, paths, nil
}

func reportRender(input string, result *pipeline.Result, paths []string) {
	printSuccess("Rendered %s", input)
	printStats(result.Stats.Rows, result.Stats.Blocks, result.CacheInfo.CompileHit && result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
}

// writeArtifacts writes each format and returns the paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := outputPath(format, len(formats), input, output)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath names the file for one format. A single format written to an
// explicit -o keeps that name as given.
func outputPath(format string, count int, input, output string) string {
	if count == 1 && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
