package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weekgrid/pkg/render/sink"
)

// compileOpts holds the flags for the compile command.
type compileOpts struct {
	output  string
	compact bool
	refresh bool
}

// compileCommand creates the compile command.
func (c *CLI) compileCommand() *cobra.Command {
	var opts compileOpts

	cmd := &cobra.Command{
		Use:   "compile [schedule]",
		Short: "Compile a schedule into a timetable grid (JSON)",
		Long: `Compile a schedule document into its timetable grid and minute summary.

The document format follows the file extension: .toml, .json, anything else
is read as YAML. The grid is printed as JSON to stdout, or written to the
file given with -o.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSchedule,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompile(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "emit compact JSON")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runCompile(ctx context.Context, input string, opts compileOpts) error {
	logger := loggerFromContext(ctx)

	doc, err := readDocument(input)
	if err != nil {
		return err
	}

	runner := c.newRunner(ctx)
	defer runner.Close()

	popts := c.baseOptions(doc)
	popts.Refresh = opts.refresh

	prog := newProgress(logger)
	tt, hit, err := runner.CompileWithCacheInfo(ctx, doc.data, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Compiled %s", input))

	var jsonOpts []sink.JSONOption
	if opts.compact {
		jsonOpts = append(jsonOpts, sink.WithJSONCompact())
	}
	data, err := sink.RenderJSON(tt, jsonOpts...)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := c.Out.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Compiled %s", input)
	printStats(len(tt.Grid.Rows), len(tt.Summary), hit)
	printFile(opts.output)
	return nil
}
