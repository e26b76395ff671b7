package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weekgrid/pkg/render/sink"
)

// summaryCommand creates the summary command.
func (c *CLI) summaryCommand() *cobra.Command {
	var total bool

	cmd := &cobra.Command{
		Use:   "summary [schedule]",
		Short: "Print total minutes per block",
		Long: `Print the minutes each block occupies over the week, sorted by name.

Every entry counts, including day entries hidden under an invariant that
starts at the same time.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSchedule,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSummary(cmd.Context(), args[0], total)
		},
	}

	cmd.Flags().BoolVar(&total, "total", false, "also print the weekly total")
	return cmd
}

func (c *CLI) runSummary(ctx context.Context, input string, total bool) error {
	doc, err := readDocument(input)
	if err != nil {
		return err
	}

	runner := c.newRunner(ctx)
	defer runner.Close()

	tt, err := runner.Compile(ctx, doc.data, c.baseOptions(doc))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.Out, sink.RenderSummaryText(tt.Summary))
	if total {
		fmt.Fprintf(c.Out, "Total: %d minutes\n", tt.Summary.Total())
	}
	return nil
}
