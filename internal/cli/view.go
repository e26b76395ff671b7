package cli

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "view [schedule]",
		Short: "Browse a timetable in the terminal",
		Long: `Open an interactive terminal view of a schedule.

Keys: tab switches between the grid and the minute summary, r reloads the
file after you edit it, arrow keys scroll, q quits.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSchedule,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], !plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "do not paint cells with block colours")
	return cmd
}

func (c *CLI) runView(ctx context.Context, input string, colors bool) error {
	runner := c.newRunner(ctx)
	defer runner.Close()

	load := func() (*timetable.Result, error) {
		doc, err := readDocument(input)
		if err != nil {
			return nil, err
		}
		return runner.Compile(ctx, doc.data, c.baseOptions(doc))
	}

	model := NewViewerModel(filepath.Base(input), load)
	model.Colors = colors

	// Logging would tear the alternate screen, so only warnings get through.
	level := c.Logger.GetLevel()
	c.Logger.SetLevel(LogWarn)
	defer c.Logger.SetLevel(level)

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
